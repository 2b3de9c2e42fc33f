package hashlock

import "time"

// EpochSeconds converts t into whole seconds elapsed since the network epoch.
// All absolute times carried by HTLC assets use this scale.
func EpochSeconds(epoch, t time.Time) int64 {
	ms := t.UnixMilli() - epoch.UnixMilli()
	s := ms / 1000
	// Floor, not truncate, for instants before the epoch.
	if ms%1000 != 0 && ms < 0 {
		s--
	}
	return s
}

// TimeWithOffset returns the epoch-relative time offset seconds after now.
func TimeWithOffset(epoch, now time.Time, offset int64) int64 {
	return EpochSeconds(epoch, now.Add(time.Duration(offset)*time.Second))
}
