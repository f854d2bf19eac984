// Package timex normalizes the mixed timestamp conventions of the drive API.
//
// Legacy API responses carry unix seconds while newer ones carry unix
// milliseconds. All ingestion paths call UnixMs once so that everything
// downstream works in milliseconds only.
package timex

import "time"

// nowFn is a test seam.
var nowFn = time.Now

// UnixMs returns ts in unix milliseconds.
//
// The unit of ts is resolved heuristically: whichever interpretation
// (already-milliseconds vs seconds) lands closer to the current time wins.
// Any plausible file or event timestamp is decades away from its
// seconds/milliseconds counterpart, so the heuristic is unambiguous in
// practice.
func UnixMs(ts int64) int64 {
	now := nowFn().UnixMilli()

	if abs(now-ts) < abs(now-ts*1000) {
		return ts
	}

	return ts * 1000
}

// ToTime converts a timestamp in either unit to a time.Time.
func ToTime(ts int64) time.Time {
	return time.UnixMilli(UnixMs(ts))
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
