package timex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func withFixedNow(t *testing.T, now time.Time) {
	t.Helper()
	prev := nowFn
	nowFn = func() time.Time { return now }
	t.Cleanup(func() { nowFn = prev })
}

func TestUnixMs(t *testing.T) {
	now := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	withFixedNow(t, now)

	tests := []struct {
		name string
		in   int64
		want int64
	}{
		{"already milliseconds", now.UnixMilli(), now.UnixMilli()},
		{"seconds get scaled", now.Unix(), now.Unix() * 1000},
		{"old seconds timestamp", 1673740800, 1673740800000},
		{"old milliseconds timestamp", 1673740800000, 1673740800000},
		{"zero stays zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, UnixMs(tt.in))
		})
	}
}

func TestToTime(t *testing.T) {
	now := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	withFixedNow(t, now)

	ts := time.Date(2023, 6, 20, 8, 30, 0, 0, time.UTC)
	require.Equal(t, ts.UnixMilli(), ToTime(ts.Unix()).UnixMilli())
	require.Equal(t, ts.UnixMilli(), ToTime(ts.UnixMilli()).UnixMilli())
}

func TestDurationUnmarshalJSON(t *testing.T) {
	var d Duration

	require.NoError(t, d.UnmarshalJSON([]byte(`"3s"`)))
	require.Equal(t, 3*time.Second, d.Duration)

	require.NoError(t, d.UnmarshalJSON([]byte(`1000000000`)))
	require.Equal(t, time.Second, d.Duration)

	require.Error(t, d.UnmarshalJSON([]byte(`true`)))
	require.Error(t, d.UnmarshalJSON([]byte(`"abc"`)))
}
