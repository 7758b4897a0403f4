package pkg

import (
	"testing"
	"time"
)

func TestLatency(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "0s"},
		{-time.Second, "0s"},
		{850 * time.Nanosecond, "850ns"},
		{42 * time.Microsecond, "42μs"},
		{1500 * time.Microsecond, "1ms"},
		{999 * time.Millisecond, "999ms"},
		{time.Second, "1s"},
		{90 * time.Second, "1m30s"},
		{2*time.Hour + 5*time.Second, "2h5s"},
		{26*time.Hour + 3*time.Minute + 4*time.Second, "1d2h"},
	}
	for _, c := range cases {
		if got := Latency(c.in); got != c.want {
			t.Errorf("Latency(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
