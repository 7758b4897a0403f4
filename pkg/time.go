// Package pkg holds small formatting helpers shared across the service.
package pkg

import (
	"strconv"
	"strings"
	"time"
)

var coarse = []struct {
	size   time.Duration
	suffix string
}{
	{24 * time.Hour, "d"},
	{time.Hour, "h"},
	{time.Minute, "m"},
	{time.Second, "s"},
}

// Latency renders d compactly for logs: sub-second values use a single unit
// (ns, μs, ms) and longer ones at most the two largest non-zero units,
// e.g. "1m30s" or "2h5s".
func Latency(d time.Duration) string {
	switch {
	case d <= 0:
		return "0s"
	case d < time.Microsecond:
		return strconv.FormatInt(d.Nanoseconds(), 10) + "ns"
	case d < time.Millisecond:
		return strconv.FormatInt(d.Microseconds(), 10) + "μs"
	case d < time.Second:
		return strconv.FormatInt(d.Milliseconds(), 10) + "ms"
	}
	var b strings.Builder
	parts := 0
	for _, u := range coarse {
		if d < u.size {
			continue
		}
		b.WriteString(strconv.FormatInt(int64(d/u.size), 10))
		b.WriteString(u.suffix)
		d %= u.size
		parts++
		if parts == 2 || d == 0 {
			break
		}
	}
	return b.String()
}
