package page

import (
	"math"
	"strings"
	"time"

	"github.com/MikhailRaia/link-shortener/internal/client"
)

// DefaultExpirationHours is used when the expiration input is empty, not a number or zero.
const DefaultExpirationHours = 24

const (
	timestampLayout = "1/2/2006, 3:04:05 PM"
	invalidDateText = "Invalid Date"
)

// ParseExpirationHours reads the leading integer of raw the way a browser parseInt does.
func ParseExpirationHours(raw string) int {
	n, ok := parseLeadingInt(raw)
	if !ok || n == 0 {
		return DefaultExpirationHours
	}
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	if n < math.MinInt32 {
		return math.MinInt32
	}
	return int(n)
}

// parseLeadingInt skips leading whitespace, accepts an optional sign and a 0x prefix, and
// reads digits until the first character that is not one. Values saturate at the int64 range.
func parseLeadingInt(raw string) (int64, bool) {
	s := strings.TrimLeft(raw, " \t\n\r\f\v\u00a0\ufeff")

	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	base := int64(10)
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') && digitValue(s[2]) < 16 {
		base = 16
		s = s[2:]
	}

	var n int64
	digits := 0
	for i := 0; i < len(s); i++ {
		d := digitValue(s[i])
		if d >= base {
			break
		}
		digits++
		if n > (math.MaxInt64-d)/base {
			n = math.MaxInt64
			continue
		}
		n = n*base + d
	}

	if digits == 0 {
		return 0, false
	}
	if negative {
		n = -n
	}
	return n, true
}

func digitValue(c byte) int64 {
	switch {
	case c >= '0' && c <= '9':
		return int64(c - '0')
	case c >= 'a' && c <= 'f':
		return int64(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int64(c-'A') + 10
	default:
		return 99
	}
}

// FormatTimestamp renders t the way the page shows expiry times. A zero t renders as
// "Invalid Date".
func FormatTimestamp(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return invalidDateText
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(timestampLayout)
}

// formatExpiry renders an expiry as the server sent it. Zoneless values are read in loc.
func formatExpiry(ts client.Timestamp, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	t, err := ts.Time(loc)
	if err != nil {
		return invalidDateText
	}
	return FormatTimestamp(t, loc)
}
