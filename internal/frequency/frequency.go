// Package frequency parses "<n><unit>" interval tokens such as "15m" or "1w"
// and converts them to the schedule descriptors used by systemd and schtasks.
package frequency

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/darkawower/astra/internal/apperr"
)

// Seconds per unit. Months are 30 days and years 365 days.
const (
	secondsPerSecond = 1
	secondsPerMinute = 60
	secondsPerHour   = 3600
	secondsPerDay    = 86400
	secondsPerWeek   = 604800
	secondsPerMonth  = 2592000
	secondsPerYear   = 31536000
)

var unitSeconds = map[byte]uint64{
	's': secondsPerSecond,
	'm': secondsPerMinute,
	'h': secondsPerHour,
	'd': secondsPerDay,
	'w': secondsPerWeek,
	'M': secondsPerMonth,
	'y': secondsPerYear,
}

const (
	errStart  = "frequency must start with a number"
	errUnit   = "unrecognized frequency unit, supported units are: seconds(s), minutes(m), hours(h), days(d), weeks(w), months(M), years(y)"
	errFormat = "frequency is improperly formatted - example of frequency: 1w"
	errNoUnit = "frequency must end with unit - examples are: s, m, h, d, w, M, y"
)

// Frequency is a validated positive interval with a single unit.
// The zero value means "not set".
type Frequency struct {
	value uint64
	unit  byte
}

type parseState int

const (
	stateNumeric parseState = iota
	stateUnit
	stateDone
)

// Parse validates s against ^[1-9][0-9]*[smhdwMy]$.
func Parse(s string) (Frequency, error) {
	state := stateNumeric
	var digits strings.Builder
	var unit byte

	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch state {
		case stateNumeric:
			if ch >= '0' && ch <= '9' {
				digits.WriteByte(ch)
				continue
			}
			if digits.Len() == 0 {
				return Frequency{}, apperr.New(apperr.Parse, errStart)
			}
			state = stateUnit
			fallthrough
		case stateUnit:
			if _, ok := unitSeconds[ch]; !ok {
				return Frequency{}, apperr.New(apperr.Parse, errUnit)
			}
			unit = ch
			state = stateDone
		case stateDone:
			return Frequency{}, apperr.New(apperr.Parse, errFormat)
		}
	}

	if digits.Len() == 0 {
		return Frequency{}, apperr.New(apperr.Parse, errStart)
	}
	if state != stateDone {
		return Frequency{}, apperr.New(apperr.Parse, errNoUnit)
	}

	raw := digits.String()
	if raw[0] == '0' {
		return Frequency{}, apperr.New(apperr.Parse, "frequency must be a positive number without leading zeros: %q", s)
	}

	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n > math.MaxUint64/unitSeconds[unit] {
		return Frequency{}, apperr.New(apperr.Parse, "frequency %q is too large", s)
	}

	return Frequency{value: n, unit: unit}, nil
}

// IsZero reports whether f was never set.
func (f Frequency) IsZero() bool {
	return f.value == 0
}

// Seconds returns the interval length in seconds.
func (f Frequency) Seconds() uint64 {
	return f.value * unitSeconds[f.unit]
}

// Duration returns the interval as a time.Duration, saturating at the
// largest representable duration.
func (f Frequency) Duration() time.Duration {
	secs := f.Seconds()
	if secs > uint64(math.MaxInt64/int64(time.Second)) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(secs) * time.Second
}

// String returns the token the frequency was parsed from.
func (f Frequency) String() string {
	if f.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d%c", f.value, f.unit)
}

// OnCalendar converts f to a systemd timer calendar expression.
func (f Frequency) OnCalendar() string {
	s := f.Seconds()
	switch {
	case s < secondsPerMinute:
		return fmt.Sprintf("*-*-* *:*:0/%d", max(s, 1))
	case s < secondsPerHour:
		return fmt.Sprintf("*-*-* *:0/%d", s/secondsPerMinute)
	case s < secondsPerDay:
		return fmt.Sprintf("*-*-* 0/%d:00:00", s/secondsPerHour)
	case s < secondsPerWeek:
		return fmt.Sprintf("*-*-*/%d 00:00:00", s/secondsPerDay)
	case s < secondsPerMonth:
		weeks := s / secondsPerWeek
		if weeks == 1 {
			return "weekly"
		}
		return fmt.Sprintf("*-*-*/%d 00:00:00", weeks*7)
	case s < secondsPerYear:
		months := s / secondsPerMonth
		if months == 1 {
			return "monthly"
		}
		return fmt.Sprintf("*-*-*/%d 00:00:00", months*30)
	default:
		return "yearly"
	}
}
