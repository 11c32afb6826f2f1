package frequency

// ScheduleType is a schtasks /sc value.
type ScheduleType string

const (
	Minute  ScheduleType = "MINUTE"
	Hourly  ScheduleType = "HOURLY"
	Daily   ScheduleType = "DAILY"
	Weekly  ScheduleType = "WEEKLY"
	Monthly ScheduleType = "MONTHLY"
)

// schtasks /mo limits per schedule type.
const (
	maxMinutes = 1439
	maxHours   = 23
	maxDays    = 365
	maxWeeks   = 52
	maxMonths  = 12
)

// TaskSchedule converts f to a schtasks (/mo, /sc) pair. Values beyond a
// schedule type's modifier range move up to the next coarser type; sub-minute
// intervals run every minute and anything past a year runs every 12 months.
func (f Frequency) TaskSchedule() (uint32, ScheduleType) {
	n := f.value
	switch f.unit {
	case 's':
		if n < 60 {
			return 1, Minute
		}
		n /= 60
		fallthrough
	case 'm':
		if n <= maxMinutes {
			return uint32(n), Minute
		}
		n /= 60
		fallthrough
	case 'h':
		if n <= maxHours {
			return uint32(n), Hourly
		}
		n /= 24
		fallthrough
	case 'd':
		if n <= maxDays {
			return uint32(n), Daily
		}
		n /= 7
		fallthrough
	case 'w':
		if n <= maxWeeks {
			return uint32(n), Weekly
		}
		n = n * 7 / 30
		fallthrough
	case 'M':
		if n <= maxMonths {
			return uint32(max(n, 1)), Monthly
		}
	}
	return maxMonths, Monthly
}
