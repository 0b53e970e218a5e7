package icon

import "fmt"

// Icon is the closed set of presentation symbols a client can render.
type Icon int

const (
	Flame Icon = iota + 1
	Dumbbell
	Zap
	Heart
	Star
	TrendingUp
	Award
	Calendar
	CalendarDays
	CalendarCheck
	User
	Building
	Clock
	ClockQuarter
	ClockHalf
	ClockFull
	CheckCircle
	AlertCircle
	AlertTriangle
	Activity
	Wind
	Target
)

var names = map[Icon]string{
	Flame:         "flame",
	Dumbbell:      "dumbbell",
	Zap:           "zap",
	Heart:         "heart",
	Star:          "star",
	TrendingUp:    "trending-up",
	Award:         "award",
	Calendar:      "calendar",
	CalendarDays:  "calendar-days",
	CalendarCheck: "calendar-check",
	User:          "user",
	Building:      "building",
	Clock:         "clock",
	ClockQuarter:  "clock-3",
	ClockHalf:     "clock-4",
	ClockFull:     "clock-9",
	CheckCircle:   "check-circle",
	AlertCircle:   "alert-circle",
	AlertTriangle: "alert-triangle",
	Activity:      "activity",
	Wind:          "wind",
	Target:        "target",
}

func (i Icon) String() string {
	if n, ok := names[i]; ok {
		return n
	}
	return fmt.Sprintf("icon(%d)", int(i))
}

func (i Icon) IsValid() bool {
	_, ok := names[i]
	return ok
}

func (i Icon) MarshalText() ([]byte, error) {
	if !i.IsValid() {
		return nil, fmt.Errorf("unknown icon %d", int(i))
	}
	return []byte(names[i]), nil
}

func (i *Icon) UnmarshalText(text []byte) error {
	for k, n := range names {
		if n == string(text) {
			*i = k
			return nil
		}
	}
	return fmt.Errorf("unknown icon %q", string(text))
}
