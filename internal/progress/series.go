package progress

import (
	"errors"
	"math"
)

var ErrEmptySeries = errors.New("progress series is empty")

type Point struct {
	Date     string `json:"date"`
	Workouts int    `json:"workouts"`
	// Duration in minutes.
	Duration int `json:"duration"`
}

func HistoricalSeries() []Point {
	return []Point{
		{Date: "2025-01-01", Workouts: 1, Duration: 30},
		{Date: "2025-01-03", Workouts: 1, Duration: 45},
		{Date: "2025-01-05", Workouts: 1, Duration: 40},
		{Date: "2025-01-08", Workouts: 1, Duration: 35},
		{Date: "2025-01-10", Workouts: 1, Duration: 45},
		{Date: "2025-01-12", Workouts: 1, Duration: 50},
		{Date: "2025-01-15", Workouts: 1, Duration: 40},
	}
}

type Summary struct {
	TotalMinutes   int `json:"totalMinutes"`
	AverageMinutes int `json:"averageMinutes"`
	MaxMinutes     int `json:"maxMinutes"`
}

// Summarize rounds the average half up.
func Summarize(series []Point) (Summary, error) {
	if len(series) == 0 {
		return Summary{}, ErrEmptySeries
	}

	var s Summary
	for _, p := range series {
		s.TotalMinutes += p.Duration
		s.MaxMinutes = max(s.MaxMinutes, p.Duration)
	}
	s.AverageMinutes = int(math.Floor(float64(s.TotalMinutes)/float64(len(series)) + 0.5))
	return s, nil
}

type Bar struct {
	Point
	// Width relative to the longest session, in percent.
	Width float64 `json:"width"`
}

func Bars(series []Point) ([]Bar, error) {
	s, err := Summarize(series)
	if err != nil {
		return nil, err
	}

	bars := make([]Bar, 0, len(series))
	for _, p := range series {
		width := 0.0
		if s.MaxMinutes > 0 {
			width = float64(p.Duration) * 100 / float64(s.MaxMinutes)
		}
		bars = append(bars, Bar{Point: p, Width: width})
	}
	return bars, nil
}
