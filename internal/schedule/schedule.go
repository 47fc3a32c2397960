package schedule

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput flags a non-positive day count or week count.
	ErrInvalidInput = errors.New("schedule: invalid input")
	// ErrDayOutOfRange means a day fell outside every week range. Given a
	// partition from Partition this cannot happen; it signals a caller bug.
	ErrDayOutOfRange = errors.New("schedule: day outside all week ranges")
)

// WeekRange is a contiguous span of calendar days assigned to one week
// bucket. An empty range (no days) has EndDay == StartDay-1.
type WeekRange struct {
	Week     int   `json:"week"`
	StartDay int   `json:"start_day"`
	EndDay   int   `json:"end_day"`
	Days     []int `json:"days"`
}

// Partition splits totalDays contiguous days (numbered from 1) into
// numberOfWeeks ranges of near-equal length. The remainder days go to the
// leading weeks: with base = totalDays/numberOfWeeks and
// extra = totalDays%numberOfWeeks, the first extra weeks are exactly one
// day longer than the rest. This front-loaded tie-break is deliberate, not
// a rounding accident: 30 days over 4 weeks gives 8,8,7,7.
//
// When numberOfWeeks exceeds totalDays, trailing weeks legitimately come
// out empty; callers must tolerate ranges with no days.
func Partition(totalDays, numberOfWeeks int) ([]WeekRange, error) {
	if totalDays <= 0 {
		return nil, fmt.Errorf("%w: totalDays must be positive, got %d", ErrInvalidInput, totalDays)
	}
	if numberOfWeeks < 1 {
		return nil, fmt.Errorf("%w: numberOfWeeks must be at least 1, got %d", ErrInvalidInput, numberOfWeeks)
	}

	base := totalDays / numberOfWeeks
	extra := totalDays % numberOfWeeks

	ranges := make([]WeekRange, 0, numberOfWeeks)
	current := 1
	for week := 1; week <= numberOfWeeks; week++ {
		length := base
		if week <= extra {
			length++
		}
		r := WeekRange{Week: week, StartDay: current, EndDay: current + length - 1}
		for d := 0; d < length; d++ {
			r.Days = append(r.Days, current+d)
		}
		current += length
		ranges = append(ranges, r)
	}
	return ranges, nil
}

// WeekForDay returns the number of the week range containing the given day.
func WeekForDay(day int, ranges []WeekRange) (int, error) {
	for _, r := range ranges {
		if day >= r.StartDay && day <= r.EndDay {
			return r.Week, nil
		}
	}
	return 0, fmt.Errorf("%w: day %d", ErrDayOutOfRange, day)
}
