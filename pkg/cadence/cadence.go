// Package cadence maps wall-clock instants onto the game's server days.
//
// A server day starts at a fixed UTC reset hour instead of midnight, so an
// instant before the reset hour still belongs to the previous calendar date.
package cadence

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidArgument = errors.New("invalid argument")

// ServerDateFromUTC returns the server date the instant falls on. The reset
// hour itself is the first moment of the new day.
func ServerDateFromUTC(instant time.Time, resetHour int) (Date, error) {
	if instant.IsZero() {
		return Date{}, fmt.Errorf("%w: zero instant", ErrInvalidArgument)
	}
	if err := validateResetHour(resetHour); err != nil {
		return Date{}, err
	}

	utc := instant.UTC()
	d := DateOf(utc)
	if utc.Hour() < resetHour {
		d = d.AddDays(-1)
	}

	return d, nil
}

// DaysSince counts whole server days between the server date of past and
// current. A past instant later than current yields a negative count.
func DaysSince(current Date, past time.Time, resetHour int) (int, error) {
	if current.IsZero() {
		return 0, fmt.Errorf("%w: zero current date", ErrInvalidArgument)
	}

	pastDate, err := ServerDateFromUTC(past, resetHour)
	if err != nil {
		return 0, err
	}

	return current.Sub(pastDate), nil
}

func IsActionAvailable(lastPerformed *Date, current Date) bool {
	return lastPerformed == nil || !lastPerformed.Equal(current)
}

func validateResetHour(h int) error {
	if h < 0 || h > 23 {
		return fmt.Errorf("%w: reset hour %d out of range", ErrInvalidArgument, h)
	}
	return nil
}

// Calendar binds a validated reset hour so callers don't have to carry it.
type Calendar struct {
	resetHour int
}

func NewCalendar(resetHour int) (*Calendar, error) {
	if err := validateResetHour(resetHour); err != nil {
		return nil, err
	}
	return &Calendar{resetHour: resetHour}, nil
}

func (c *Calendar) ResetHour() int {
	return c.resetHour
}

func (c *Calendar) Today(now time.Time) (Date, error) {
	return ServerDateFromUTC(now, c.resetHour)
}

func (c *Calendar) DaysSince(today Date, past time.Time) (int, error) {
	return DaysSince(today, past, c.resetHour)
}

// NextReset returns the instant the server day following now begins.
func (c *Calendar) NextReset(now time.Time) (time.Time, error) {
	today, err := c.Today(now)
	if err != nil {
		return time.Time{}, err
	}

	return today.AddDays(1).Time().Add(time.Duration(c.resetHour) * time.Hour), nil
}
