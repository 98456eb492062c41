package service

import (
	"testing"
	"time"

	"companion_collection/internal/service/mocks"
	"companion_collection/pkg/cadence"

	"github.com/stretchr/testify/require"
)

var testConfig = GameConfig{
	ResetHour:          18,
	CandidatesPerRoll:  3,
	MaxCollectionSize:  5,
	BondPerInteraction: 1,
	DefaultPageSize:    20,
	MaxPageSize:        100,
}

func newCalendar(t *testing.T) *cadence.Calendar {
	t.Helper()
	c, err := cadence.NewCalendar(testConfig.ResetHour)
	require.NoError(t, err)
	return c
}

// clockAt returns a clock one second before the reset on the given UTC day.
func clockAt(year int, month time.Month, day int) *mocks.Clock {
	return &mocks.Clock{T: time.Date(year, month, day, 17, 59, 59, 0, time.UTC)}
}

func datePtr(d cadence.Date) *cadence.Date {
	return &d
}
