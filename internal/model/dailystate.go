package model

import (
	"time"

	"companion_collection/pkg/cadence"
)

// DailyAction names an action a user may perform once per server day.
type DailyAction string

const (
	ActionRoll     DailyAction = "roll"
	ActionAdopt    DailyAction = "adopt"
	ActionInteract DailyAction = "interact"
	ActionRename   DailyAction = "rename"
)

type DailyState struct {
	UserID           int64
	LastRollDate     *cadence.Date
	CandidateIDs     []int64
	CandidatesDate   *cadence.Date
	LastAdoptDate    *cadence.Date
	LastInteractDate *cadence.Date
	LastRenameDate   *cadence.Date
}

// LastPerformed returns the server date the action was last performed.
func (s *DailyState) LastPerformed(action DailyAction) *cadence.Date {
	switch action {
	case ActionRoll:
		return s.LastRollDate
	case ActionAdopt:
		return s.LastAdoptDate
	case ActionInteract:
		return s.LastInteractDate
	case ActionRename:
		return s.LastRenameDate
	}
	return nil
}

type Offer struct {
	Candidates []Companion
	RolledOn   *cadence.Date
	CanRoll    bool
	CanAdopt   bool
	NextReset  time.Time
}

type PartnerStatus struct {
	Partner     *Adoption
	CanInteract bool
	NextReset   time.Time
}

type Interaction struct {
	Partner  *Adoption
	Dialogue string
}
