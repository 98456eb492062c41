package model

import (
	"time"

	"github.com/google/uuid"
)

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

type Companion struct {
	CompanionID int64
	Name        string
	Species     string
	Rarity      Rarity
	Description string
}

// Adoption is a companion owned by a user.
type Adoption struct {
	AdoptionID   uuid.UUID
	UserID       int64
	Companion    Companion
	Bond         int64
	AdoptedAt    time.Time
	DaysTogether int
	IsPartner    bool
}
