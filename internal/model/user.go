package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	UserID           int64
	Username         string
	DisplayName      string
	PartnerID        *uuid.UUID
	RegistrationDate time.Time
	AuthDate         time.Time
}

type Profile struct {
	User           *User
	Partner        *Adoption
	CollectionSize int
	TotalBond      int64
	CanRename      bool
}
