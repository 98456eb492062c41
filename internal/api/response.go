package api

import (
	"time"

	"companion_collection/internal/model"
	"companion_collection/pkg/cadence"

	"github.com/google/uuid"
)

type userResponse struct {
	UserID           int64      `json:"user_id"`
	Username         string     `json:"username"`
	DisplayName      string     `json:"display_name"`
	PartnerID        *uuid.UUID `json:"partner_id"`
	RegistrationDate time.Time  `json:"registration_date"`
	AuthDate         time.Time  `json:"auth_date"`
}

func newUserResponse(u *model.User) userResponse {
	return userResponse{
		UserID:           u.UserID,
		Username:         u.Username,
		DisplayName:      u.DisplayName,
		PartnerID:        u.PartnerID,
		RegistrationDate: u.RegistrationDate,
		AuthDate:         u.AuthDate,
	}
}

type profileResponse struct {
	User           userResponse      `json:"user"`
	Partner        *adoptionResponse `json:"partner"`
	CollectionSize int               `json:"collection_size"`
	TotalBond      int64             `json:"total_bond"`
	CanRename      bool              `json:"can_rename"`
}

type publicProfileResponse struct {
	UserID         int64             `json:"user_id"`
	DisplayName    string            `json:"display_name"`
	Partner        *adoptionResponse `json:"partner"`
	CollectionSize int               `json:"collection_size"`
	TotalBond      int64             `json:"total_bond"`
}

type companionResponse struct {
	CompanionID int64  `json:"companion_id"`
	Name        string `json:"name"`
	Species     string `json:"species"`
	Rarity      string `json:"rarity"`
	Description string `json:"description"`
}

func newCompanionResponse(c *model.Companion) companionResponse {
	return companionResponse{
		CompanionID: c.CompanionID,
		Name:        c.Name,
		Species:     c.Species,
		Rarity:      string(c.Rarity),
		Description: c.Description,
	}
}

type adoptionResponse struct {
	AdoptionID   uuid.UUID         `json:"adoption_id"`
	Companion    companionResponse `json:"companion"`
	Bond         int64             `json:"bond"`
	AdoptedAt    time.Time         `json:"adopted_at"`
	DaysTogether int               `json:"days_together"`
	IsPartner    bool              `json:"is_partner"`
}

func newAdoptionResponse(a *model.Adoption) *adoptionResponse {
	if a == nil {
		return nil
	}
	return &adoptionResponse{
		AdoptionID:   a.AdoptionID,
		Companion:    newCompanionResponse(&a.Companion),
		Bond:         a.Bond,
		AdoptedAt:    a.AdoptedAt,
		DaysTogether: a.DaysTogether,
		IsPartner:    a.IsPartner,
	}
}

type offerResponse struct {
	Candidates []companionResponse `json:"candidates"`
	RolledOn   *cadence.Date       `json:"rolled_on"`
	CanRoll    bool                `json:"can_roll"`
	CanAdopt   bool                `json:"can_adopt"`
	NextReset  time.Time           `json:"next_reset"`
}

func newOfferResponse(o *model.Offer) offerResponse {
	out := offerResponse{
		Candidates: make([]companionResponse, len(o.Candidates)),
		RolledOn:   o.RolledOn,
		CanRoll:    o.CanRoll,
		CanAdopt:   o.CanAdopt,
		NextReset:  o.NextReset,
	}
	for i := range o.Candidates {
		out.Candidates[i] = newCompanionResponse(&o.Candidates[i])
	}
	return out
}

type partnerResponse struct {
	Partner     *adoptionResponse `json:"partner"`
	CanInteract bool              `json:"can_interact"`
	NextReset   time.Time         `json:"next_reset"`
}

type interactionResponse struct {
	Partner  *adoptionResponse `json:"partner"`
	Dialogue string            `json:"dialogue"`
}

type friendResponse struct {
	UserID      int64  `json:"user_id"`
	DisplayName string `json:"display_name"`
	TotalBond   int64  `json:"total_bond"`
}

type leaderboardEntryResponse struct {
	Rank        int    `json:"rank"`
	UserID      int64  `json:"user_id"`
	DisplayName string `json:"display_name"`
	Score       int64  `json:"score"`
}

type leaderboardResponse struct {
	Page    int                        `json:"page"`
	Size    int                        `json:"size"`
	Entries []leaderboardEntryResponse `json:"entries"`
}

func newLeaderboardResponse(p *model.LeaderboardPage) leaderboardResponse {
	out := leaderboardResponse{
		Page:    p.Page,
		Size:    p.Size,
		Entries: make([]leaderboardEntryResponse, len(p.Entries)),
	}
	for i, e := range p.Entries {
		out.Entries[i] = leaderboardEntryResponse{
			Rank:        e.Rank,
			UserID:      e.UserID,
			DisplayName: e.DisplayName,
			Score:       e.Score,
		}
	}
	return out
}
