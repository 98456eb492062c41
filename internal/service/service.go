package service

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"companion_collection/internal/model"
	"companion_collection/internal/repository"
	"companion_collection/pkg/cadence"
	"companion_collection/pkg/ranking"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrCompanionNotFound = errors.New("companion not found")
	ErrAdoptionNotFound  = errors.New("adoption not found")
	ErrAlreadyRegistered = errors.New("user already registered")

	ErrActionUnavailable  = errors.New("action already performed today")
	ErrNoPartner          = errors.New("no partner selected")
	ErrNotInOffer         = errors.New("companion is not in today's offer")
	ErrCollectionFull     = errors.New("collection is full")
	ErrCollectionComplete = errors.New("every companion has already been adopted")

	ErrNoAvatar = errors.New("no avatar found")

	ErrInvalidDisplayName = errors.New("display name must be between 1 and 32 characters")
	ErrSelfFriend         = errors.New("cannot befriend yourself")
	ErrInvalidArgument    = errors.New("invalid argument")
)

type GameConfig struct {
	ResetHour          int   `mapstructure:"resetHour"`
	CandidatesPerRoll  int   `mapstructure:"candidatesPerRoll"`
	MaxCollectionSize  int   `mapstructure:"maxCollectionSize"`
	BondPerInteraction int64 `mapstructure:"bondPerInteraction"`
	DefaultPageSize    int   `mapstructure:"defaultPageSize"`
	MaxPageSize        int   `mapstructure:"maxPageSize"`
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Randomizer is the source of randomness for offers and dialogue.
type Randomizer interface {
	Shuffle(n int, swap func(i, j int))
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }
func (globalRand) IntN(n int) int                     { return rand.Intn(n) }

func DefaultRandomizer() Randomizer {
	return globalRand{}
}

type Service struct {
	*UserService
	*CatalogService
	*AdoptionService
	*BondService
	*FriendService
	*LeaderboardService
}

type UserServiceI interface {
	RegisterUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
	GetProfile(ctx context.Context, userID int64) (*model.Profile, error)
	Rename(ctx context.Context, userID int64, displayName string) error
	TouchAuthDate(ctx context.Context, userID int64, authDate time.Time) error
	GetAvatar(ctx context.Context, userID int64) (string, error)
}

// AvatarSource resolves the file path of a user's profile photo. An empty
// path means the user has none.
type AvatarSource interface {
	AvatarFilePath(ctx context.Context, userID int64) (string, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
	UpdateAuthDate(ctx context.Context, userID int64, authDate time.Time) error
	RenameUser(ctx context.Context, userID int64, displayName string, today cadence.Date) error
	GetDailyState(ctx context.Context, userID int64) (*model.DailyState, error)
	GetAdoption(ctx context.Context, adoptionID uuid.UUID) (*model.Adoption, error)
	CountAdoptions(ctx context.Context, userID int64) (int, error)
	TotalBond(ctx context.Context, userID int64) (int64, error)
}

type CatalogServiceI interface {
	ListCompanions(ctx context.Context) ([]*model.Companion, error)
	GetCompanion(ctx context.Context, companionID int64) (*model.Companion, error)
}

type CatalogRepository interface {
	ListCompanions(ctx context.Context) ([]*model.Companion, error)
	GetCompanion(ctx context.Context, companionID int64) (*model.Companion, error)
}

type AdoptionServiceI interface {
	GetOffer(ctx context.Context, userID int64) (*model.Offer, error)
	Roll(ctx context.Context, userID int64) (*model.Offer, error)
	Adopt(ctx context.Context, userID, companionID int64) (*model.Adoption, error)
}

type AdoptionRepository interface {
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
	GetDailyState(ctx context.Context, userID int64) (*model.DailyState, error)
	ListUnownedCompanionIDs(ctx context.Context, userID int64) ([]int64, error)
	GetCompanionsByIDs(ctx context.Context, ids []int64) ([]*model.Companion, error)
	SaveRoll(ctx context.Context, userID int64, candidateIDs []int64, today cadence.Date) error
	CountAdoptions(ctx context.Context, userID int64) (int, error)
	CreateAdoption(ctx context.Context, adoption *model.Adoption, today cadence.Date) error
}

type BondServiceI interface {
	ListCollection(ctx context.Context, userID int64) ([]*model.Adoption, error)
	GetPartner(ctx context.Context, userID int64) (*model.PartnerStatus, error)
	SetPartner(ctx context.Context, userID int64, adoptionID uuid.UUID) (*model.Adoption, error)
	Interact(ctx context.Context, userID int64) (*model.Interaction, error)
}

type BondRepository interface {
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
	GetDailyState(ctx context.Context, userID int64) (*model.DailyState, error)
	ListAdoptions(ctx context.Context, userID int64) ([]*model.Adoption, error)
	GetAdoption(ctx context.Context, adoptionID uuid.UUID) (*model.Adoption, error)
	SetPartner(ctx context.Context, userID int64, adoptionID uuid.UUID) error
	Interact(ctx context.Context, userID int64, adoptionID uuid.UUID, bond int64, today cadence.Date) (*model.Adoption, error)
}

type FriendServiceI interface {
	AddFriend(ctx context.Context, userID, friendID int64) error
	RemoveFriend(ctx context.Context, userID, friendID int64) error
	ListFriends(ctx context.Context, userID int64) ([]*model.Friend, error)
}

type FriendRepository interface {
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
	AddFriend(ctx context.Context, userID, friendID int64, at time.Time) error
	RemoveFriend(ctx context.Context, userID, friendID int64) error
	ListFriends(ctx context.Context, userID int64) ([]*model.Friend, error)
}

type LeaderboardServiceI interface {
	TotalBond(ctx context.Context, page, size int) (*model.LeaderboardPage, error)
	CompanionBond(ctx context.Context, companionID int64, page, size int) (*model.LeaderboardPage, error)
	Friends(ctx context.Context, userID int64, page, size int) (*model.LeaderboardPage, error)
}

type LeaderboardRepository interface {
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
	GetCompanion(ctx context.Context, companionID int64) (*model.Companion, error)
	ListFriendIDs(ctx context.Context, userID int64) ([]int64, error)
	LeaderboardPage(ctx context.Context, scope repository.LeaderboardScope, offset, limit int) ([]*model.LeaderboardEntry, error)
	LeaderboardBoundary(ctx context.Context, scope repository.LeaderboardScope, offset int) (ranking.Boundary, error)
}

func mapUserErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}
