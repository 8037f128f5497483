// Package services holds one service per page of the application. Services read the
// visitor's session, call the backend with its token and shape the responses into view
// models. Derived community fields are recomputed here, at the data-access boundary.
package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/edureach/internal/app/models"
	"github.com/yigit/edureach/internal/app/models/dto"
	"github.com/yigit/edureach/internal/backend"
	"github.com/yigit/edureach/internal/pkg/helpers"
)

// SessionStore is the visitor session the services read and write.
type SessionStore interface {
	Token(ctx context.Context) string
	User(ctx context.Context) *models.User
	SetToken(ctx context.Context, token string) error
	SetUser(ctx context.Context, user *models.User) error
	ClearUser(ctx context.Context) error
	UpdateUser(ctx context.Context, patch models.UserPatch) (*models.User, error)
}

// Backend is the subset of the backend API the services use.
type Backend interface {
	Login(ctx context.Context, in backend.LoginRequest) (string, error)
	Register(ctx context.Context, in backend.RegisterRequest) error
	GetCurrentUser(ctx context.Context, token string) (*models.User, error)
	UpdateUser(ctx context.Context, token string, in backend.UpdateUserRequest) (*models.User, error)
	ChangePassword(ctx context.Context, token string, in backend.ChangePasswordRequest) error

	GetLocations(ctx context.Context, token string) ([]models.Location, error)
	GetCommunities(ctx context.Context, token string) ([]models.Community, error)
	GetCommunity(ctx context.Context, token, id string) (*models.Community, error)
	GetUserCommunities(ctx context.Context, token, userID string) ([]models.Community, error)
	CreateCommunity(ctx context.Context, token string, in backend.CreateCommunityRequest) (*models.Community, error)
	AddMember(ctx context.Context, token string, in backend.AddMemberRequest) error

	GetSchedules(ctx context.Context, token string) ([]models.Schedule, error)
	CreateSchedule(ctx context.Context, token string, in backend.CreateScheduleRequest) (*models.Schedule, error)
	DeleteSchedule(ctx context.Context, token, id string) error

	GetNotifications(ctx context.Context, token string) ([]models.Notification, error)
	UpdateNotification(ctx context.Context, token string, n models.Notification) error
	CheckNotification(ctx context.Context, token string, n models.Notification) error

	SummarizeUpload(ctx context.Context, token string, in backend.SummarizeRequest) (*models.Summary, error)
	GetUserSummaries(ctx context.Context, token, userID string) ([]models.Summary, error)
}

var _ Backend = (*backend.Client)(nil)

// Options are shared by every service.
type Options struct {
	// AssetBaseURL is prefixed to image paths returned by the backend.
	AssetBaseURL string
	// Location is used to combine schedule dates and times. Defaults to time.Local.
	Location *time.Location
	// Now defaults to time.Now.
	Now    func() time.Time
	Logger zerolog.Logger
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Services groups every page service.
type Services struct {
	Auth         AuthService
	Home         HomeService
	Community    CommunityService
	Schedule     ScheduleService
	Notification NotificationService
	Profile      ProfileService
	Summarizer   SummarizerService
}

// New wires every service onto one backend.
func New(api Backend, opts Options) *Services {
	opts = opts.withDefaults()
	return &Services{
		Auth:         NewAuthService(api, opts.Logger),
		Home:         NewHomeService(api, opts),
		Community:    NewCommunityService(api, opts),
		Schedule:     NewScheduleService(api, opts),
		Notification: NewNotificationService(api, opts),
		Profile:      NewProfileService(api, opts),
		Summarizer:   NewSummarizerService(api, opts.Logger),
	}
}

// currentUser returns the cached user, fetching and caching it when the session holds a
// token but no user. It returns nil without error when there is no token.
func currentUser(ctx context.Context, api Backend, sess SessionStore, logger zerolog.Logger) (*models.User, error) {
	token := sess.Token(ctx)
	if token == "" {
		return nil, nil
	}
	if user := sess.User(ctx); user != nil {
		return user, nil
	}

	user, err := api.GetCurrentUser(ctx, token)
	if err != nil {
		return nil, err
	}
	if user != nil {
		if err := sess.SetUser(ctx, user); err != nil {
			logger.Warn().Err(err).Msg("Failed to cache current user")
		}
	}
	return user, nil
}

// communityCard builds the list entry for an already derived community.
func communityCard(c models.Community, assetBaseURL string) dto.CommunityCard {
	return dto.CommunityCard{
		ID:             c.ID,
		Name:           c.Name,
		Description:    c.Description,
		Initials:       helpers.Initials(c.Name, 2, "?"),
		ImageURL:       helpers.AssetURL(assetBaseURL, c.ImagePath),
		Location:       c.Location,
		MemberCount:    len(c.Members),
		VolunteerCount: len(c.Volunteers),
		IsJoined:       c.IsJoined,
	}
}

func communityCards(communities []models.Community, assetBaseURL string) []dto.CommunityCard {
	cards := make([]dto.CommunityCard, 0, len(communities))
	for _, c := range communities {
		cards = append(cards, communityCard(c, assetBaseURL))
	}
	return cards
}

func userID(u *models.User) string {
	if u == nil {
		return ""
	}
	return u.ID
}
