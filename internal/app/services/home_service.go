package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/edureach/internal/app/models"
	"github.com/yigit/edureach/internal/app/models/dto"
	"github.com/yigit/edureach/internal/pkg/apperrors"
	"github.com/yigit/edureach/internal/pkg/helpers"
	"golang.org/x/sync/errgroup"
)

// RecentSummaryLimit is how many summaries the home page lists.
const RecentSummaryLimit = 5

// HomeService defines the interface for the home page
type HomeService interface {
	Load(ctx context.Context, sess SessionStore) (*dto.HomeView, []dto.Toast, error)
	ToastNotifications(ctx context.Context, sess SessionStore) ([]dto.Toast, error)
}

type homeServiceImpl struct {
	api  Backend
	opts Options
	log  zerolog.Logger
}

// NewHomeService creates a new HomeService
func NewHomeService(api Backend, opts Options) HomeService {
	opts = opts.withDefaults()
	return &homeServiceImpl{
		api:  api,
		opts: opts,
		log:  opts.Logger.With().Str("service", "home").Logger(),
	}
}

// Load builds the home page. Joined communities and summaries are fetched concurrently;
// a failure in either degrades to an empty section plus an error toast.
func (s *homeServiceImpl) Load(ctx context.Context, sess SessionStore) (*dto.HomeView, []dto.Toast, error) {
	user, err := currentUser(ctx, s.api, sess, s.log)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return &dto.HomeView{
			AvatarInitials:    "XX",
			JoinedCommunities: []dto.CommunityCard{},
			RecentSummaries:   []dto.SummaryCard{},
		}, nil, nil
	}

	token := sess.Token(ctx)
	var (
		communities    []models.Community
		summaries      []models.Summary
		communitiesErr error
		summariesErr   error
	)

	var g errgroup.Group
	g.Go(func() error {
		communities, communitiesErr = s.api.GetUserCommunities(ctx, token, user.ID)
		return nil
	})
	g.Go(func() error {
		summaries, summariesErr = s.api.GetUserSummaries(ctx, token, user.ID)
		return nil
	})
	_ = g.Wait()

	var toasts []dto.Toast
	if communitiesErr != nil {
		s.log.Error().Err(communitiesErr).Str("userId", user.ID).Msg("Failed to fetch joined communities")
		toasts = append(toasts, dto.ErrorToast(apperrors.UserMessage(communitiesErr)))
	}
	if summariesErr != nil {
		s.log.Error().Err(summariesErr).Str("userId", user.ID).Msg("Failed to fetch summaries")
		toasts = append(toasts, dto.ErrorToast(apperrors.UserMessage(summariesErr)))
	}

	view := &dto.HomeView{
		User:              *user,
		AvatarInitials:    helpers.Initials(user.FullName, 0, "XX"),
		ProfilePictureURL: helpers.AssetURL(s.opts.AssetBaseURL, user.ImagePath),
		JoinedCommunities: communityCards(models.DeriveAll(communities, user.ID), s.opts.AssetBaseURL),
		RecentSummaries:   s.summaryCards(summaries),
		DocumentCount:     len(summaries),
	}
	return view, toasts, nil
}

func (s *homeServiceImpl) summaryCards(summaries []models.Summary) []dto.SummaryCard {
	n := len(summaries)
	if n > RecentSummaryLimit {
		n = RecentSummaryLimit
	}
	now := s.opts.Now()
	cards := make([]dto.SummaryCard, 0, n)
	for _, sum := range summaries[:n] {
		card := dto.SummaryCard{
			ID:        sum.ID,
			Title:     sum.SummaryTitle,
			Preview:   helpers.Truncate(sum.SummaryResult, 80),
			Language:  sum.Language,
			CreatedAt: "Baru saja",
		}
		if sum.CreatedAt != nil {
			card.CreatedAt = helpers.RelativeTime(sum.CreatedAt.Time, now)
		}
		cards = append(cards, card)
	}
	return cards
}

// ToastNotifications turns every notification not yet shown into a toast and marks exactly
// those as shown. Marking failures are logged; the toast is still returned.
func (s *homeServiceImpl) ToastNotifications(ctx context.Context, sess SessionStore) ([]dto.Toast, error) {
	token := sess.Token(ctx)
	if token == "" {
		return nil, nil
	}

	notifications, err := s.api.GetNotifications(ctx, token)
	if err != nil {
		return nil, err
	}

	var toasts []dto.Toast
	for _, n := range notifications {
		if n.IsShown {
			continue
		}
		toasts = append(toasts, dto.InfoToast(n.Message))
		if err := s.api.UpdateNotification(ctx, token, n); err != nil {
			s.log.Warn().Err(err).Str("notificationId", n.ID).Msg("Failed to mark notification as shown")
		}
	}
	return toasts, nil
}
