package services

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/edureach/internal/app/models"
	"github.com/yigit/edureach/internal/app/models/dto"
	"github.com/yigit/edureach/internal/backend"
	"github.com/yigit/edureach/internal/pkg/apperrors"
	"github.com/yigit/edureach/internal/pkg/helpers"
	"github.com/yigit/edureach/internal/pkg/validation"
	"golang.org/x/sync/errgroup"
)

// CommunityService defines the interface for community operations
type CommunityService interface {
	List(ctx context.Context, sess SessionStore, query dto.CommunityQuery) (*dto.CommunityListView, error)
	Get(ctx context.Context, sess SessionStore, id string) (*dto.CommunityDetailView, error)
	Join(ctx context.Context, sess SessionStore, id string) (*dto.CommunityDetailView, error)
	Create(ctx context.Context, sess SessionStore, form dto.CommunityForm, image *backend.File) (*models.Community, error)
	Locations(ctx context.Context, sess SessionStore) ([]models.Location, error)
}

type communityServiceImpl struct {
	api  Backend
	opts Options
	log  zerolog.Logger
}

// NewCommunityService creates a new CommunityService
func NewCommunityService(api Backend, opts Options) CommunityService {
	opts = opts.withDefaults()
	return &communityServiceImpl{
		api:  api,
		opts: opts,
		log:  opts.Logger.With().Str("service", "community").Logger(),
	}
}

// List fetches locations and communities concurrently. Both must succeed.
func (s *communityServiceImpl) List(ctx context.Context, sess SessionStore, query dto.CommunityQuery) (*dto.CommunityListView, error) {
	user, err := currentUser(ctx, s.api, sess, s.log)
	if err != nil {
		return nil, err
	}
	token := sess.Token(ctx)

	var (
		locations   []models.Location
		communities []models.Community
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		locations, err = s.api.GetLocations(gctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		communities, err = s.api.GetCommunities(gctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error().Err(err).Msg("Failed to load community list")
		return nil, err
	}

	if locations == nil {
		locations = []models.Location{}
	}
	communities = attachLocations(communities, locations)

	cards := communityCards(models.DeriveAll(communities, userID(user)), s.opts.AssetBaseURL)
	return &dto.CommunityListView{
		Communities: sortCards(filterCards(cards, query), query.Sort),
		Locations:   locations,
		Query:       query,
	}, nil
}

// filterCards keeps cards whose name or description contains q (case-insensitive) and,
// when set, whose location matches.
func filterCards(cards []dto.CommunityCard, query dto.CommunityQuery) []dto.CommunityCard {
	q := strings.ToLower(query.Q)
	out := make([]dto.CommunityCard, 0, len(cards))
	for _, c := range cards {
		if q != "" && !strings.Contains(strings.ToLower(c.Name), q) && !strings.Contains(strings.ToLower(c.Description), q) {
			continue
		}
		if query.LocationID != "" && (c.Location == nil || c.Location.ID != query.LocationID) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// sortCards orders cards in place. Counts sort descending, names ascending; ties keep
// backend order.
func sortCards(cards []dto.CommunityCard, by string) []dto.CommunityCard {
	var less func(a, b dto.CommunityCard) bool
	switch by {
	case dto.SortByMembers:
		less = func(a, b dto.CommunityCard) bool { return a.MemberCount > b.MemberCount }
	case dto.SortByVolunteers:
		less = func(a, b dto.CommunityCard) bool { return a.VolunteerCount > b.VolunteerCount }
	case dto.SortByName:
		less = func(a, b dto.CommunityCard) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case dto.SortByLocation:
		less = func(a, b dto.CommunityCard) bool { return locationName(a.Location) < locationName(b.Location) }
	default:
		return cards
	}
	sort.SliceStable(cards, func(i, j int) bool { return less(cards[i], cards[j]) })
	return cards
}

func locationName(l *models.Location) string {
	if l == nil {
		return ""
	}
	return strings.ToLower(l.City)
}

// attachLocations fills in Location from the location list when the backend only sent
// the id.
func attachLocations(communities []models.Community, locations []models.Location) []models.Community {
	byID := make(map[string]models.Location, len(locations))
	for _, l := range locations {
		byID[l.ID] = l
	}
	out := make([]models.Community, len(communities))
	for i, c := range communities {
		if c.Location == nil {
			if l, ok := byID[c.LocationID]; ok {
				l := l
				c.Location = &l
			}
		}
		out[i] = c
	}
	return out
}

// Get fetches one community with its schedules.
func (s *communityServiceImpl) Get(ctx context.Context, sess SessionStore, id string) (*dto.CommunityDetailView, error) {
	user, err := currentUser(ctx, s.api, sess, s.log)
	if err != nil {
		return nil, err
	}
	token := sess.Token(ctx)

	var (
		community *models.Community
		schedules []models.Schedule
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		community, err = s.api.GetCommunity(gctx, token, id)
		return err
	})
	g.Go(func() error {
		var err error
		schedules, err = s.api.GetSchedules(gctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if community == nil {
		if token == "" {
			return nil, nil
		}
		return nil, apperrors.NewResourceNotFoundError("Komunitas tidak ditemukan.")
	}

	derived := models.Derive(*community, userID(user))
	return &dto.CommunityDetailView{
		Community:          derived,
		ImageURL:           helpers.AssetURL(s.opts.AssetBaseURL, derived.ImagePath),
		CanManageSchedules: user != nil && user.IsVolunteer,
		Schedules:          scheduleViews(schedulesFor(schedules, derived.ID), s.opts.Location),
	}, nil
}

// Join adds the current user to the community and returns the refreshed page.
func (s *communityServiceImpl) Join(ctx context.Context, sess SessionStore, id string) (*dto.CommunityDetailView, error) {
	user, err := currentUser(ctx, s.api, sess, s.log)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	if err := s.api.AddMember(ctx, sess.Token(ctx), backend.AddMemberRequest{CommunityID: id, MemberID: user.ID}); err != nil {
		s.log.Error().Err(err).Str("communityId", id).Str("userId", user.ID).Msg("Failed to join community")
		return nil, err
	}
	s.log.Info().Str("communityId", id).Str("userId", user.ID).Msg("User joined community")
	return s.Get(ctx, sess, id)
}

// Create validates the form and image and creates the community.
func (s *communityServiceImpl) Create(ctx context.Context, sess SessionStore, form dto.CommunityForm, image *backend.File) (*models.Community, error) {
	var imageErr error
	if image != nil {
		imageErr = validation.CheckImage("image", image.Content)
	}
	if err := validation.Merge(validation.Struct(form), imageErr); err != nil {
		return nil, err
	}
	if image != nil && image.ContentType == "" {
		image.ContentType = validation.DetectContentType(image.Content)
	}

	community, err := s.api.CreateCommunity(ctx, sess.Token(ctx), backend.CreateCommunityRequest{
		Name:        form.Name,
		Description: form.Description,
		LocationID:  form.LocationID,
		Image:       image,
	})
	if err != nil {
		s.log.Error().Err(err).Str("name", form.Name).Msg("Failed to create community")
		return nil, err
	}
	return community, nil
}

// Locations lists every location for the creation form.
func (s *communityServiceImpl) Locations(ctx context.Context, sess SessionStore) ([]models.Location, error) {
	locations, err := s.api.GetLocations(ctx, sess.Token(ctx))
	if err != nil {
		return nil, err
	}
	if locations == nil {
		locations = []models.Location{}
	}
	return locations, nil
}
