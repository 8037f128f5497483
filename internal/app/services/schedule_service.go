package services

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/edureach/internal/app/models"
	"github.com/yigit/edureach/internal/app/models/dto"
	"github.com/yigit/edureach/internal/backend"
	"github.com/yigit/edureach/internal/pkg/apperrors"
	"github.com/yigit/edureach/internal/pkg/helpers"
	"github.com/yigit/edureach/internal/pkg/validation"
)

// ScheduleService defines the interface for community schedules
type ScheduleService interface {
	List(ctx context.Context, sess SessionStore, communityID string) (*dto.ScheduleListView, error)
	Create(ctx context.Context, sess SessionStore, communityID string, form dto.ScheduleForm) (*dto.ScheduleListView, error)
	Delete(ctx context.Context, sess SessionStore, communityID, scheduleID string) (*dto.ScheduleListView, error)
}

type scheduleServiceImpl struct {
	api  Backend
	opts Options
	log  zerolog.Logger
}

// NewScheduleService creates a new ScheduleService
func NewScheduleService(api Backend, opts Options) ScheduleService {
	opts = opts.withDefaults()
	return &scheduleServiceImpl{
		api:  api,
		opts: opts,
		log:  opts.Logger.With().Str("service", "schedule").Logger(),
	}
}

// List returns the schedules of one community. The backend returns every schedule; the
// ones of other communities are dropped here.
func (s *scheduleServiceImpl) List(ctx context.Context, sess SessionStore, communityID string) (*dto.ScheduleListView, error) {
	user, err := currentUser(ctx, s.api, sess, s.log)
	if err != nil {
		return nil, err
	}

	schedules, err := s.api.GetSchedules(ctx, sess.Token(ctx))
	if err != nil {
		return nil, err
	}

	return &dto.ScheduleListView{
		CommunityID:        communityID,
		CanManageSchedules: user != nil && user.IsVolunteer,
		Schedules:          scheduleViews(schedulesFor(schedules, communityID), s.opts.Location),
	}, nil
}

// Create combines the form's date and time and creates the schedule. Only volunteers may.
func (s *scheduleServiceImpl) Create(ctx context.Context, sess SessionStore, communityID string, form dto.ScheduleForm) (*dto.ScheduleListView, error) {
	if err := validation.Struct(form); err != nil {
		return nil, err
	}
	if _, err := s.requireVolunteer(ctx, sess); err != nil {
		return nil, err
	}

	at, err := helpers.CombineDateTime(form.Date, form.Time, s.opts.Location)
	if err != nil {
		return nil, (&validation.Errors{}).Add("date", "Tanggal atau waktu tidak valid.")
	}

	if _, err := s.api.CreateSchedule(ctx, sess.Token(ctx), backend.CreateScheduleRequest{
		CommunityID:  communityID,
		ScheduleTime: at,
	}); err != nil {
		s.log.Error().Err(err).Str("communityId", communityID).Msg("Failed to create schedule")
		return nil, err
	}
	return s.List(ctx, sess, communityID)
}

// Delete removes a schedule. Only volunteers may.
func (s *scheduleServiceImpl) Delete(ctx context.Context, sess SessionStore, communityID, scheduleID string) (*dto.ScheduleListView, error) {
	if _, err := s.requireVolunteer(ctx, sess); err != nil {
		return nil, err
	}

	if err := s.api.DeleteSchedule(ctx, sess.Token(ctx), scheduleID); err != nil {
		s.log.Error().Err(err).Str("scheduleId", scheduleID).Msg("Failed to delete schedule")
		return nil, err
	}
	return s.List(ctx, sess, communityID)
}

func (s *scheduleServiceImpl) requireVolunteer(ctx context.Context, sess SessionStore) (*models.User, error) {
	user, err := currentUser(ctx, s.api, sess, s.log)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsVolunteer {
		return nil, apperrors.NewForbiddenError("Hanya relawan yang dapat mengelola jadwal.")
	}
	return user, nil
}

func schedulesFor(schedules []models.Schedule, communityID string) []models.Schedule {
	out := make([]models.Schedule, 0, len(schedules))
	for _, sc := range schedules {
		if sc.CommunityID == communityID {
			out = append(out, sc)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ScheduleTime.Before(out[j].ScheduleTime.Time)
	})
	return out
}

func scheduleViews(schedules []models.Schedule, loc *time.Location) []dto.ScheduleView {
	views := make([]dto.ScheduleView, 0, len(schedules))
	for _, sc := range schedules {
		local := sc.ScheduleTime.In(loc)
		views = append(views, dto.ScheduleView{
			ID:           sc.ID,
			ScheduleTime: sc.ScheduleTime.Time,
			Date:         local.Format("2006-01-02"),
			Time:         local.Format("15:04"),
			VolunteerID:  sc.VolunteerID,
		})
	}
	return views
}
