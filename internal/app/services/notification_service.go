package services

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"github.com/yigit/edureach/internal/app/models"
	"github.com/yigit/edureach/internal/app/models/dto"
	"github.com/yigit/edureach/internal/pkg/apperrors"
	"github.com/yigit/edureach/internal/pkg/helpers"
)

// NotificationService defines the interface for the notification page
type NotificationService interface {
	List(ctx context.Context, sess SessionStore) (*dto.NotificationListView, error)
	Check(ctx context.Context, sess SessionStore, id string) (*dto.NotificationListView, error)
}

type notificationServiceImpl struct {
	api  Backend
	opts Options
	log  zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(api Backend, opts Options) NotificationService {
	opts = opts.withDefaults()
	return &notificationServiceImpl{
		api:  api,
		opts: opts,
		log:  opts.Logger.With().Str("service", "notification").Logger(),
	}
}

// List splits the notifications into unchecked and checked, newest first. Listing does not
// change any flag.
func (s *notificationServiceImpl) List(ctx context.Context, sess SessionStore) (*dto.NotificationListView, error) {
	notifications, err := s.api.GetNotifications(ctx, sess.Token(ctx))
	if err != nil {
		return nil, err
	}
	return s.view(notifications), nil
}

// Check acknowledges one notification and returns the refreshed list.
func (s *notificationServiceImpl) Check(ctx context.Context, sess SessionStore, id string) (*dto.NotificationListView, error) {
	token := sess.Token(ctx)
	notifications, err := s.api.GetNotifications(ctx, token)
	if err != nil {
		return nil, err
	}

	var target *models.Notification
	for i := range notifications {
		if notifications[i].ID == id {
			target = &notifications[i]
			break
		}
	}
	if target == nil {
		if token == "" {
			return s.view(nil), nil
		}
		return nil, apperrors.NewResourceNotFoundError("Notifikasi tidak ditemukan.")
	}

	if !target.IsChecked {
		if err := s.api.CheckNotification(ctx, token, *target); err != nil {
			s.log.Error().Err(err).Str("notificationId", id).Msg("Failed to check notification")
			return nil, err
		}
		target.IsChecked = true
	}
	return s.view(notifications), nil
}

func (s *notificationServiceImpl) view(notifications []models.Notification) *dto.NotificationListView {
	sorted := make([]models.Notification, len(notifications))
	copy(sorted, notifications)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt.Time)
	})

	now := s.opts.Now()
	view := &dto.NotificationListView{
		Unchecked: []dto.NotificationView{},
		Checked:   []dto.NotificationView{},
	}
	for _, n := range sorted {
		nv := dto.NotificationView{Notification: n, TimeAgo: helpers.RelativeTime(n.CreatedAt.Time, now)}
		if n.IsChecked {
			view.Checked = append(view.Checked, nv)
		} else {
			view.Unchecked = append(view.Unchecked, nv)
		}
	}
	view.UncheckedCount = len(view.Unchecked)
	return view
}
