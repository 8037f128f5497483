package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/edureach/internal/app/models"
	"github.com/yigit/edureach/internal/app/models/dto"
	"github.com/yigit/edureach/internal/backend"
	"github.com/yigit/edureach/internal/pkg/helpers"
	"github.com/yigit/edureach/internal/pkg/validation"
)

// ProfileService defines the interface for the profile page
type ProfileService interface {
	Get(ctx context.Context, sess SessionStore) (*dto.ProfileView, error)
	Update(ctx context.Context, sess SessionStore, form dto.ProfileForm, image *backend.File) (*dto.ProfileView, error)
	ChangePassword(ctx context.Context, sess SessionStore, form dto.PasswordForm) error
}

type profileServiceImpl struct {
	api  Backend
	opts Options
	log  zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(api Backend, opts Options) ProfileService {
	opts = opts.withDefaults()
	return &profileServiceImpl{
		api:  api,
		opts: opts,
		log:  opts.Logger.With().Str("service", "profile").Logger(),
	}
}

func (s *profileServiceImpl) Get(ctx context.Context, sess SessionStore) (*dto.ProfileView, error) {
	user, err := currentUser(ctx, s.api, sess, s.log)
	if err != nil || user == nil {
		return nil, err
	}
	return s.view(*user), nil
}

// Update sends the profile form and merges the change into the cached user. The full name
// is split into the first word and the rest.
func (s *profileServiceImpl) Update(ctx context.Context, sess SessionStore, form dto.ProfileForm, image *backend.File) (*dto.ProfileView, error) {
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

	token := sess.Token(ctx)
	if token == "" {
		return nil, nil
	}

	first, last := helpers.SplitFullName(form.FullName)
	updated, err := s.api.UpdateUser(ctx, token, backend.UpdateUserRequest{
		FirstName: first,
		LastName:  last,
		Dob:       form.DateOfBirth,
		Email:     form.Email,
		Image:     image,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to update profile")
		return nil, err
	}

	patch := models.UserPatch{
		FullName:    &form.FullName,
		FirstName:   &first,
		LastName:    &last,
		Email:       &form.Email,
		DateOfBirth: &form.DateOfBirth,
	}
	if updated != nil && updated.ImagePath != "" {
		patch.ImagePath = &updated.ImagePath
	}

	merged, err := sess.UpdateUser(ctx, patch)
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to update cached user")
	}
	if merged == nil {
		merged = updated
	}
	if merged == nil {
		if merged, err = currentUser(ctx, s.api, sess, s.log); err != nil || merged == nil {
			return nil, err
		}
	}
	return s.view(*merged), nil
}

// ChangePassword sends the new password. The current password is only checked for length,
// the backend endpoint does not take it.
func (s *profileServiceImpl) ChangePassword(ctx context.Context, sess SessionStore, form dto.PasswordForm) error {
	if err := validation.Struct(form); err != nil {
		return err
	}
	return s.api.ChangePassword(ctx, sess.Token(ctx), backend.ChangePasswordRequest{
		Password:        form.NewPassword,
		ConfirmPassword: form.ConfirmPassword,
	})
}

func (s *profileServiceImpl) view(user models.User) *dto.ProfileView {
	return &dto.ProfileView{
		User:           user,
		AvatarInitials: helpers.Initials(user.FullName, 0, "XX"),
		ImageURL:       helpers.AssetURL(s.opts.AssetBaseURL, user.ImagePath),
	}
}
