package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/yigit/edureach/internal/app/models"
	"github.com/yigit/edureach/internal/pkg/apperrors"
)

// LoginRequest is the body of user/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of user/register.
type RegisterRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	DateOfBirth     string `json:"dateOfBirth"`
	IsVolunteer     bool   `json:"isVolunteer"`
}

// UpdateUserRequest is sent as multipart to PUT user.
type UpdateUserRequest struct {
	FirstName string
	LastName  string
	Dob       string
	Email     string
	Image     *File
}

// ChangePasswordRequest is the body of PUT user/password.
type ChangePasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Login exchanges credentials for a bearer token. The backend answers with the token either
// as a JSON string, a {"token": ...} object or plain text.
func (c *Client) Login(ctx context.Context, in LoginRequest) (string, error) {
	req, err := jsonRequest(http.MethodPost, "user/login", "", in)
	if err != nil {
		return "", err
	}
	body, err := c.do(ctx, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) || errors.Is(err, apperrors.ErrBadRequest) || errors.Is(err, apperrors.ErrResourceNotFound) {
			return "", apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Email atau password salah.")
		}
		return "", err
	}

	token := parseToken(body)
	if token == "" {
		return "", apperrors.NewCustomError(apperrors.ErrBackendResponse, "Server tidak mengirimkan token.")
	}
	return token, nil
}

func parseToken(body []byte) string {
	raw := strings.TrimSpace(string(body))
	if raw == "" {
		return ""
	}

	var s string
	if err := json.Unmarshal([]byte(raw), &s); err == nil {
		return s
	}

	var obj struct {
		Token       string `json:"token"`
		AccessToken string `json:"accessToken"`
	}
	if err := json.Unmarshal([]byte(raw), &obj); err == nil {
		if obj.Token != "" {
			return obj.Token
		}
		return obj.AccessToken
	}

	if strings.ContainsAny(raw, "{}[] \n") {
		return ""
	}
	return raw
}

// Register creates an account. It does not log the user in.
func (c *Client) Register(ctx context.Context, in RegisterRequest) error {
	return c.sendJSON(ctx, http.MethodPost, "user/register", "", in, nil)
}

// GetCurrentUser returns the user owning token, or nil when token is empty.
func (c *Client) GetCurrentUser(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}
	var user models.User
	if err := c.getJSON(ctx, "user", token, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser sends the profile form as multipart and returns the updated record when the
// backend echoes one.
func (c *Client) UpdateUser(ctx context.Context, token string, in UpdateUserRequest) (*models.User, error) {
	if token == "" {
		return nil, nil
	}

	body, contentType, err := encodeMultipart([]formField{
		{"FirstName", in.FirstName},
		{"LastName", in.LastName},
		{"Dob", in.Dob},
		{"Email", in.Email},
	}, "Image", in.Image)
	if err != nil {
		return nil, err
	}

	raw, err := c.do(ctx, request{method: http.MethodPut, path: "user", token: token, body: body, contentType: contentType})
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil || user.ID == "" {
		return nil, nil
	}
	return &user, nil
}

// ChangePassword sets a new password for the token's owner.
func (c *Client) ChangePassword(ctx context.Context, token string, in ChangePasswordRequest) error {
	if token == "" {
		return nil
	}
	return c.sendJSON(ctx, http.MethodPut, "user/password", token, in, nil)
}
