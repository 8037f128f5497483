package devbackend

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/edureach/internal/app/models"
	"github.com/yigit/edureach/internal/backend"
	"github.com/yigit/edureach/internal/pkg/apperrors"
	"github.com/yigit/edureach/internal/pkg/auth"
)

const testPDF = "%PDF-1.4\n1 0 obj\n<< /Length 44 >>\nstream\nBT /F1 12 Tf (Belajar membaca bersama) Tj ET\nendstream\nendobj\n%%EOF\n"

var testPNG = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	auth.BcryptCost = bcrypt.MinCost
	os.Exit(m.Run())
}

func newTestBackend(t *testing.T, seed bool) (*Server, *backend.Client) {
	t.Helper()
	srv, err := New(Options{
		JWTSecret:   "test-secret",
		TokenTTL:    time.Hour,
		StoragePath: t.TempDir(),
		SeedDemo:    seed,
		Logger:      zerolog.Nop(),
	})
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	return srv, backend.New(backend.Options{BaseURL: ts.URL + "/api", Logger: zerolog.Nop()})
}

func register(t *testing.T, client *backend.Client, email string, volunteer bool) string {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, client.Register(ctx, backend.RegisterRequest{
		FirstName:       "Rina",
		LastName:        "Wati",
		Email:           email,
		Password:        "rahasia123",
		ConfirmPassword: "rahasia123",
		DateOfBirth:     "2001-05-17",
		IsVolunteer:     volunteer,
	}))
	token, err := client.Login(ctx, backend.LoginRequest{Email: email, Password: "rahasia123"})
	require.NoError(t, err)
	return token
}

func TestRegisterLoginAndCurrentUser(t *testing.T) {
	_, client := newTestBackend(t, false)
	token := register(t, client, "rina@mail.com", false)

	user, err := client.GetCurrentUser(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Rina Wati", user.FullName)
	assert.Equal(t, "rina@mail.com", user.Email)
	assert.False(t, user.IsVolunteer)
}

func TestLoginWrongPassword(t *testing.T) {
	_, client := newTestBackend(t, false)
	register(t, client, "rina@mail.com", false)

	_, err := client.Login(context.Background(), backend.LoginRequest{Email: "rina@mail.com", Password: "salah123"})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	_, client := newTestBackend(t, false)
	register(t, client, "rina@mail.com", false)

	err := client.Register(context.Background(), backend.RegisterRequest{
		FirstName: "Lain", Email: "RINA@mail.com", Password: "rahasia123", ConfirmPassword: "rahasia123",
	})
	assert.True(t, errors.Is(err, apperrors.ErrConflict))

	var httpErr *backend.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, "Email sudah terdaftar.", httpErr.Message())
}

func TestRejectsMissingOrForeignToken(t *testing.T) {
	_, client := newTestBackend(t, false)

	_, err := client.GetCommunities(context.Background(), "not-a-jwt")
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))

	other := auth.NewJWTService(auth.JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour})
	forged, err := other.GenerateToken("u1", "a@b.com")
	require.NoError(t, err)
	_, err = client.GetLocations(context.Background(), forged)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestCommunityLifecycle(t *testing.T) {
	_, client := newTestBackend(t, true)
	ctx := context.Background()
	token := register(t, client, "rina@mail.com", false)

	locations, err := client.GetLocations(ctx, token)
	require.NoError(t, err)
	require.NotEmpty(t, locations)

	created, err := client.CreateCommunity(ctx, token, backend.CreateCommunityRequest{
		Name:        "Kelas Sore",
		Description: "Belajar bersama",
		LocationID:  locations[0].ID,
		Image:       &backend.File{Name: "logo.png", Content: testPNG},
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "Belajar bersama", created.Description)
	assert.True(t, strings.HasPrefix(created.ImagePath, "uploads/communities/"))
	require.Len(t, created.Members, 1, "the creator joins")

	user, err := client.GetCurrentUser(ctx, token)
	require.NoError(t, err)

	all, err := client.GetCommunities(ctx, token)
	require.NoError(t, err)
	var seeded models.Community
	for _, c := range all {
		if c.Name == "Literasi Bali" {
			seeded = c
		}
	}
	require.NotEmpty(t, seeded.ID)

	require.NoError(t, client.AddMember(ctx, token, backend.AddMemberRequest{CommunityID: seeded.ID, MemberID: user.ID}))
	require.NoError(t, client.AddMember(ctx, token, backend.AddMemberRequest{CommunityID: seeded.ID, MemberID: user.ID}))

	mine, err := client.GetUserCommunities(ctx, token, user.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	one, err := client.GetCommunity(ctx, token, seeded.ID)
	require.NoError(t, err)
	assert.Len(t, one.Members, 2, "joining twice adds one member")

	_, err = client.GetCommunity(ctx, token, "missing")
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))
}

func TestCreateCommunityRejectsNonImage(t *testing.T) {
	_, client := newTestBackend(t, false)
	token := register(t, client, "rina@mail.com", false)

	_, err := client.CreateCommunity(context.Background(), token, backend.CreateCommunityRequest{
		Name:  "Kelas",
		Image: &backend.File{Name: "logo.png", Content: []byte(testPDF)},
	})
	assert.True(t, errors.Is(err, apperrors.ErrBadRequest))
}

func TestSchedulesAreVolunteerOnly(t *testing.T) {
	_, client := newTestBackend(t, false)
	ctx := context.Background()
	volunteer := register(t, client, "sari@mail.com", true)
	member := register(t, client, "budi@mail.com", false)

	community, err := client.CreateCommunity(ctx, volunteer, backend.CreateCommunityRequest{Name: "Kelas"})
	require.NoError(t, err)
	budi, err := client.GetCurrentUser(ctx, member)
	require.NoError(t, err)
	require.NoError(t, client.AddMember(ctx, member, backend.AddMemberRequest{CommunityID: community.ID, MemberID: budi.ID}))

	at := time.Date(2026, 11, 2, 9, 30, 0, 0, time.UTC)
	_, err = client.CreateSchedule(ctx, member, backend.CreateScheduleRequest{CommunityID: community.ID, ScheduleTime: at})
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))

	schedule, err := client.CreateSchedule(ctx, volunteer, backend.CreateScheduleRequest{CommunityID: community.ID, ScheduleTime: at})
	require.NoError(t, err)
	require.NotNil(t, schedule)
	assert.True(t, at.Equal(schedule.ScheduleTime.Time))

	notifications, err := client.GetNotifications(ctx, member)
	require.NoError(t, err)
	var messages []string
	for _, n := range notifications {
		messages = append(messages, n.Message)
	}
	assert.Contains(t, strings.Join(messages, "\n"), "Jadwal baru di Kelas")

	assert.True(t, errors.Is(client.DeleteSchedule(ctx, member, schedule.ID), apperrors.ErrPermissionDenied))
	require.NoError(t, client.DeleteSchedule(ctx, volunteer, schedule.ID))

	schedules, err := client.GetSchedules(ctx, volunteer)
	require.NoError(t, err)
	assert.Empty(t, schedules)
}

func TestNotificationFlags(t *testing.T) {
	_, client := newTestBackend(t, false)
	ctx := context.Background()
	token := register(t, client, "rina@mail.com", false)

	notifications, err := client.GetNotifications(ctx, token)
	require.NoError(t, err)
	require.Len(t, notifications, 1, "welcome notification")
	n := notifications[0]

	require.NoError(t, client.UpdateNotification(ctx, token, n))
	notifications, err = client.GetNotifications(ctx, token)
	require.NoError(t, err)
	assert.True(t, notifications[0].IsShown)
	assert.False(t, notifications[0].IsChecked)

	require.NoError(t, client.CheckNotification(ctx, token, notifications[0]))
	notifications, err = client.GetNotifications(ctx, token)
	require.NoError(t, err)
	assert.True(t, notifications[0].IsShown)
	assert.True(t, notifications[0].IsChecked)

	other := register(t, client, "budi@mail.com", false)
	err = client.CheckNotification(ctx, other, n)
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))
}

func TestProfileUpdateAndPassword(t *testing.T) {
	_, client := newTestBackend(t, false)
	ctx := context.Background()
	token := register(t, client, "rina@mail.com", false)

	updated, err := client.UpdateUser(ctx, token, backend.UpdateUserRequest{
		FirstName: "Rina",
		LastName:  "Ayu Lestari",
		Dob:       "2001-05-18",
		Email:     "rina.ayu@mail.com",
		Image:     &backend.File{Name: "me.png", Content: testPNG},
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Rina Ayu Lestari", updated.FullName)
	assert.Equal(t, "2001-05-18", updated.DateOfBirth)
	assert.True(t, strings.HasPrefix(updated.ImagePath, "uploads/users/"))

	require.NoError(t, client.ChangePassword(ctx, token, backend.ChangePasswordRequest{Password: "barubaru1", ConfirmPassword: "barubaru1"}))

	_, err = client.Login(ctx, backend.LoginRequest{Email: "rina.ayu@mail.com", Password: "rahasia123"})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))
	_, err = client.Login(ctx, backend.LoginRequest{Email: "rina.ayu@mail.com", Password: "barubaru1"})
	assert.NoError(t, err)
}

func TestSummarizeUpload(t *testing.T) {
	_, client := newTestBackend(t, false)
	ctx := context.Background()
	token := register(t, client, "rina@mail.com", false)

	summary, err := client.SummarizeUpload(ctx, token, backend.SummarizeRequest{
		File:       backend.File{Name: "modul-1.pdf", Content: []byte(testPDF)},
		SourceLang: "en",
		TargetLang: "jw",
	})
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, "modul-1", summary.SummaryTitle)
	assert.Contains(t, summary.SummaryResult, "Belajar membaca bersama")
	assert.Contains(t, summary.SummaryResult, "Jawa")

	user, err := client.GetCurrentUser(ctx, token)
	require.NoError(t, err)
	summaries, err := client.GetUserSummaries(ctx, token, user.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, summary.ID, summaries[0].ID)

	_, err = client.SummarizeUpload(ctx, token, backend.SummarizeRequest{
		File:       backend.File{Name: "foto.png", Content: testPNG},
		SourceLang: "en",
		TargetLang: "jw",
	})
	assert.True(t, errors.Is(err, apperrors.ErrBadRequest))
}

func TestSeedCreatesDemoAccounts(t *testing.T) {
	srv, client := newTestBackend(t, true)

	token, err := client.Login(context.Background(), backend.LoginRequest{Email: DemoVolunteerEmail, Password: DemoPassword})
	require.NoError(t, err)
	user, err := client.GetCurrentUser(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, user.IsVolunteer)

	assert.Len(t, srv.Store().Locations(), len(seedLocations))
	assert.Len(t, srv.Store().Schedules(), 1)
}

func TestSummarizerExtractsText(t *testing.T) {
	title, result, err := Summarizer{}.Summarize("/tmp/Bab 2.pdf", []byte(testPDF), "en", "id")
	require.NoError(t, err)
	assert.Equal(t, "Bab 2", title)
	assert.Contains(t, result, "Belajar membaca bersama")

	_, _, err = Summarizer{}.Summarize("x.pdf", []byte(testPDF), "en", "fr")
	assert.True(t, errors.Is(err, apperrors.ErrBadRequest))
}
