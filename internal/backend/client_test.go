package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/edureach/internal/app/models"
	"github.com/yigit/edureach/internal/pkg/apperrors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return New(Options{BaseURL: srv.URL + "/api"}), &calls
}

func TestLoginThenCurrentUserCarriesBearer(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/user/login":
			var in LoginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			assert.Equal(t, LoginRequest{Email: "a@b.com", Password: "12345678"}, in)
			assert.Empty(t, r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`"tok123"`))
		case "/api/user":
			assert.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))
			_ = json.NewEncoder(w).Encode(models.User{ID: "u1", FullName: "Ayu Lestari"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	ctx := context.Background()

	token, err := client.Login(ctx, LoginRequest{Email: "a@b.com", Password: "12345678"})
	require.NoError(t, err)
	assert.Equal(t, "tok123", token)

	user, err := client.GetCurrentUser(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "u1", user.ID)
}

func TestParseToken(t *testing.T) {
	assert.Equal(t, "tok", parseToken([]byte(`"tok"`)))
	assert.Equal(t, "tok", parseToken([]byte(`{"token":"tok"}`)))
	assert.Equal(t, "tok", parseToken([]byte(`{"accessToken":"tok"}`)))
	assert.Equal(t, "tok", parseToken([]byte("tok\n")))
	assert.Equal(t, "", parseToken([]byte(`{"other":1}`)))
	assert.Equal(t, "", parseToken(nil))
}

func TestLoginRejectedIsInvalidCredentials(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.Login(context.Background(), LoginRequest{Email: "a@b.com", Password: "wrong-pass"})

	assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))
}

func TestUpdateNotificationForcesShownBody(t *testing.T) {
	var got map[string]interface{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/user/update-notification/n1", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	})

	err := client.UpdateNotification(context.Background(), "tok", models.Notification{ID: "n1", Message: "hi", IsShown: false, IsChecked: true})

	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"message": "hi", "isShown": true, "isChecked": false}, got)
}

func TestCheckNotificationKeepsShownFlag(t *testing.T) {
	var got NotificationUpdate
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	})

	require.NoError(t, client.CheckNotification(context.Background(), "tok", models.Notification{ID: "n2", Message: "yo", IsShown: false}))

	assert.Equal(t, NotificationUpdate{Message: "yo", IsShown: false, IsChecked: true}, got)
}

func TestZonelessTimestampsDecodeAsUTC(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/user/notification/user":
			_, _ = io.WriteString(w, `[{"id":"n1","message":"hi","createdAt":"2025-07-12T10:00:00.1234567"},`+
				`{"id":"n2","message":"yo","createdAt":"2025-07-12T12:00:00+07:00"}]`)
		case "/api/schedule":
			_, _ = io.WriteString(w, `[{"id":"s1","communityId":"c1","scheduleTime":"2025-07-20T09:30:00"}]`)
		case "/api/summarize/user/u1":
			_, _ = io.WriteString(w, `[{"id":"m1","summaryTitle":"doc","createdAt":"2025-07-01T08:00:00"}]`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	notifications, err := client.GetNotifications(ctx, "tok")
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	assert.True(t, time.Date(2025, 7, 12, 10, 0, 0, 123456700, time.UTC).Equal(notifications[0].CreatedAt.Time))
	assert.True(t, time.Date(2025, 7, 12, 5, 0, 0, 0, time.UTC).Equal(notifications[1].CreatedAt.Time))

	schedules, err := client.GetSchedules(ctx, "tok")
	require.NoError(t, err)
	require.Len(t, schedules, 1)
	assert.True(t, time.Date(2025, 7, 20, 9, 30, 0, 0, time.UTC).Equal(schedules[0].ScheduleTime.Time))

	summaries, err := client.GetUserSummaries(ctx, "tok", "u1")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.NotNil(t, summaries[0].CreatedAt)
	assert.True(t, time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC).Equal(summaries[0].CreatedAt.Time))
}

func TestEmptyTokenMakesNoRequest(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
	})
	ctx := context.Background()

	user, err := client.GetCurrentUser(ctx, "")
	assert.NoError(t, err)
	assert.Nil(t, user)

	locations, err := client.GetLocations(ctx, "")
	assert.NoError(t, err)
	assert.Nil(t, locations)

	communities, err := client.GetCommunities(ctx, "")
	assert.NoError(t, err)
	assert.Nil(t, communities)

	community, err := client.GetCommunity(ctx, "", "c1")
	assert.NoError(t, err)
	assert.Nil(t, community)

	joined, err := client.GetUserCommunities(ctx, "tok", "")
	assert.NoError(t, err)
	assert.Nil(t, joined)

	schedules, err := client.GetSchedules(ctx, "")
	assert.NoError(t, err)
	assert.Nil(t, schedules)

	notifications, err := client.GetNotifications(ctx, "")
	assert.NoError(t, err)
	assert.Nil(t, notifications)

	summaries, err := client.GetUserSummaries(ctx, "", "u1")
	assert.NoError(t, err)
	assert.Nil(t, summaries)

	assert.NoError(t, client.UpdateNotification(ctx, "", models.Notification{ID: "n1"}))
	assert.NoError(t, client.AddMember(ctx, "", AddMemberRequest{CommunityID: "c1", MemberID: "u1"}))
	assert.NoError(t, client.DeleteSchedule(ctx, "", "s1"))
	assert.NoError(t, client.ChangePassword(ctx, "", ChangePasswordRequest{}))

	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
}

func TestHTTPErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, apperrors.ErrUnauthorized},
		{http.StatusForbidden, apperrors.ErrPermissionDenied},
		{http.StatusNotFound, apperrors.ErrResourceNotFound},
		{http.StatusConflict, apperrors.ErrConflict},
		{http.StatusBadRequest, apperrors.ErrBadRequest},
		{http.StatusInternalServerError, apperrors.ErrBackendResponse},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"message":"nope"}`))
			})

			_, err := client.GetCommunities(context.Background(), "tok")

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want))
			var httpErr *HTTPError
			require.True(t, errors.As(err, &httpErr))
			assert.Equal(t, tt.status, httpErr.StatusCode)
			assert.Equal(t, "nope", httpErr.Message())
			assert.True(t, IsHTTPStatus(err, tt.status))
		})
	}
}

func TestUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := New(Options{BaseURL: srv.URL, Timeout: time.Second})

	_, err := client.GetLocations(context.Background(), "tok")

	assert.True(t, errors.Is(err, apperrors.ErrBackendUnavailable))
}

func TestUpdateUserSendsMultipart(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Budi", r.FormValue("FirstName"))
		assert.Equal(t, "Santoso Putra", r.FormValue("LastName"))
		assert.Equal(t, "2000-01-02", r.FormValue("Dob"))
		assert.Equal(t, "budi@mail.com", r.FormValue("Email"))

		f, header, err := r.FormFile("Image")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "avatar.png", header.Filename)
		assert.Equal(t, []byte("png-bytes"), data)

		_ = json.NewEncoder(w).Encode(models.User{ID: "u1", FullName: "Budi Santoso Putra"})
	})

	user, err := client.UpdateUser(context.Background(), "tok", UpdateUserRequest{
		FirstName: "Budi",
		LastName:  "Santoso Putra",
		Dob:       "2000-01-02",
		Email:     "budi@mail.com",
		Image:     &File{Name: "avatar.png", ContentType: "image/png", Content: []byte("png-bytes")},
	})

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Budi Santoso Putra", user.FullName)
}

func TestMultipartKeepsUnusualFilenames(t *testing.T) {
	names := []string{
		`laporan "akhir".pdf`,
		"catatan\tkelas.pdf",
		`arsip\2025.pdf`,
		"Matematika ñ.pdf",
	}
	for _, name := range names {
		body, contentType, err := encodeMultipart([]formField{{name: "sourceLang", value: "en"}}, "file",
			&File{Name: name, Content: []byte("%PDF-1.4")})
		require.NoError(t, err)

		_, params, err := mime.ParseMediaType(contentType)
		require.NoError(t, err)
		reader := multipart.NewReader(body, params["boundary"])

		field, err := reader.NextPart()
		require.NoError(t, err)
		assert.Equal(t, "sourceLang", field.FormName())

		part, err := reader.NextPart()
		require.NoError(t, err)
		assert.Equal(t, "file", part.FormName())
		assert.Equal(t, name, part.FileName())
	}
}

func TestCreateCommunitySendsDescription(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Baca Bersama", r.FormValue("Name"))
		assert.Equal(t, "Kelompok membaca anak", r.FormValue("Description"))
		assert.Equal(t, "loc-1", r.FormValue("LocationId"))
		_ = json.NewEncoder(w).Encode(models.Community{ID: "c9", Name: "Baca Bersama"})
	})

	community, err := client.CreateCommunity(context.Background(), "tok", CreateCommunityRequest{
		Name:        "Baca Bersama",
		Description: "Kelompok membaca anak",
		LocationID:  "loc-1",
	})

	require.NoError(t, err)
	require.NotNil(t, community)
	assert.Equal(t, "c9", community.ID)
}

func TestSummarizeUploadFields(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/summarize/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "en", r.FormValue("sourceLang"))
		assert.Equal(t, "jw", r.FormValue("targetLang"))
		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "doc.pdf", header.Filename)
		_ = json.NewEncoder(w).Encode(models.Summary{ID: "s1", SummaryTitle: "doc.pdf", Language: "jw"})
	})

	summary, err := client.SummarizeUpload(context.Background(), "tok", SummarizeRequest{
		File:       File{Name: "doc.pdf", ContentType: "application/pdf", Content: []byte("%PDF-1.4")},
		SourceLang: "en",
		TargetLang: "jw",
	})

	require.NoError(t, err)
	assert.Equal(t, "s1", summary.ID)
}

func TestBaseURLGetsTrailingSlash(t *testing.T) {
	assert.Equal(t, "http://x/api/", New(Options{BaseURL: "http://x/api"}).BaseURL())
	assert.Equal(t, "http://x/api/", New(Options{BaseURL: "http://x/api/"}).BaseURL())
}
