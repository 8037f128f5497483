package devbackend

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/edureach/internal/app/models"
	"github.com/yigit/edureach/internal/pkg/apperrors"
)

type account struct {
	user         models.User
	passwordHash string
}

type community struct {
	models.Community
	memberIDs []string
}

// Store is the in-memory state of the development backend. It is safe for concurrent use.
type Store struct {
	mu            sync.RWMutex
	now           func() time.Time
	accounts      map[string]*account
	emails        map[string]string
	locations     []models.Location
	communities   map[string]*community
	schedules     map[string]models.Schedule
	notifications map[string]*models.Notification
	summaries     []models.Summary
}

// NewStore creates an empty store.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		now:           now,
		accounts:      make(map[string]*account),
		emails:        make(map[string]string),
		communities:   make(map[string]*community),
		schedules:     make(map[string]models.Schedule),
		notifications: make(map[string]*models.Notification),
	}
}

func fullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateAccount stores a new user. The email must be unused.
func (s *Store) CreateAccount(user models.User, passwordHash string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := normalizeEmail(user.Email)
	if _, taken := s.emails[email]; taken {
		return models.User{}, apperrors.NewCustomError(apperrors.ErrConflict, "Email sudah terdaftar.")
	}

	user.ID = uuid.NewString()
	user.Email = email
	user.FullName = fullName(user.FirstName, user.LastName)
	s.accounts[user.ID] = &account{user: user, passwordHash: passwordHash}
	s.emails[email] = user.ID
	return user, nil
}

// AccountByEmail returns the user and password hash registered under email.
func (s *Store) AccountByEmail(email string) (models.User, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[normalizeEmail(email)]
	if !ok {
		return models.User{}, "", false
	}
	acc := s.accounts[id]
	return acc.user, acc.passwordHash, true
}

// User returns the user with id.
func (s *Store) User(id string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[id]
	if !ok {
		return models.User{}, false
	}
	return acc.user, true
}

// ProfileUpdate carries the editable profile fields. Empty strings keep the current value.
type ProfileUpdate struct {
	FirstName   string
	LastName    string
	DateOfBirth string
	Email       string
	ImagePath   string
}

// UpdateProfile applies u to the user with id.
func (s *Store) UpdateProfile(id string, u ProfileUpdate) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok {
		return models.User{}, apperrors.NewResourceNotFoundError("Pengguna tidak ditemukan.")
	}

	if u.Email != "" {
		email := normalizeEmail(u.Email)
		if owner, taken := s.emails[email]; taken && owner != id {
			return models.User{}, apperrors.NewCustomError(apperrors.ErrConflict, "Email sudah terdaftar.")
		}
		delete(s.emails, acc.user.Email)
		s.emails[email] = id
		acc.user.Email = email
	}
	if u.FirstName != "" {
		acc.user.FirstName = u.FirstName
		acc.user.LastName = u.LastName
	}
	if u.DateOfBirth != "" {
		acc.user.DateOfBirth = u.DateOfBirth
	}
	if u.ImagePath != "" {
		acc.user.ImagePath = u.ImagePath
	}
	acc.user.FullName = fullName(acc.user.FirstName, acc.user.LastName)
	return acc.user, nil
}

// SetPasswordHash replaces the password of the user with id.
func (s *Store) SetPasswordHash(id, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok {
		return apperrors.NewResourceNotFoundError("Pengguna tidak ditemukan.")
	}
	acc.passwordHash = hash
	return nil
}

// AddLocation registers a location and returns it with its id.
func (s *Store) AddLocation(city, province string) models.Location {
	s.mu.Lock()
	defer s.mu.Unlock()

	loc := models.Location{ID: uuid.NewString(), City: city, Province: province}
	s.locations = append(s.locations, loc)
	return loc
}

// Locations lists every location.
func (s *Store) Locations() []models.Location {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Location, len(s.locations))
	copy(out, s.locations)
	return out
}

func (s *Store) locationLocked(id string) *models.Location {
	for i := range s.locations {
		if s.locations[i].ID == id {
			loc := s.locations[i]
			return &loc
		}
	}
	return nil
}

// CreateCommunity adds a community; the creator becomes its first member.
func (s *Store) CreateCommunity(creatorID, name, description, locationID, imagePath string) (models.Community, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if locationID != "" && s.locationLocked(locationID) == nil {
		return models.Community{}, apperrors.NewBadRequestError("Lokasi tidak ditemukan.")
	}

	c := &community{Community: models.Community{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		LocationID:  locationID,
		ImagePath:   imagePath,
	}}
	if _, ok := s.accounts[creatorID]; ok {
		c.memberIDs = append(c.memberIDs, creatorID)
	}
	s.communities[c.ID] = c
	return s.expandLocked(c), nil
}

// expandLocked resolves member records and the location. Volunteers and IsJoined are left
// for clients to derive.
func (s *Store) expandLocked(c *community) models.Community {
	out := c.Community
	out.Location = s.locationLocked(c.LocationID)
	out.Members = make([]models.Member, 0, len(c.memberIDs))
	for _, id := range c.memberIDs {
		acc, ok := s.accounts[id]
		if !ok {
			continue
		}
		out.Members = append(out.Members, models.Member{UserID: id, User: acc.user})
	}
	return out
}

// Communities lists every community ordered by name.
func (s *Store) Communities() []models.Community {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Community, 0, len(s.communities))
	for _, c := range s.communities {
		out = append(out, s.expandLocked(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Community returns one community.
func (s *Store) Community(id string) (models.Community, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.communities[id]
	if !ok {
		return models.Community{}, apperrors.NewResourceNotFoundError("Komunitas tidak ditemukan.")
	}
	return s.expandLocked(c), nil
}

// UserCommunities lists the communities userID belongs to.
func (s *Store) UserCommunities(userID string) []models.Community {
	out := []models.Community{}
	for _, c := range s.Communities() {
		for _, m := range c.Members {
			if m.UserID == userID {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// AddMember adds userID to a community. Adding an existing member is a no-op.
func (s *Store) AddMember(communityID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.communities[communityID]
	if !ok {
		return apperrors.NewResourceNotFoundError("Komunitas tidak ditemukan.")
	}
	if _, ok := s.accounts[userID]; !ok {
		return apperrors.NewResourceNotFoundError("Pengguna tidak ditemukan.")
	}
	for _, id := range c.memberIDs {
		if id == userID {
			return nil
		}
	}
	c.memberIDs = append(c.memberIDs, userID)
	s.notifyLocked(userID, "Anda bergabung dengan komunitas "+c.Name+".")
	return nil
}

func (s *Store) isVolunteerLocked(userID string) bool {
	acc, ok := s.accounts[userID]
	return ok && acc.user.IsVolunteer
}

// Schedules lists every schedule ordered by time.
func (s *Store) Schedules() []models.Schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Schedule, 0, len(s.schedules))
	for _, sc := range s.schedules {
		out = append(out, sc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduleTime.Before(out[j].ScheduleTime.Time) })
	return out
}

// CreateSchedule adds a schedule. Only volunteers may create schedules; every member of the
// community is notified.
func (s *Store) CreateSchedule(volunteerID, communityID string, at time.Time) (models.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isVolunteerLocked(volunteerID) {
		return models.Schedule{}, apperrors.NewForbiddenError("Hanya relawan yang dapat mengelola jadwal.")
	}
	c, ok := s.communities[communityID]
	if !ok {
		return models.Schedule{}, apperrors.NewResourceNotFoundError("Komunitas tidak ditemukan.")
	}

	sc := models.Schedule{
		ID:           uuid.NewString(),
		ScheduleTime: models.NewTimestamp(at),
		VolunteerID:  volunteerID,
		CommunityID:  communityID,
	}
	s.schedules[sc.ID] = sc

	msg := "Jadwal baru di " + c.Name + " pada " + at.Format("02/01/2006 15:04") + "."
	for _, id := range c.memberIDs {
		s.notifyLocked(id, msg)
	}
	return sc, nil
}

// DeleteSchedule removes a schedule. Only volunteers may delete schedules.
func (s *Store) DeleteSchedule(userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isVolunteerLocked(userID) {
		return apperrors.NewForbiddenError("Hanya relawan yang dapat mengelola jadwal.")
	}
	if _, ok := s.schedules[id]; !ok {
		return apperrors.NewResourceNotFoundError("Jadwal tidak ditemukan.")
	}
	delete(s.schedules, id)
	return nil
}

// Notify adds a notification for userID.
func (s *Store) Notify(userID, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifyLocked(userID, message)
}

func (s *Store) notifyLocked(userID, message string) {
	n := &models.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Message:   message,
		CreatedAt: models.NewTimestamp(s.now()),
	}
	s.notifications[n.ID] = n
}

// Notifications lists the notifications of userID, oldest first.
func (s *Store) Notifications(userID string) []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Notification{}
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt.Time) })
	return out
}

// UpdateNotification overwrites the message and both flags of a notification owned by userID.
func (s *Store) UpdateNotification(userID, id, message string, isShown, isChecked bool) (models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notifications[id]
	if !ok || n.UserID != userID {
		return models.Notification{}, apperrors.NewResourceNotFoundError("Notifikasi tidak ditemukan.")
	}
	if message != "" {
		n.Message = message
	}
	n.IsShown = isShown
	n.IsChecked = isChecked
	return *n, nil
}

// AddSummary stores a generated summary.
func (s *Store) AddSummary(sum models.Summary) models.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum.ID = uuid.NewString()
	created := models.NewTimestamp(s.now())
	sum.CreatedAt = &created
	s.summaries = append(s.summaries, sum)
	return sum
}

// UserSummaries lists the summaries of userID, newest first.
func (s *Store) UserSummaries(userID string) []models.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Summary{}
	for i := len(s.summaries) - 1; i >= 0; i-- {
		if s.summaries[i].UserID == userID {
			out = append(out, s.summaries[i])
		}
	}
	return out
}
