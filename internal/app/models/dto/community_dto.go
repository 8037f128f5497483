package dto

import (
	"time"

	"github.com/yigit/edureach/internal/app/models"
)

// CommunityForm is submitted to POST /create-community as multipart.
type CommunityForm struct {
	Name        string `json:"name" form:"name" validate:"notblank" label:"Nama komunitas"`
	Description string `json:"description" form:"description" validate:"notblank" label:"Deskripsi komunitas"`
	LocationID  string `json:"locationId" form:"locationId" validate:"required" label:"Lokasi"`
}

// ScheduleForm is submitted to POST /community/:id/schedules.
type ScheduleForm struct {
	Date string `json:"date" form:"date" validate:"required,date" label:"Tanggal"`
	Time string `json:"time" form:"time" validate:"required,clock" label:"Waktu"`
}

// Community list sort keys.
const (
	SortByMembers    = "members"
	SortByVolunteers = "volunteers"
	SortByName       = "name"
	SortByLocation   = "location"
)

// CommunityQuery narrows and orders GET /community. An empty Sort means SortByMembers.
type CommunityQuery struct {
	Q          string `json:"q" form:"q" validate:"max=100" label:"Pencarian"`
	LocationID string `json:"locationId" form:"locationId" label:"Lokasi"`
	Sort       string `json:"sort" form:"sort" validate:"omitempty,oneof=members volunteers name location" label:"Urutan"`
}

// CommunityCard is a community as shown in lists.
type CommunityCard struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Initials       string           `json:"initials"`
	ImageURL       string           `json:"imageUrl"`
	Location       *models.Location `json:"location,omitempty"`
	MemberCount    int              `json:"memberCount"`
	VolunteerCount int              `json:"volunteerCount"`
	IsJoined       bool             `json:"isJoined"`
}

// CommunityListView is the community discovery page.
type CommunityListView struct {
	Communities []CommunityCard   `json:"communities"`
	Locations   []models.Location `json:"locations"`
	Query       CommunityQuery    `json:"query"`
}

// CreateCommunityView is the community creation page.
type CreateCommunityView struct {
	Locations []models.Location `json:"locations"`
}

// ScheduleView is one schedule entry.
type ScheduleView struct {
	ID           string    `json:"id"`
	ScheduleTime time.Time `json:"scheduleTime"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	VolunteerID  string    `json:"volunteerId"`
}

// CommunityDetailView is a single community page.
type CommunityDetailView struct {
	Community          models.Community `json:"community"`
	ImageURL           string           `json:"imageUrl"`
	CanManageSchedules bool             `json:"canManageSchedules"`
	Schedules          []ScheduleView   `json:"schedules"`
}

// ScheduleListView lists one community's schedules.
type ScheduleListView struct {
	CommunityID        string         `json:"communityId"`
	CanManageSchedules bool           `json:"canManageSchedules"`
	Schedules          []ScheduleView `json:"schedules"`
}
