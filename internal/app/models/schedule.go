package models

// Schedule is a single timestamped community event created by a volunteer.
type Schedule struct {
	ID           string    `json:"id"`
	ScheduleTime Timestamp `json:"scheduleTime"`
	VolunteerID  string    `json:"volunteerId"`
	CommunityID  string    `json:"communityId"`
}
