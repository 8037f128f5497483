package dto

import "github.com/yigit/edureach/internal/app/models"

// SummaryCard is a recent summary on the home page.
type SummaryCard struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Preview   string `json:"preview"`
	Language  string `json:"language,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// HomeView is the home page.
type HomeView struct {
	User              models.User     `json:"user"`
	AvatarInitials    string          `json:"avatarInitials"`
	ProfilePictureURL string          `json:"profilePictureUrl"`
	JoinedCommunities []CommunityCard `json:"joinedCommunities"`
	RecentSummaries   []SummaryCard   `json:"recentSummaries"`
	DocumentCount     int             `json:"documentCount"`
}
