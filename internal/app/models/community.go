package models

// Location is a city/province pair communities are attached to.
type Location struct {
	ID       string `json:"id"`
	City     string `json:"city"`
	Province string `json:"province"`
}

// Member joins a user to a community.
type Member struct {
	UserID string `json:"userId"`
	User   User   `json:"user"`
}

// Community as returned by the backend. Volunteers and IsJoined are derived fields:
// whatever the backend sends for them is overwritten by Derive.
type Community struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	LocationID  string    `json:"locationId"`
	ImagePath   string    `json:"imagePath"`
	Location    *Location `json:"location,omitempty"`
	Members     []Member  `json:"members"`
	Volunteers  []Member  `json:"volunteers"`
	IsJoined    bool      `json:"isJoined"`
}
