package models

// Notification carries two independent flags:
// IsShown flips once the message was displayed as a toast,
// IsChecked flips only on explicit acknowledgment by the user.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Message   string    `json:"message"`
	IsShown   bool      `json:"isShown"`
	IsChecked bool      `json:"isChecked"`
	CreatedAt Timestamp `json:"createdAt"`
}
