package dto

import "github.com/yigit/edureach/internal/app/models"

// NotificationView is a notification with a relative time label.
type NotificationView struct {
	models.Notification
	TimeAgo string `json:"timeAgo"`
}

// NotificationListView is the notification page.
type NotificationListView struct {
	Unchecked      []NotificationView `json:"unchecked"`
	Checked        []NotificationView `json:"checked"`
	UncheckedCount int                `json:"uncheckedCount"`
}
