package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/yigit/edureach/internal/app/models"
)

// NotificationUpdate is the body of user/update-notification/{id}.
type NotificationUpdate struct {
	Message   string `json:"message"`
	IsShown   bool   `json:"isShown"`
	IsChecked bool   `json:"isChecked"`
}

// GetNotifications lists the token owner's notifications.
func (c *Client) GetNotifications(ctx context.Context, token string) ([]models.Notification, error) {
	if token == "" {
		return nil, nil
	}
	var notifications []models.Notification
	if err := c.getJSON(ctx, "user/notification/user", token, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// UpdateNotification marks n as shown. The body always carries isShown true and
// isChecked false, whatever n holds.
func (c *Client) UpdateNotification(ctx context.Context, token string, n models.Notification) error {
	return c.putNotification(ctx, token, n.ID, NotificationUpdate{
		Message:   n.Message,
		IsShown:   true,
		IsChecked: false,
	})
}

// CheckNotification acknowledges n. IsShown is sent as it is.
func (c *Client) CheckNotification(ctx context.Context, token string, n models.Notification) error {
	return c.putNotification(ctx, token, n.ID, NotificationUpdate{
		Message:   n.Message,
		IsShown:   n.IsShown,
		IsChecked: true,
	})
}

func (c *Client) putNotification(ctx context.Context, token, id string, body NotificationUpdate) error {
	if token == "" {
		return nil
	}
	return c.sendJSON(ctx, http.MethodPut, "user/update-notification/"+url.PathEscape(id), token, body, nil)
}
