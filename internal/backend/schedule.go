package backend

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/yigit/edureach/internal/app/models"
)

// CreateScheduleRequest is the body of POST schedule.
type CreateScheduleRequest struct {
	CommunityID  string    `json:"communityId"`
	ScheduleTime time.Time `json:"scheduleTime"`
}

// GetSchedules lists every schedule visible to the token's owner.
func (c *Client) GetSchedules(ctx context.Context, token string) ([]models.Schedule, error) {
	if token == "" {
		return nil, nil
	}
	var schedules []models.Schedule
	if err := c.getJSON(ctx, "schedule", token, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// CreateSchedule adds a schedule to a community.
func (c *Client) CreateSchedule(ctx context.Context, token string, in CreateScheduleRequest) (*models.Schedule, error) {
	if token == "" {
		return nil, nil
	}
	var schedule models.Schedule
	if err := c.sendJSON(ctx, http.MethodPost, "schedule", token, in, &schedule); err != nil {
		return nil, err
	}
	if schedule.ID == "" {
		return nil, nil
	}
	return &schedule, nil
}

// DeleteSchedule removes a schedule.
func (c *Client) DeleteSchedule(ctx context.Context, token, id string) error {
	if token == "" {
		return nil
	}
	return c.doJSON(ctx, request{method: http.MethodDelete, path: "schedule/" + url.PathEscape(id), token: token}, nil)
}
