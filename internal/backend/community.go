package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/yigit/edureach/internal/app/models"
)

// CreateCommunityRequest is sent as multipart to POST community.
type CreateCommunityRequest struct {
	Name        string
	Description string
	LocationID  string
	Image       *File
}

// AddMemberRequest is the body of community/add-member.
type AddMemberRequest struct {
	CommunityID string `json:"communityId"`
	MemberID    string `json:"memberId"`
}

// GetLocations lists every location.
func (c *Client) GetLocations(ctx context.Context, token string) ([]models.Location, error) {
	if token == "" {
		return nil, nil
	}
	var locations []models.Location
	if err := c.getJSON(ctx, "location", token, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// GetCommunities lists every community. Derived fields are not computed here.
func (c *Client) GetCommunities(ctx context.Context, token string) ([]models.Community, error) {
	if token == "" {
		return nil, nil
	}
	var communities []models.Community
	if err := c.getJSON(ctx, "community", token, &communities); err != nil {
		return nil, err
	}
	return communities, nil
}

// GetCommunity fetches one community by id.
func (c *Client) GetCommunity(ctx context.Context, token, id string) (*models.Community, error) {
	if token == "" {
		return nil, nil
	}
	var community models.Community
	if err := c.getJSON(ctx, "community/"+url.PathEscape(id), token, &community); err != nil {
		return nil, err
	}
	return &community, nil
}

// GetUserCommunities lists the communities userID belongs to. An empty userID yields nil.
func (c *Client) GetUserCommunities(ctx context.Context, token, userID string) ([]models.Community, error) {
	if token == "" || userID == "" {
		return nil, nil
	}
	var communities []models.Community
	if err := c.getJSON(ctx, "community/user/"+url.PathEscape(userID), token, &communities); err != nil {
		return nil, err
	}
	return communities, nil
}

// CreateCommunity sends the community form as multipart.
func (c *Client) CreateCommunity(ctx context.Context, token string, in CreateCommunityRequest) (*models.Community, error) {
	if token == "" {
		return nil, nil
	}

	body, contentType, err := encodeMultipart([]formField{
		{"Name", in.Name},
		{"Description", in.Description},
		{"LocationId", in.LocationID},
	}, "Image", in.Image)
	if err != nil {
		return nil, err
	}

	var community models.Community
	req := request{method: http.MethodPost, path: "community", token: token, body: body, contentType: contentType}
	if err := c.doJSON(ctx, req, &community); err != nil {
		return nil, err
	}
	if community.ID == "" {
		return nil, nil
	}
	return &community, nil
}

// AddMember adds a user to a community.
func (c *Client) AddMember(ctx context.Context, token string, in AddMemberRequest) error {
	if token == "" {
		return nil
	}
	return c.sendJSON(ctx, http.MethodPost, "community/add-member", token, in, nil)
}
