package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/yigit/edureach/internal/app/models"
)

// SummarizeRequest is sent as multipart to summarize/upload.
type SummarizeRequest struct {
	File       File
	SourceLang string
	TargetLang string
}

// SummarizeUpload uploads a PDF and returns the generated summary.
func (c *Client) SummarizeUpload(ctx context.Context, token string, in SummarizeRequest) (*models.Summary, error) {
	if token == "" {
		return nil, nil
	}

	file := in.File
	body, contentType, err := encodeMultipart([]formField{
		{"sourceLang", in.SourceLang},
		{"targetLang", in.TargetLang},
	}, "file", &file)
	if err != nil {
		return nil, err
	}

	var summary models.Summary
	req := request{method: http.MethodPost, path: "summarize/upload", token: token, body: body, contentType: contentType}
	if err := c.doJSON(ctx, req, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// GetUserSummaries lists the summaries userID has generated, newest first.
func (c *Client) GetUserSummaries(ctx context.Context, token, userID string) ([]models.Summary, error) {
	if token == "" || userID == "" {
		return nil, nil
	}
	var summaries []models.Summary
	if err := c.getJSON(ctx, "summarize/user/"+url.PathEscape(userID), token, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}
