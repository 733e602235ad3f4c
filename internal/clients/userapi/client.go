package userapi

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// PlaceholderNickname is shown when the user service cannot be reached or
// does not know the user. Listing requests never fail on a missing name.
const PlaceholderNickname = "Unknown"

// Client looks up display names in the user service. Read-only and
// best-effort: every failure mode degrades to the placeholder.
type Client struct {
	http *resty.Client
}

func New(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(2 * time.Second),
	}
}

func (c *Client) Nickname(userID string) string {
	var body struct {
		Nickname string `json:"nickname"`
	}

	resp, err := c.http.R().
		SetResult(&body).
		SetPathParam("id", userID).
		Get("/{id}")
	if err != nil || !resp.IsSuccess() || body.Nickname == "" {
		return PlaceholderNickname
	}
	return body.Nickname
}

// Nicknames resolves a batch of user ids, calling the user service at most
// once per distinct id.
func (c *Client) Nicknames(userIDs []string) map[string]string {
	out := make(map[string]string, len(userIDs))
	for _, id := range userIDs {
		if _, seen := out[id]; seen {
			continue
		}
		out[id] = c.Nickname(id)
	}
	return out
}
