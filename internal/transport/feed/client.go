package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rocketscienceinc/tweettactoe-bot/internal/entity"
)

var ErrUnexpectedStatus = errors.New("unexpected response status")

type searchResponse struct {
	Statuses []entity.Mention `json:"statuses"`
}

// Client talks to the social feed API that delivers mentions and accepts replies.
type Client struct {
	baseURL string
	handle  string
	client  *http.Client
}

func New(baseURL, handle string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		handle:  handle,
		client:  &http.Client{Timeout: timeout},
	}
}

// Mentions - returns mentions of the handle newer than sinceID, newest first.
func (that *Client) Mentions(ctx context.Context, sinceID int64) ([]entity.Mention, error) {
	query := url.Values{}
	query.Set("q", "@"+that.handle)
	if sinceID > 0 {
		query.Set("since_id", strconv.FormatInt(sinceID, 10))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, that.baseURL+"/mentions?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build mentions request: %w", err)
	}

	resp, err := that.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch mentions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var body searchResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode mentions: %w", err)
	}

	return body.Statuses, nil
}

// PostReply - publishes reply as an answer to the mention it refers to.
func (that *Client) PostReply(ctx context.Context, reply entity.Reply) error {
	payload, err := json.Marshal(reply)
	if err != nil {
		return fmt.Errorf("failed to marshal reply: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, that.baseURL+"/statuses", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build reply request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := that.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post reply: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	return nil
}
