package puzzlefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vytor/sense/internal/logger"
	"github.com/vytor/sense/internal/models"
)

const maxFeedBytes = 8 << 20

type Client struct {
	httpClient *http.Client
}

func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{httpClient: &http.Client{Timeout: timeout}}
}

// feedEnvelope is the wrapped feed shape; a bare JSON array is also accepted.
type feedEnvelope struct {
	Puzzles []models.Puzzle `json:"puzzles"`
}

// Fetch downloads the authored puzzle feed published at url.
func (c *Client) Fetch(ctx context.Context, url string) ([]models.Puzzle, error) {
	log := logger.FromContext(ctx).WithPrefix("puzzlefeed").WithField("url", url)

	log.Debug("fetching puzzle feed")
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to fetch puzzle feed: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	log.Debug("feed response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("feed request failed: status=%d, body=%s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("feed status %d: %s", resp.StatusCode, string(body))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		log.Error("failed to read feed body: %v", err)
		return nil, err
	}

	puzzles, err := Decode(raw)
	if err != nil {
		log.Error("failed to decode feed: %v", err)
		return nil, err
	}

	log.Info("fetched %d puzzles from feed", len(puzzles))
	return puzzles, nil
}

// Decode parses either a JSON array of puzzles or {"puzzles": [...]}.
func Decode(raw []byte) ([]models.Puzzle, error) {
	var list []models.Puzzle
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var env feedEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode puzzle feed: %w", err)
	}
	if env.Puzzles == nil {
		return nil, fmt.Errorf("decode puzzle feed: missing puzzles")
	}
	return env.Puzzles, nil
}
