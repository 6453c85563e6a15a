// Package release fetches the latest entry of a release feed for the
// update-available indicator.
package release

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gridpage/gridpage/internal/domain"
	"github.com/gridpage/gridpage/internal/utils"
	"github.com/gridpage/gridpage/internal/version"
)

const apiTimeout = 10 * time.Second

// Checker polls a GitHub-style release feed: a JSON list ordered most
// recent first, each entry carrying tag_name and html_url.
type Checker struct {
	feedURL string
	client  *http.Client
}

// NewChecker creates a checker for the given feed URL.
func NewChecker(feedURL string) *Checker {
	return &Checker{
		feedURL: feedURL,
		client:  &http.Client{Timeout: apiTimeout},
	}
}

// Latest fetches the most recent release feed entry.
func (c *Checker) Latest(ctx context.Context) (*domain.ReleaseInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create release feed request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "gridpage/"+version.Version)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch release feed: %w", err)
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("release feed returned status %d", resp.StatusCode)
	}

	var releases []domain.ReleaseInfo
	if err := json.NewDecoder(resp.Body).Decode(&releases); err != nil {
		return nil, fmt.Errorf("failed to decode release feed: %w", err)
	}

	for i := range releases {
		if releases[i].TagName != "" {
			return &releases[i], nil
		}
	}

	return nil, fmt.Errorf("release feed contained no tagged releases")
}
