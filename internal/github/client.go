// Package github provides the minimal GitHub REST API surface needed to
// confirm registry entries point at live repositories, and to resolve their
// latest release tags.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

const clientName = "github"

// defaultRequestTimeout bounds a single GitHub API call.
const defaultRequestTimeout = 10 * time.Second

// ErrNoReleases indicates the repository has no published releases.
var ErrNoReleases = errors.New("no releases found")

// Release is a published release of a repository.
type Release struct {
	TagName string `json:"tag_name" yaml:"tag_name"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Client calls the GitHub REST API.
type Client struct {
	baseURL string
	client  *http.Client
	logger  hclog.Logger
}

// NewClient creates a GitHub API client against the given base URL
// (normally https://api.github.com).
func NewClient(logger hclog.Logger, baseURL string) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("empty GitHub API base URL is invalid")
	}

	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultRequestTimeout},
		logger:  logger.Named(clientName),
	}, nil
}

// RepositoryExists reports whether owner/repo is a reachable public repository.
func (c *Client) RepositoryExists(ctx context.Context, owner, repo string) (bool, error) {
	status, _, err := c.get(ctx, fmt.Sprintf("/repos/%s/%s", owner, repo))
	if err != nil {
		return false, err
	}

	switch status {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("unexpected HTTP status %d checking repository %s/%s", status, owner, repo)
	}
}

// LatestRelease resolves the most recent published release of owner/repo.
// GitHub answers 404 for both a missing repository and a repository without
// releases, so both map to ErrNoReleases; callers that need the distinction
// should check existence first.
func (c *Client) LatestRelease(ctx context.Context, owner, repo string) (Release, error) {
	status, body, err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/releases/latest", owner, repo))
	if err != nil {
		return Release{}, err
	}

	switch status {
	case http.StatusOK:
		var release Release
		if err := json.Unmarshal(body, &release); err != nil {
			return Release{}, fmt.Errorf("failed to parse release for %s/%s: %w", owner, repo, err)
		}
		if release.TagName == "" {
			return Release{}, fmt.Errorf("%w: release without tag for %s/%s", ErrNoReleases, owner, repo)
		}
		return release, nil
	case http.StatusNotFound:
		return Release{}, fmt.Errorf("%w: %s/%s", ErrNoReleases, owner, repo)
	default:
		return Release{}, fmt.Errorf("unexpected HTTP status %d fetching latest release of %s/%s", status, owner, repo)
	}
}

func (c *Client) get(ctx context.Context, path string) (int, []byte, error) {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build request for '%s': %w", url, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	c.logger.Debug("Calling GitHub API", "url", url)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to call GitHub API '%s': %w", url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read GitHub API response from '%s': %w", url, err)
	}

	return resp.StatusCode, body, nil
}
