package github

import (
	"context"
	"errors"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/MBII-Galactic-Conquest/mbregistry/internal/registry"
)

// defaultConcurrency bounds parallel GitHub API calls during a registry check.
const defaultConcurrency = 4

// perEntryTimeout bounds the API calls for a single entry so one slow
// repository cannot stall the whole check.
const perEntryTimeout = 15 * time.Second

// CheckResult is the liveness outcome for a single registry entry.
type CheckResult struct {
	Index     int            `json:"index" yaml:"index"`
	Name      string         `json:"name" yaml:"name"`
	Exists    bool           `json:"exists" yaml:"exists"`
	LatestTag string         `json:"latest_tag,omitempty" yaml:"latest_tag,omitempty"`
	Error     string         `json:"error,omitempty" yaml:"error,omitempty"`
	Entry     registry.Entry `json:"-" yaml:"-"`
}

// OK reports whether the entry points at a live repository and no API call failed.
func (r CheckResult) OK() bool {
	return r.Exists && r.Error == ""
}

// Checker runs liveness checks for registry entries against the GitHub API.
// It is layered strictly on top of the core validator: validation itself
// never performs network calls.
type Checker struct {
	client        *Client
	logger        hclog.Logger
	concurrency   int
	resolveLatest bool
}

// NewChecker creates a Checker using the supplied API client.
// When resolveLatest is true, the latest release tag is resolved for every
// repository that exists.
func NewChecker(logger hclog.Logger, client *Client, resolveLatest bool) *Checker {
	return &Checker{
		client:        client,
		logger:        logger.Named("checker"),
		concurrency:   defaultConcurrency,
		resolveLatest: resolveLatest,
	}
}

// Check verifies each entry concurrently and returns one result per entry, in
// registry order. Cancelling ctx stops the remaining checks; per-entry
// failures are recorded in the result rather than aborting the run.
func (c *Checker) Check(ctx context.Context, reg registry.Registry) []CheckResult {
	results := make([]CheckResult, len(reg))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, entry := range reg {
		g.Go(func() error {
			results[i] = c.checkEntry(ctx, i, entry)
			return nil
		})
	}

	// Workers only report per-entry failures through results.
	_ = g.Wait()

	return results
}

func (c *Checker) checkEntry(ctx context.Context, index int, entry registry.Entry) CheckResult {
	result := CheckResult{Index: index, Name: entry.Name, Entry: entry}

	owner, repo := entry.Owner(), entry.Repo()
	if owner == "" || repo == "" {
		result.Error = "name is not in 'owner/repo' format"
		return result
	}

	ctx, cancel := context.WithTimeout(ctx, perEntryTimeout)
	defer cancel()

	exists, err := c.client.RepositoryExists(ctx, owner, repo)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Exists = exists

	if !exists || !c.resolveLatest {
		return result
	}

	release, err := c.client.LatestRelease(ctx, owner, repo)
	switch {
	case errors.Is(err, ErrNoReleases):
		c.logger.Debug("Repository has no releases", "name", entry.Name)
	case err != nil:
		result.Error = err.Error()
	default:
		result.LatestTag = release.TagName
	}

	return result
}
