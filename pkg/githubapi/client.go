// Package githubapi implements the repository provider on top of the GitHub REST API.
package githubapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v75/github"
	"github.com/harekrishnarai/dormant/pkg/analyzer"
	"go.uber.org/zap"
)

const perPage = 100

// Client lists the repositories of the authenticated user.
type Client struct {
	gh          *github.Client
	affiliation string
	logger      *zap.Logger
}

// NewClient creates a client authenticated with token. An empty baseURL targets github.com.
func NewClient(token, baseURL, affiliation string, logger *zap.Logger) (*Client, error) {
	gh := github.NewClient(nil).WithAuthToken(token)

	if baseURL != "" {
		var err error
		gh, err = gh.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
		}
	}

	return &Client{
		gh:          gh,
		affiliation: affiliation,
		logger:      logger,
	}, nil
}

// Repositories returns every repository matching the configured affiliation, following pagination.
func (c *Client) Repositories(ctx context.Context) ([]analyzer.Repository, error) {
	opts := &github.RepositoryListByAuthenticatedUserOptions{
		Affiliation: c.affiliation,
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	var result []analyzer.Repository
	for {
		c.logger.Debug("fetching page of repositories", zap.Int("page", opts.Page))

		repos, resp, err := c.gh.Repositories.ListByAuthenticatedUser(ctx, opts)
		if err != nil {
			return nil, wrapError(fmt.Sprintf("failed to list repositories on page %d", opts.Page), err)
		}

		for _, r := range repos {
			result = append(result, newRepository(c.gh, r))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return result, nil
}

// wrapError maps go-github failures onto the analyzer error taxonomy, keeping the original in the chain.
func wrapError(msg string, err error) error {
	sentinel := analyzer.ErrProvider
	if statusCode(err) == http.StatusNotFound {
		sentinel = analyzer.ErrNotFound
	}
	return fmt.Errorf("%s: %w: %w", msg, sentinel, err)
}

func statusCode(err error) int {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return ghErr.Response.StatusCode
	}
	return 0
}
