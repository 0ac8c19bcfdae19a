package githubapi

import (
	"context"
	"net/http"
	"time"

	"github.com/google/go-github/v75/github"
)

// repository is a descriptor backed by one entry of the repository listing.
// Topics, contents and commits are fetched only when asked for.
type repository struct {
	gh        *github.Client
	owner     string
	name      string
	fullName  string
	createdAt time.Time
	archived  bool
}

func newRepository(gh *github.Client, r *github.Repository) *repository {
	return &repository{
		gh:        gh,
		owner:     r.GetOwner().GetLogin(),
		name:      r.GetName(),
		fullName:  r.GetFullName(),
		createdAt: r.GetCreatedAt().Time,
		archived:  r.GetArchived(),
	}
}

func (r *repository) FullName() string     { return r.fullName }
func (r *repository) CreatedAt() time.Time { return r.createdAt }
func (r *repository) Archived() bool       { return r.archived }

func (r *repository) HasFile(ctx context.Context, path string) (bool, error) {
	file, dir, _, err := r.gh.Repositories.GetContents(ctx, r.owner, r.name, path, nil)
	if err != nil {
		return false, wrapError("failed to get "+path+" from "+r.fullName, err)
	}
	// A directory with that name counts as present too.
	return file != nil || len(dir) > 0, nil
}

func (r *repository) Topics(ctx context.Context) ([]string, error) {
	topics, _, err := r.gh.Repositories.ListAllTopics(ctx, r.owner, r.name)
	if err != nil {
		return nil, wrapError("failed to get topics of "+r.fullName, err)
	}
	return topics, nil
}

// CommitsSince asks for one commit per page so the last page number is the commit count.
func (r *repository) CommitsSince(ctx context.Context, since time.Time) (int, error) {
	opts := &github.CommitsListOptions{
		Since:       since,
		ListOptions: github.ListOptions{PerPage: 1},
	}

	commits, resp, err := r.gh.Repositories.ListCommits(ctx, r.owner, r.name, opts)
	if err != nil {
		// GitHub answers 409 for a repository without any commit.
		if statusCode(err) == http.StatusConflict {
			return 0, nil
		}
		return 0, wrapError("failed to get commits of "+r.fullName, err)
	}

	if resp.LastPage > 0 {
		return resp.LastPage, nil
	}
	return len(commits), nil
}

func (r *repository) Archive(ctx context.Context) error {
	if r.archived {
		return nil
	}

	_, _, err := r.gh.Repositories.Edit(ctx, r.owner, r.name, &github.Repository{
		Archived: github.Ptr(true),
	})
	if err != nil {
		return wrapError("failed to archive "+r.fullName, err)
	}

	r.archived = true
	return nil
}
