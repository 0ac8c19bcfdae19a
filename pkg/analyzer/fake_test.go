package analyzer

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var errBoom = errors.New("boom")

var testNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return testNow.Add(-time.Duration(n) * 24 * time.Hour)
}

// fakeRepo is an in-memory Repository that records every call.
type fakeRepo struct {
	name     string
	created  time.Time
	archived bool

	hasMarker bool
	markerErr error
	topics    []string
	topicsErr error
	commits   []time.Time
	commitErr error

	archiveErr   error
	archiveCalls int
	commitCalls  int
}

func (f *fakeRepo) FullName() string     { return f.name }
func (f *fakeRepo) CreatedAt() time.Time { return f.created }
func (f *fakeRepo) Archived() bool       { return f.archived }

func (f *fakeRepo) HasFile(_ context.Context, path string) (bool, error) {
	if f.markerErr != nil {
		return false, f.markerErr
	}
	if path != MarkerFile || !f.hasMarker {
		return false, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	return true, nil
}

func (f *fakeRepo) Topics(context.Context) ([]string, error) {
	return f.topics, f.topicsErr
}

func (f *fakeRepo) CommitsSince(_ context.Context, since time.Time) (int, error) {
	f.commitCalls++
	if f.commitErr != nil {
		return 0, f.commitErr
	}
	n := 0
	for _, c := range f.commits {
		if c.After(since) {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) Archive(context.Context) error {
	f.archiveCalls++
	if f.archiveErr != nil {
		return f.archiveErr
	}
	f.archived = true
	return nil
}

// dormantRepo returns a repository that the default policy archives.
func dormantRepo(name string) *fakeRepo {
	return &fakeRepo{
		name:    name,
		created: daysAgo(200),
		commits: []time.Time{daysAgo(250)},
	}
}

type fakeProvider struct {
	repos []Repository
	err   error
}

func (p *fakeProvider) Repositories(context.Context) ([]Repository, error) {
	return p.repos, p.err
}
