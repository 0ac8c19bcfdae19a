package analyzer

import (
	"context"

	"go.uber.org/zap"
)

// archive performs the only state change of a run. A failure is logged and recorded, never returned.
func (a *Archiver) archive(ctx context.Context, repo Repository, r Result) Result {
	if a.opts.DryRun {
		r.DryRun = true
		a.logger.Info("would archive repository", zap.String("repo", r.Name))
		return r
	}

	a.logger.Info("archiving repository", zap.String("repo", r.Name))

	if err := repo.Archive(ctx); err != nil {
		r.Err = err
		a.logger.Error("unable to archive repository",
			zap.String("repo", r.Name),
			zap.Error(err))
		return r
	}

	r.Archived = true
	a.logger.Info("archived repository", zap.String("repo", r.Name))

	return r
}
