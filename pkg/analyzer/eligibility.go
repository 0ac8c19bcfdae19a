package analyzer

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DefaultThreshold is the age and inactivity window used when none is configured.
const DefaultThreshold = 180 * 24 * time.Hour

// Decision is the outcome of evaluating a single repository
type Decision int

const (
	NotEligible Decision = iota
	Exempt
	Archivable
)

func (d Decision) String() string {
	switch d {
	case Exempt:
		return "exempt"
	case Archivable:
		return "archivable"
	default:
		return "not-eligible"
	}
}

// Policy controls when a repository counts as dormant
type Policy struct {
	// Threshold is both the minimum repository age and the window that must be free of commits.
	Threshold time.Duration
	// FailOpen treats a failed commit lookup as "no commits" instead of "not archivable".
	FailOpen bool
}

// Evaluator applies the eligibility rules to repository descriptors.
type Evaluator struct {
	policy Policy
	logger *zap.Logger
	now    func() time.Time
}

// EvaluatorOption customizes an Evaluator
type EvaluatorOption func(*Evaluator)

// WithClock replaces the evaluator's time source.
func WithClock(now func() time.Time) EvaluatorOption {
	return func(e *Evaluator) {
		e.now = now
	}
}

// NewEvaluator creates an Evaluator for the given policy. A zero threshold falls back to DefaultThreshold.
func NewEvaluator(policy Policy, logger *zap.Logger, opts ...EvaluatorOption) *Evaluator {
	if policy.Threshold <= 0 {
		policy.Threshold = DefaultThreshold
	}

	e := &Evaluator{
		policy: policy,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Policy returns the policy in effect.
func (e *Evaluator) Policy() Policy {
	return e.policy
}

// Evaluate classifies repo. Exemption is checked first; archivability only for repositories that are not exempt.
func (e *Evaluator) Evaluate(ctx context.Context, repo Repository) Decision {
	if e.IsExempt(ctx, repo) {
		return Exempt
	}
	if e.IsArchivable(ctx, repo) {
		return Archivable
	}
	return NotEligible
}

// IsExempt reports whether repo carries the marker file or any topic.
// Lookup failures are logged and treated as the signal being absent.
func (e *Evaluator) IsExempt(ctx context.Context, repo Repository) bool {
	name := repo.FullName()

	found, err := repo.HasFile(ctx, MarkerFile)
	if err != nil {
		e.logger.Error("unable to read marker file",
			zap.String("repo", name),
			zap.String("path", MarkerFile),
			zap.Error(err))
	} else if found {
		return true
	}

	topics, err := repo.Topics(ctx)
	if err != nil {
		e.logger.Error("unable to get topics",
			zap.String("repo", name),
			zap.Error(err))
		return false
	}

	return len(topics) > 0
}

// IsArchivable reports whether repo is older than the threshold and has no commits within it.
func (e *Evaluator) IsArchivable(ctx context.Context, repo Repository) bool {
	cutoff := e.now().Add(-e.policy.Threshold)

	created := repo.CreatedAt()
	if created.IsZero() {
		e.logger.Error("unknown creation time",
			zap.String("repo", repo.FullName()))
		return false
	}
	if !created.Before(cutoff) {
		return false
	}

	count, err := repo.CommitsSince(ctx, cutoff)
	if err != nil {
		e.logger.Error("unable to count commits",
			zap.String("repo", repo.FullName()),
			zap.Time("since", cutoff),
			zap.Bool("fail_open", e.policy.FailOpen),
			zap.Error(err))
		return e.policy.FailOpen
	}

	return count == 0
}
