package analyzer

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func newTestEvaluator(t *testing.T, policy Policy) *Evaluator {
	t.Helper()
	return NewEvaluator(policy, zaptest.NewLogger(t), WithClock(func() time.Time { return testNow }))
}

func TestEvaluator_Evaluate(t *testing.T) {
	tests := []struct {
		name string
		repo *fakeRepo
		want Decision
	}{
		{
			name: "dormant repository",
			repo: dormantRepo("me/old"),
			want: Archivable,
		},
		{
			name: "recent commit",
			repo: &fakeRepo{name: "me/busy", created: daysAgo(200), commits: []time.Time{daysAgo(10)}},
			want: NotEligible,
		},
		{
			name: "young repository without commits",
			repo: &fakeRepo{name: "me/new", created: daysAgo(30)},
			want: NotEligible,
		},
		{
			name: "created exactly at the threshold",
			repo: &fakeRepo{name: "me/edge", created: daysAgo(180)},
			want: NotEligible,
		},
		{
			name: "old repository without any commit",
			repo: &fakeRepo{name: "me/empty", created: daysAgo(400)},
			want: Archivable,
		},
		{
			name: "marker file",
			repo: &fakeRepo{name: "me/keep", created: daysAgo(400), hasMarker: true},
			want: Exempt,
		},
		{
			name: "marker file on a young active repository",
			repo: &fakeRepo{name: "me/keep-new", created: daysAgo(5), hasMarker: true, commits: []time.Time{daysAgo(1)}},
			want: Exempt,
		},
		{
			name: "topics",
			repo: &fakeRepo{name: "me/tagged", created: daysAgo(400), topics: []string{"tool"}},
			want: Exempt,
		},
		{
			name: "marker lookup failure falls through to the other rules",
			repo: &fakeRepo{name: "me/flaky", created: daysAgo(400), markerErr: errBoom},
			want: Archivable,
		},
		{
			name: "topics lookup failure falls through to the other rules",
			repo: &fakeRepo{name: "me/flaky-topics", created: daysAgo(400), topicsErr: errBoom},
			want: Archivable,
		},
		{
			name: "unknown creation time",
			repo: &fakeRepo{name: "me/undated"},
			want: NotEligible,
		},
		{
			name: "commit lookup failure is not archivable",
			repo: &fakeRepo{name: "me/broken", created: daysAgo(400), commitErr: errBoom},
			want: NotEligible,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEvaluator(t, Policy{Threshold: DefaultThreshold})
			if got := e.Evaluate(context.Background(), tt.repo); got != tt.want {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluator_ExemptSkipsHistory(t *testing.T) {
	repo := &fakeRepo{name: "me/keep", created: daysAgo(400), topics: []string{"docs"}}

	e := newTestEvaluator(t, Policy{})
	if got := e.Evaluate(context.Background(), repo); got != Exempt {
		t.Fatalf("Evaluate() = %v, want %v", got, Exempt)
	}
	if repo.commitCalls != 0 {
		t.Errorf("commit history read %d times for an exempt repository", repo.commitCalls)
	}
}

func TestEvaluator_FailOpen(t *testing.T) {
	repo := &fakeRepo{name: "me/broken", created: daysAgo(400), commitErr: errBoom}

	e := newTestEvaluator(t, Policy{Threshold: DefaultThreshold, FailOpen: true})
	if got := e.Evaluate(context.Background(), repo); got != Archivable {
		t.Errorf("Evaluate() = %v, want %v", got, Archivable)
	}

	young := &fakeRepo{name: "me/young", created: daysAgo(10), commitErr: errBoom}
	if got := e.Evaluate(context.Background(), young); got != NotEligible {
		t.Errorf("Evaluate() on young repository = %v, want %v", got, NotEligible)
	}
}

func TestEvaluator_CustomThreshold(t *testing.T) {
	repo := &fakeRepo{name: "me/month", created: daysAgo(45), commits: []time.Time{daysAgo(40)}}

	e := newTestEvaluator(t, Policy{Threshold: 30 * 24 * time.Hour})
	if got := e.Evaluate(context.Background(), repo); got != Archivable {
		t.Errorf("Evaluate() = %v, want %v", got, Archivable)
	}
}

func TestNewEvaluator_DefaultThreshold(t *testing.T) {
	e := NewEvaluator(Policy{}, zap.NewNop())
	if got := e.Policy().Threshold; got != DefaultThreshold {
		t.Errorf("Threshold = %v, want %v", got, DefaultThreshold)
	}
}

func TestEvaluator_LogsLookupFailures(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	e := NewEvaluator(Policy{}, zap.New(core), WithClock(func() time.Time { return testNow }))

	repo := &fakeRepo{name: "me/flaky", created: daysAgo(400), markerErr: errBoom, topicsErr: errBoom, commitErr: errBoom}
	e.Evaluate(context.Background(), repo)

	want := []string{"unable to read marker file", "unable to get topics", "unable to count commits"}
	entries := logs.All()
	if len(entries) != len(want) {
		t.Fatalf("got %d log entries, want %d", len(entries), len(want))
	}
	for i, entry := range entries {
		if entry.Message != want[i] {
			t.Errorf("entry %d message = %q, want %q", i, entry.Message, want[i])
		}
		if entry.Level != zapcore.ErrorLevel {
			t.Errorf("entry %d level = %v, want error", i, entry.Level)
		}
		if got := entry.ContextMap()["repo"]; got != "me/flaky" {
			t.Errorf("entry %d repo = %v, want me/flaky", i, got)
		}
	}
}

func TestDecision_String(t *testing.T) {
	for d, want := range map[Decision]string{
		Exempt:      "exempt",
		Archivable:  "archivable",
		NotEligible: "not-eligible",
	} {
		if got := d.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(d), got, want)
		}
	}
}
