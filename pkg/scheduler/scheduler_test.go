package scheduler

import (
	"context"
	"testing"
	"time"

	"veritor-hq/veritor/pkg/benchmark"
	"veritor-hq/veritor/pkg/policy"
	"veritor-hq/veritor/pkg/policy/checksys"
	"veritor-hq/veritor/pkg/policy/outcome"
	"veritor-hq/veritor/pkg/telemetry/logging"
)

func testModel(t *testing.T) *policy.Model {
	t.Helper()
	b := benchmark.New("bench").Append(
		benchmark.NewRule("r1").WithCheck(benchmark.Check{System: "urn:test"}),
	)
	b.AddProfile(&benchmark.Profile{ID: "strict"})

	m, err := policy.NewModel(b, policy.WithLogger(logging.Discard()))
	if err != nil {
		t.Fatal(err)
	}
	m.Registry().Register("urn:test", checksys.Engine{
		Eval: func(ctx context.Context, req *checksys.CheckRequest) (outcome.Outcome, error) {
			return outcome.Pass, nil
		},
	})
	return m
}

func TestStart_InvalidSchedule(t *testing.T) {
	s := New(testModel(t), Config{Schedule: "not a cron expr"}, nil, logging.Discard())
	if err := s.Start(context.Background()); err == nil {
		t.Error("invalid cron expression should fail Start")
	}
}

func TestStart_EmptyScheduleIsNoop(t *testing.T) {
	s := New(testModel(t), Config{}, nil, logging.Discard())
	if err := s.Start(context.Background()); err != nil {
		t.Errorf("empty schedule should be a no-op, got %v", err)
	}
	if s.IsRunning() {
		t.Error("scheduler should not be running without a schedule")
	}
}

func TestStartStop(t *testing.T) {
	s := New(testModel(t), Config{Schedule: "0 3 * * *"}, nil, logging.Discard())
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if !s.IsRunning() {
		t.Error("scheduler should report running")
	}
	if s.NextRun() == nil {
		t.Error("NextRun() should be set after Start")
	}

	s.Stop()
	if s.IsRunning() {
		t.Error("scheduler should report stopped")
	}
	s.Stop() // idempotent
}

func TestStop_OnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := New(testModel(t), Config{Schedule: "0 3 * * *"}, nil, logging.Discard())
	if err := s.Start(ctx); err != nil {
		t.Fatal(err)
	}

	cancel()
	deadline := time.After(2 * time.Second)
	for s.IsRunning() {
		select {
		case <-deadline:
			t.Fatal("scheduler did not stop on context cancellation")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestRunPass_ExplicitProfiles(t *testing.T) {
	m := testModel(t)

	var got []string
	s := New(m, Config{Profiles: []string{"strict"}}, func(profileID string, batch *policy.ResultBatch) {
		got = append(got, profileID)
		if batch.Outcome("r1") != outcome.Pass {
			t.Errorf("batch outcome = %v, want Pass", batch.Outcome("r1"))
		}
	}, logging.Discard())

	s.runPass(context.Background())

	if len(got) != 1 || got[0] != "strict" {
		t.Errorf("evaluated profiles = %v, want [strict]", got)
	}
}

func TestRunPass_DefaultsToInstantiatedPolicies(t *testing.T) {
	m := testModel(t)
	if _, err := m.Policy(""); err != nil {
		t.Fatal(err)
	}

	calls := 0
	s := New(m, Config{}, func(string, *policy.ResultBatch) { calls++ }, logging.Discard())
	s.runPass(context.Background())

	if calls != 1 {
		t.Errorf("onBatch called %d times, want 1", calls)
	}
}

func TestRunPass_ResolutionFailureIsIsolated(t *testing.T) {
	m := testModel(t)

	calls := 0
	s := New(m, Config{Profiles: []string{"ghost", "strict"}},
		func(string, *policy.ResultBatch) { calls++ }, logging.Discard())
	s.runPass(context.Background())

	if calls != 1 {
		t.Errorf("healthy profile should still run, onBatch calls = %d", calls)
	}
}
