package cron

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/hubs-storefront/pkg/logger"
	"github.com/angelmondragon/hubs-storefront/pkg/metrics"
)

type fakeLock struct {
	held     bool
	acquires int
	releases int
	err      error
}

func (f *fakeLock) Acquire(context.Context) (bool, error) {
	f.acquires++
	if f.err != nil {
		return false, f.err
	}
	if f.held {
		return false, nil
	}
	f.held = true
	return true, nil
}

func (f *fakeLock) Release(context.Context) error {
	f.releases++
	f.held = false
	return nil
}

type testJob struct {
	name     string
	affected int64
	err      error
	runs     int
}

func (t *testJob) Name() string { return t.name }

func (t *testJob) Run(context.Context) (int64, error) {
	t.runs++
	return t.affected, t.err
}

func newTestService(t *testing.T, lock Lock, jobs ...Job) (*Service, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logg := logger.New(logger.Options{ServiceName: "cron-test", Output: &buf})
	service, err := NewService(ServiceParams{
		Logger:   logg,
		Registry: NewRegistry(jobs...),
		Lock:     lock,
		Metrics:  metrics.NewJobMetrics(prometheus.NewRegistry(), "test"),
	})
	if err != nil {
		t.Fatalf("construct service: %v", err)
	}
	return service, &buf
}

func TestServiceRunCycleRunsAllJobsEvenOnFailure(t *testing.T) {
	success := &testJob{name: "success", affected: 4}
	failure := &testJob{name: "fail", err: errors.New("boom")}
	lock := &fakeLock{}
	service, buf := newTestService(t, lock, success, failure)

	if err := service.runCycle(context.Background()); err != nil {
		t.Fatalf("run cycle: %v", err)
	}
	if success.runs != 1 || failure.runs != 1 {
		t.Fatalf("expected each job once, got %d and %d", success.runs, failure.runs)
	}
	if lock.held || lock.releases != 1 {
		t.Fatalf("expected lock released once, held=%v releases=%d", lock.held, lock.releases)
	}
	if !strings.Contains(buf.String(), "cron.job.failed") {
		t.Fatalf("expected failure to be logged, got %s", buf.String())
	}
}

func TestServiceSkipsCycleWhenLockHeld(t *testing.T) {
	job := &testJob{name: "kv_purge"}
	lock := &fakeLock{held: true}
	service, _ := newTestService(t, lock, job)

	if err := service.runCycle(context.Background()); err != nil {
		t.Fatalf("run cycle: %v", err)
	}
	if job.runs != 0 {
		t.Fatalf("expected job skipped, ran %d", job.runs)
	}
	if lock.releases != 0 {
		t.Fatalf("expected no release for a lock we never held")
	}
}

func TestServiceLockErrorSurfaces(t *testing.T) {
	service, _ := newTestService(t, &fakeLock{err: errors.New("redis down")}, &testJob{name: "x"})
	if err := service.runCycle(context.Background()); err == nil {
		t.Fatal("expected lock error")
	}
}

func TestServiceEmptyRegistryDoesNotLock(t *testing.T) {
	lock := &fakeLock{}
	service, _ := newTestService(t, lock)
	if err := service.runCycle(context.Background()); err != nil {
		t.Fatalf("run cycle: %v", err)
	}
	if lock.acquires != 0 {
		t.Fatalf("expected no lock attempt, got %d", lock.acquires)
	}
}

type signalJob struct {
	ran chan struct{}
}

func (s *signalJob) Name() string { return "signal" }

func (s *signalJob) Run(context.Context) (int64, error) {
	select {
	case s.ran <- struct{}{}:
	default:
	}
	return 0, nil
}

func TestServiceRunStopsOnCancel(t *testing.T) {
	job := &signalJob{ran: make(chan struct{}, 1)}
	service, _ := newTestService(t, &fakeLock{}, job)
	service.interval = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- service.Run(ctx) }()

	select {
	case <-job.ran:
	case <-time.After(2 * time.Second):
		t.Fatal("first cycle did not run")
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNewServiceRequiresLock(t *testing.T) {
	if _, err := NewService(ServiceParams{Logger: logger.New(logger.Options{})}); err == nil {
		t.Fatal("expected missing lock error")
	}
}
