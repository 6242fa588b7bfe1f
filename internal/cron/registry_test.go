package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/angelmondragon/hubs-storefront/pkg/kv"
)

type stubJob struct {
	name string
}

func (s *stubJob) Name() string                       { return s.name }
func (s *stubJob) Run(context.Context) (int64, error) { return 0, nil }

func TestRegistryStoresJobs(t *testing.T) {
	registry := NewRegistry(nil)
	jobA := &stubJob{name: "a"}
	jobB := &stubJob{name: "b"}
	registry.Register(jobA)
	registry.Register(nil)
	registry.Register(jobB)
	jobs := registry.Jobs()
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0] != jobA || jobs[1] != jobB {
		t.Fatalf("jobs returned out of order")
	}
	jobs[0] = nil
	if registry.Jobs()[0] == nil {
		t.Fatalf("internal slice leaked")
	}
}

type fakePurger struct {
	n   int64
	err error
}

func (f fakePurger) PurgeExpired(context.Context) (int64, error) { return f.n, f.err }

func TestKVPurgeJob(t *testing.T) {
	job, err := NewKVPurgeJob(fakePurger{n: 12})
	if err != nil {
		t.Fatalf("NewKVPurgeJob: %v", err)
	}
	if job.Name() != KVPurgeJobName {
		t.Fatalf("unexpected name %q", job.Name())
	}
	n, err := job.Run(context.Background())
	if err != nil || n != 12 {
		t.Fatalf("expected 12 rows, got %d (%v)", n, err)
	}

	failing, _ := NewKVPurgeJob(fakePurger{err: errors.New("db gone")})
	if _, err := failing.Run(context.Background()); err == nil {
		t.Fatal("expected purge error")
	}

	if _, err := NewKVPurgeJob(nil); err == nil {
		t.Fatal("expected nil store error")
	}
}

type lockMemory struct {
	*kv.Memory
}

func (l lockMemory) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if _, err := l.Get(ctx, key); err == nil {
		return false, nil
	}
	return true, l.Set(ctx, key, value.(string), ttl)
}

func TestRedisLockExclusiveAndOwnerScoped(t *testing.T) {
	store := lockMemory{kv.NewMemory()}
	ctx := context.Background()

	first, err := NewRedisLock(store, "sf:cron:lock", time.Minute)
	if err != nil {
		t.Fatalf("NewRedisLock: %v", err)
	}
	second, _ := NewRedisLock(store, "sf:cron:lock", time.Minute)

	if ok, err := first.Acquire(ctx); err != nil || !ok {
		t.Fatalf("expected first acquire, got %v %v", ok, err)
	}
	if ok, _ := second.Acquire(ctx); ok {
		t.Fatal("expected second acquire to fail while held")
	}
	if err := second.Release(ctx); err != nil {
		t.Fatalf("release by non-owner: %v", err)
	}
	if _, err := store.Get(ctx, "sf:cron:lock"); err != nil {
		t.Fatal("non-owner release must not delete the lock")
	}

	if err := first.Release(ctx); err != nil {
		t.Fatalf("release: %v", err)
	}
	if ok, _ := second.Acquire(ctx); !ok {
		t.Fatal("expected acquire after release")
	}
	if _, err := NewRedisLock(store, "", 0); err == nil {
		t.Fatal("expected empty key error")
	}
}
