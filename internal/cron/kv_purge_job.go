package cron

import (
	"context"
	"errors"
)

const KVPurgeJobName = "kv_purge"

type expiredPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// NewKVPurgeJob deletes expired session rows from the SQL key-value store.
// Redis expires keys on its own and needs no job.
func NewKVPurgeJob(store expiredPurger) (Job, error) {
	if store == nil {
		return nil, errors.New("kv store required")
	}
	return &kvPurgeJob{store: store}, nil
}

type kvPurgeJob struct {
	store expiredPurger
}

func (j *kvPurgeJob) Name() string { return KVPurgeJobName }

func (j *kvPurgeJob) Run(ctx context.Context) (int64, error) {
	return j.store.PurgeExpired(ctx)
}
