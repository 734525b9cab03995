package cron

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunOnceExecutesEveryJob(t *testing.T) {
	s := NewScheduler(slog.Default())

	var first, second atomic.Int32
	s.AddJob("first", time.Hour, func(context.Context) error {
		first.Add(1)
		return nil
	})
	s.AddJob("second", time.Hour, func(context.Context) error {
		second.Add(1)
		return errors.New("boom")
	})

	s.RunOnce(context.Background())
	assert.Equal(t, int32(1), first.Load())
	assert.Equal(t, int32(1), second.Load(), "a failing job must not stop the others")
}

func TestStartRunsJobImmediatelyAndStops(t *testing.T) {
	s := NewScheduler(slog.Default())

	ran := make(chan struct{}, 1)
	s.AddJob("probe", time.Hour, func(context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start()
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()
}
