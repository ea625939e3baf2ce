package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/blogicum/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	name     string
	startErr error
	block    bool
	stopped  atomic.Bool
}

func (f *fakeService) Name() string { return f.name }

func (f *fakeService) Start(ctx context.Context) error {
	if f.block {
		<-ctx.Done()
		return nil
	}
	return f.startErr
}

func (f *fakeService) Stop(context.Context) error {
	f.stopped.Store(true)
	return nil
}

func TestRunnerStopsAllServicesWhenOneFails(t *testing.T) {
	failing := &fakeService{name: "failing", startErr: errors.New("boom")}
	blocking := &fakeService{name: "blocking", block: true}

	err := NewRunner(failing, blocking).Run(context.Background(), time.Second, nil)
	require.EqualError(t, err, "boom")
	assert.True(t, failing.stopped.Load())
	assert.True(t, blocking.stopped.Load())
}

func TestRunnerCancelledContextIsCleanExit(t *testing.T) {
	blocking := &fakeService{name: "blocking", block: true}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, NewRunner(blocking).Run(ctx, time.Second, nil))
	assert.True(t, blocking.stopped.Load())
}

func TestRunnerWithoutServices(t *testing.T) {
	assert.Error(t, NewRunner().Run(context.Background(), time.Second, nil))
	assert.Error(t, RunWithOptions(nil, Options{}))
}

func TestBuildRunnerValidatesInput(t *testing.T) {
	_, err := BuildRunner(nil, ModeAll)
	assert.Error(t, err)

	_, err = BuildRunner(&config.Config{}, "cron")
	assert.EqualError(t, err, "unknown mode: cron")
}

func TestWorkerModeRequiresQueue(t *testing.T) {
	_, err := buildServices(&config.Config{}, nil, ModeWorker)
	assert.EqualError(t, err, "worker mode requires queue.enabled")
}

func TestNormalizeOptionsDefaults(t *testing.T) {
	opts := normalizeOptions(Options{})
	assert.Equal(t, ModeAll, opts.Mode)
	assert.Equal(t, defaultShutdownTimeout, opts.ShutdownTimeout)
	assert.NotNil(t, opts.Logger)
}
