package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/hue/internal/adapters/config"
	"go.trai.ch/hue/internal/adapters/fs"
	"go.trai.ch/hue/internal/adapters/telemetry"
	"go.trai.ch/hue/internal/app"
	"go.trai.ch/hue/internal/core/ports/mocks"
	"go.trai.ch/hue/internal/engine/compiler"
	"go.trai.ch/hue/internal/engine/configcache"
	"go.trai.ch/hue/internal/engine/graph"
	"go.trai.ch/hue/internal/engine/pipecache"
	"go.trai.ch/hue/internal/engine/resolver"
	"go.trai.ch/hue/internal/engine/thumbnail"
	"go.trai.ch/hue/internal/engine/uniforms"
	"go.uber.org/mock/gomock"
)

func newComponents(t *testing.T) (*app.Components, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	store := mocks.NewMockSettingsStore(ctrl)
	store.EXPECT().Get(gomock.Any()).Return(nil, nil).AnyTimes()

	hasher := fs.NewHasher()
	configs := configcache.New(config.NewLoaderFS(log, config.Builtin()), log)
	res := resolver.New(configs, store, hasher, log)
	builder := graph.NewBuilder(mocks.NewMockGradeListReader(ctrl))

	a := app.New(configs, res, builder,
		compiler.New(mocks.NewMockShaderBackend(ctrl)),
		pipecache.New(hasher),
		uniforms.New(),
		thumbnail.New(res, builder),
		store, log, telemetry.NewNoOpTracer(),
	)
	return &app.Components{App: a, Host: app.NewHost(a), Logger: log}, log
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	components, _ := newComponents(t)
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return components, func() {}, nil
	}

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, new(bytes.Buffer), provider)
	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "hue version")
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run logs and returns 1 when a command fails.
func TestRun_ExecutionError(t *testing.T) {
	components, log := newComponents(t)
	log.EXPECT().Error(gomock.Any()).Times(1)

	cleaned := false
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return components, func() { cleaned = true }, nil
	}

	exitCode := run(context.Background(), []string{"hash", "--config", "does-not-exist"},
		new(bytes.Buffer), new(bytes.Buffer), provider)

	assert.Equal(t, 1, exitCode)
	assert.True(t, cleaned)
}

// TestRun_AppliesOptions verifies that options see the constructed App.
func TestRun_AppliesOptions(t *testing.T) {
	components, _ := newComponents(t)
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return components, func() {}, nil
	}

	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), new(bytes.Buffer), provider,
		func(a *app.App) { a.SetExposure(1.5) })

	assert.Equal(t, 0, exitCode)
	assert.InDelta(t, 1.5, components.App.Exposure(), 1e-9)
}
