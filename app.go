package main

import (
	"github.com/giygas/interactions-api/config"
	"github.com/giygas/interactions-api/data"
	"github.com/giygas/interactions-api/dataset"
	"github.com/giygas/interactions-api/interfaces"
	"github.com/giygas/interactions-api/normalizer"
	"github.com/giygas/interactions-api/patterns"
	"github.com/giygas/interactions-api/remote"
	"github.com/giygas/interactions-api/resolver"
	"github.com/giygas/interactions-api/validation"
)

// Compile-time check to ensure the dataset loader fits the scheduler
var _ interfaces.DatasetLoader = (*dataset.Loader)(nil)

// app holds the engine and the components shared by the CLI commands
type app struct {
	cfg       *config.Config
	names     *normalizer.Normalizer
	validator *validation.DataValidatorImpl
	container *data.DataContainer
	loader    *dataset.Loader
	remote    interfaces.RemoteSource // nil when offline
	engine    *resolver.Resolver
}

// newApp wires the engine. The container starts empty until a dataset is
// loaded, by the scheduler or by loadNow.
func newApp(cfg *config.Config, offline bool) *app {
	names := normalizer.Default()
	validator := validation.NewDataValidator(names)
	container := data.NewDataContainer()

	var src interfaces.RemoteSource
	if cfg.RemoteEnabled && !offline {
		src = remote.New(remote.Config{
			RxNavBaseURL:   cfg.RxNavBaseURL,
			OpenFDABaseURL: cfg.OpenFDABaseURL,
			Timeout:        cfg.RemoteTimeout,
			StageTimeout:   cfg.RemoteStageTimeout,
			RatePerSecond:  cfg.RemoteRatePerSecond,
		}, names)
	}

	return &app{
		cfg:       cfg,
		names:     names,
		validator: validator,
		container: container,
		loader:    dataset.NewLoader(names, cfg.DatasetPath),
		remote:    src,
		engine:    resolver.New(names, validator, container, patterns.New(), src),
	}
}

// loadNow fills the container once, for one-shot commands
func (a *app) loadNow() error {
	ds, err := a.loader.LoadDataset()
	if err != nil {
		return err
	}
	a.container.UpdateDataset(ds)
	return nil
}
