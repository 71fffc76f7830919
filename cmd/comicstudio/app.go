package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"comicstudio/internal/config"
	"comicstudio/internal/imagecodec"
	"comicstudio/internal/imagecodec/vips"
	"comicstudio/internal/store"
	"comicstudio/internal/studio"
	"comicstudio/internal/suggest"
	"comicstudio/internal/universe"
)

// app bundles what every command needs once the store is open.
type app struct {
	cfg       *config.ProjectConfig
	templates *config.Templates
	kv        store.KV
	studio    *studio.Studio
	log       *zap.Logger
}

func openApp(ctx context.Context) (*app, error) {
	log, err := newLogger(verbose)
	if err != nil {
		return nil, err
	}
	if err := config.LoadEnvFile(envPath); err != nil {
		return nil, err
	}
	cfg, err := config.LoadProjectConfigOrDefault(configPath, "comicstudio")
	if err != nil {
		return nil, err
	}
	templates, err := config.LoadTemplatesOrDefault(templatesPath)
	if err != nil {
		return nil, err
	}

	kv, err := openKV(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := kv.EnsureSchema(ctx); err != nil {
		_ = kv.Close(ctx)
		return nil, err
	}
	log.Debug("store opened", zap.String("project", cfg.Project))

	return &app{
		cfg:       cfg,
		templates: templates,
		kv:        kv,
		studio:    studio.Open(ctx, store.NewPersistence(kv, log), log),
		log:       log,
	}, nil
}

func (a *app) Close(ctx context.Context) {
	if err := a.kv.Close(ctx); err != nil {
		a.log.Warn("closing store", zap.Error(err))
	}
	_ = a.log.Sync()
}

func (a *app) codec() imagecodec.Codec {
	if a.cfg.Images.Codec == "none" {
		return imagecodec.Passthrough{}
	}
	return vips.New(a.cfg.Images.Quality, a.cfg.Images.MaxWidth)
}

func (a *app) suggester(ctx context.Context) (suggest.Service, error) {
	key := a.cfg.APIKey()
	if key == "" {
		return nil, fmt.Errorf("%s is not set", a.cfg.Suggest.APIKeyEnv)
	}
	return suggest.NewGemini(ctx, key, a.cfg.Suggest.Model)
}

// universeID falls back to the active universe when id is empty.
func (a *app) universeID(id string) (string, error) {
	if id != "" {
		return id, nil
	}
	p, err := a.studio.ActivePath()
	if err != nil {
		return "", err
	}
	return p.Universe, nil
}

func (a *app) universe(id string) (universe.Universe, error) {
	id, err := a.universeID(id)
	if err != nil {
		return universe.Universe{}, err
	}
	tree, _ := a.studio.Snapshot()
	u, ok := universe.FindUniverse(tree, id)
	if !ok {
		return universe.Universe{}, fmt.Errorf("%w: %s", studio.ErrUnknownUniverse, id)
	}
	return u, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return log, nil
}
