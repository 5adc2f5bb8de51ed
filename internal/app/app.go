package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/vk/modforge/internal/config"
	"github.com/vk/modforge/internal/ctxlog"
	"github.com/vk/modforge/internal/fsutil"
	"github.com/vk/modforge/internal/hcl"
	"github.com/vk/modforge/internal/loader"
	"github.com/vk/modforge/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	fs      afero.Fs
	engine  *loader.Engine
	catalog *registry.Catalog
	model   *config.Model
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger, transform
// catalog, and engine. Critical configuration errors panic; the caller
// recovers them into a clean exit.
func NewApp(outW io.Writer, appConfig *Config, cfgLoader config.Loader, fs afero.Fs, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := cfgLoader.Load(ctx, appConfig.ConfigPath)
	if err != nil {
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	logger.Debug("Configuration loaded and translated into unified model.")

	catalog := registry.New()
	if len(modules) == 0 {
		modules = coreTransforms
	}
	for _, mod := range modules {
		mod.Register(catalog)
	}
	logger.Debug("All transform modules registered.", "identifiers", catalog.Identifiers())

	sources := buildSources(ctx, fs, model)

	dumpPath := model.Loader.DumpPath
	if appConfig.DumpPath != "" {
		dumpPath = appConfig.DumpPath
	}
	var dumpFs afero.Fs
	if dumpPath != "" {
		if err := fs.MkdirAll(dumpPath, 0o755); err != nil {
			panic(fmt.Errorf("failed to create dump directory %s: %w", dumpPath, err))
		}
		dumpFs = afero.NewBasePathFs(fs, dumpPath)
		logger.Debug("Post-transform image dump enabled.", "path", dumpPath)
	}

	engine := loader.New(loader.Options{
		Sources:           sources,
		Catalog:           catalog,
		HostPrefix:        model.Loader.HostPrefix,
		DumpFs:            dumpFs,
		DelegatePrefixes:  model.Loader.DelegatePrefixes,
		TransformPrefixes: model.Loader.TransformPrefixes,
	})
	for _, reg := range model.Transforms {
		engine.RegisterTransform(ctx, reg.ID, reg.Options)
	}
	logger.Debug("Engine assembled.", "sources", len(sources), "transforms", len(engine.Transformers()))

	return &App{
		outW:    outW,
		logger:  logger,
		fs:      fs,
		engine:  engine,
		catalog: catalog,
		model:   model,
	}
}

// buildSources assembles the engine's initial search path: one directory
// source per search_path entry (with its origin manifest, if present),
// followed by the configured remote mirrors.
func buildSources(ctx context.Context, fs afero.Fs, model *config.Model) []loader.Source {
	logger := ctxlog.FromContext(ctx)
	var sources []loader.Source
	for _, dir := range model.Loader.SearchPath {
		sub := afero.NewBasePathFs(fs, dir)
		origin, err := hcl.ParseOriginManifest(sub)
		if err != nil {
			panic(fmt.Errorf("failed to read origin manifest in %s: %w", dir, err))
		}
		units, err := fsutil.FindFilesByExtension(sub, "/", ".bin")
		if err != nil {
			logger.Warn("Could not enumerate unit images in search path entry.", "dir", dir, "error", err)
		}
		label := ""
		if origin != nil {
			label = origin.Label
		}
		logger.Debug("Search path entry added.", "dir", dir, "units", len(units), "origin", label)
		sources = append(sources, loader.NewDirSource(sub, dir, origin))
	}
	for _, remote := range model.Remotes {
		logger.Debug("Remote mirror added.", "name", remote.Name, "base_url", remote.BaseURL)
		sources = append(sources, loader.NewRemoteSource(remote.Name, remote.BaseURL, nil))
	}
	return sources
}

// Engine returns the application's engine. This is primarily for testing.
func (a *App) Engine() *loader.Engine {
	return a.engine
}
