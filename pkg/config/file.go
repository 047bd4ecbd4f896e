// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/telekom/hopcheck/internal/logger"
	"github.com/telekom/hopcheck/pkg/checks/runtime"
	"gopkg.in/yaml.v3"
)

var _ Loader = (*FileLoader)(nil)

// FileLoader reads the runtime configuration from a local yaml file
type FileLoader struct {
	config   LoaderConfig
	cRuntime chan<- runtime.Config
	done     chan struct{}
	fsys     fs.FS
}

func NewFileLoader(cfg *Config, cRuntime chan<- runtime.Config) *FileLoader {
	return &FileLoader{
		config:   cfg.Loader,
		cRuntime: cRuntime,
		done:     make(chan struct{}, 1),
		fsys:     os.DirFS(filepath.Dir(cfg.Loader.File.Path)),
	}
}

// Run reads the runtime configuration from the file on startup and
// then once per loader interval. Editing the file reconfigures the checks.
func (f *FileLoader) Run(ctx context.Context) error {
	ctx, cancel := logger.NewContextWithLogger(ctx)
	defer cancel()
	ctx = logger.IntoContext(ctx, logger.FromContext(ctx).With("loader", "file", "path", f.config.File.Path))

	return reload(ctx, f.config.Interval, f.done, f.cRuntime, f.getRuntimeConfig)
}

// getRuntimeConfig reads and decodes the configuration file
func (f *FileLoader) getRuntimeConfig(ctx context.Context) (cfg runtime.Config, err error) {
	log := logger.FromContext(ctx)

	file, err := f.fsys.Open(filepath.Base(f.config.File.Path))
	if err != nil {
		log.ErrorContext(ctx, "Failed to open config file", "error", err)
		return cfg, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() {
		if cErr := file.Close(); cErr != nil {
			log.ErrorContext(ctx, "Failed to close config file", "error", cErr)
			err = errors.Join(err, cErr)
		}
	}()

	b, err := io.ReadAll(file)
	if err != nil {
		log.ErrorContext(ctx, "Failed to read config file", "error", err)
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(b, &cfg); err != nil {
		log.ErrorContext(ctx, "Failed to parse config file", "error", err)
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Shutdown stops the loader routine
func (f *FileLoader) Shutdown(ctx context.Context) {
	select {
	case f.done <- struct{}{}:
		logger.FromContext(ctx).DebugContext(ctx, "Sending signal to shut down file loader")
	default:
	}
}
