// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/telekom/hopcheck/internal/logger"
	"github.com/telekom/hopcheck/pkg/agent"
	"github.com/telekom/hopcheck/pkg/config"
)

// NewCmdRun creates the run command, which starts the monitoring agent
func NewCmdRun() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run hopcheck as a monitoring agent",
		Long: "Runs the ping and traceroute checks periodically against the configured targets.\n" +
			"The results are exposed via an API and as prometheus metrics.",
		RunE: run,
	}

	flags := cmd.Flags()
	flags.String("name", "", "The DNS name of the agent")
	flags.String("api-address", ":8080", "api: The address the server is listening on")
	flags.String("loader-type", "file", "Defines which loader to use. Options: \"file\", \"http\"")
	flags.Duration("loader-interval", 5*time.Minute, "Defines the interval the loader reloads the configuration in. 0 means the configuration is loaded once")
	flags.String("loader-file-path", "config.yaml", "file loader: The path to the file to read the runtime config from")
	flags.String("loader-http-url", "", "http loader: The url where to get the remote configuration")
	flags.String("loader-http-token", "", "http loader: Bearer token to authenticate the http endpoint")
	flags.Duration("loader-http-timeout", 30*time.Second, "http loader: The timeout for the http request in seconds")
	flags.Int("loader-http-retry-count", 3, "http loader: Amount of retries trying to load the configuration")
	flags.Duration("loader-http-retry-delay", time.Second, "http loader: The initial delay between retries in seconds")

	bindFlags(cmd, map[string]string{
		"name":                    "name",
		"api.address":             "api-address",
		"loader.type":             "loader-type",
		"loader.interval":         "loader-interval",
		"loader.file.path":        "loader-file-path",
		"loader.http.url":         "loader-http-url",
		"loader.http.token":       "loader-http-token",
		"loader.http.timeout":     "loader-http-timeout",
		"loader.http.retry.count": "loader-http-retry-count",
		"loader.http.retry.delay": "loader-http-retry-delay",
	})
	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	log := logger.NewLogger()
	ctx = logger.IntoContext(ctx, log)

	cfg := &config.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(ctx); err != nil {
		return fmt.Errorf("error while validating the config: %w", err)
	}

	log.InfoContext(ctx, "Running hopcheck agent", "name", cfg.Name)
	err := agent.New(cfg).Run(ctx)
	if ctx.Err() != nil && errors.Is(err, agent.ErrFinalShutdown) {
		log.InfoContext(ctx, "Agent stopped")
		return nil
	}
	return fmt.Errorf("agent stopped unexpectedly: %w", err)
}
