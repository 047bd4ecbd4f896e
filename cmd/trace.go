// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/telekom/hopcheck/internal/helper"
	"github.com/telekom/hopcheck/internal/logger"
	"github.com/telekom/hopcheck/internal/probe"
	"github.com/telekom/hopcheck/internal/traceroute"
)

const (
	keyTraceMaxHops = "trace.maxHops"
	keyTracePort    = "trace.port"
	keyTraceTimeout = "trace.timeout"

	defaultResolveDelay = 500 * time.Millisecond
)

// NewCmdTrace creates the trace command
func NewCmdTrace() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace <host>",
		Short: "Trace the path to a host",
		Long: "Connects to the host with an increasing TTL and classifies every hop.\n" +
			"No raw socket is needed, so intermediate hops are reported without their address.",
		Args: cobra.ExactArgs(1),
		RunE: runTrace,
	}

	defaults := traceroute.DefaultOptions()
	flags := cmd.Flags()
	flags.IntP("max-hops", "m", defaults.MaxHops, "Maximum number of hops to search for the host")
	flags.Uint16P("port", "p", traceroute.DefaultPort, "TCP port to connect to")
	flags.VarP(newSecondsValue(defaults.Timeout), "timeout", "w", "Timeout of every connection attempt, in seconds (0.5) or as a duration (500ms)")

	bindFlags(cmd, map[string]string{
		keyTraceMaxHops: "max-hops",
		keyTracePort:    "port",
		keyTraceTimeout: "timeout",
	})
	return cmd
}

func traceOptions() (traceroute.Options, error) {
	timeout, err := parseSeconds(viper.GetString(keyTraceTimeout))
	if err != nil {
		return traceroute.Options{}, fmt.Errorf("invalid timeout: %w", err)
	}

	opts := traceroute.DefaultOptions()
	opts.MaxHops = viper.GetInt(keyTraceMaxHops)
	opts.Timeout = timeout
	opts.Retry = helper.RetryConfig{Count: 1, Delay: defaultResolveDelay}
	return opts, nil
}

func runTrace(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()
	ctx = logger.IntoContext(ctx, logger.NewConsoleLogger())

	opts, err := traceOptions()
	if err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid trace options: %w", err)
	}

	host := args[0]
	addr, err := probe.Resolve(ctx, net.DefaultResolver, host, opts.Retry)
	if err != nil {
		return err
	}

	p := newPrinter(cmd.OutOrStdout())
	p.traceStart(host, addr, opts.MaxHops)

	target := traceroute.Target{Address: addr.String(), Port: viper.GetUint16(keyTracePort)}
	res, err := traceroute.NewClient().Run(ctx, target, &opts, p.hop)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	p.traceEnd(res, opts.MaxHops)
	return nil
}
