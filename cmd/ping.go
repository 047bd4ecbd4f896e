// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/telekom/hopcheck/internal/helper"
	"github.com/telekom/hopcheck/internal/logger"
	"github.com/telekom/hopcheck/internal/ping"
)

const (
	keyPingCount    = "ping.count"
	keyPingInterval = "ping.interval"
	keyPingPort     = "ping.port"
	keyPingTCP      = "ping.tcp"
	keyPingTimeout  = "ping.timeout"
)

// NewCmdPing creates the ping command
func NewCmdPing() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ping <host>",
		Short: "Measure the round trip time to a host",
		Long: "Sends echo requests to the host and prints the round trip times.\n" +
			"Without the privileges to open a raw ICMP socket TCP connect probes are used instead.",
		Args: cobra.ExactArgs(1),
		RunE: runPing,
	}

	defaults := ping.DefaultOptions()
	flags := cmd.Flags()
	flags.Uint32P("count", "n", defaults.Count, "Number of probes to send")
	flags.VarP(newSecondsValue(defaults.Interval), "interval", "i", "Pause between two probes, in seconds (0.5) or as a duration (500ms)")
	flags.Uint16P("port", "p", defaults.Port, "TCP port used when ICMP is not available")
	flags.BoolP("tcp", "t", false, "Force TCP probes even if ICMP is available")
	flags.VarP(newSecondsValue(defaults.Timeout), "timeout", "w", "Timeout to wait for each reply, in seconds (0.5) or as a duration (500ms)")

	bindFlags(cmd, map[string]string{
		keyPingCount:    "count",
		keyPingInterval: "interval",
		keyPingPort:     "port",
		keyPingTCP:      "tcp",
		keyPingTimeout:  "timeout",
	})
	return cmd
}

func pingOptions() (ping.Options, error) {
	interval, err := parseSeconds(viper.GetString(keyPingInterval))
	if err != nil {
		return ping.Options{}, fmt.Errorf("invalid interval: %w", err)
	}
	timeout, err := parseSeconds(viper.GetString(keyPingTimeout))
	if err != nil {
		return ping.Options{}, fmt.Errorf("invalid timeout: %w", err)
	}

	return ping.Options{
		Count:    viper.GetUint32(keyPingCount),
		Interval: interval,
		Port:     viper.GetUint16(keyPingPort),
		ForceTCP: viper.GetBool(keyPingTCP),
		Timeout:  timeout,
		Retry:    helper.RetryConfig{Count: 1, Delay: defaultResolveDelay},
	}, nil
}

func runPing(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()
	ctx = logger.IntoContext(ctx, logger.NewConsoleLogger())

	opts, err := pingOptions()
	if err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid ping options: %w", err)
	}

	host := args[0]
	p := newPrinter(cmd.OutOrStdout())
	report, err := ping.NewEngine().Run(ctx, host, opts, func(a ping.Attempt) {
		p.attempt(host, a)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	p.statistics(report)
	return nil
}
