// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// bindFlags binds the flags of the command to the given viper keys,
// so a value may also come from the config file or the environment
func bindFlags(cmd *cobra.Command, keys map[string]string) {
	for key, flag := range keys {
		cobra.CheckErr(viper.BindPFlag(key, cmd.Flags().Lookup(flag)))
	}
}
