// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package main

//go:generate go run gen-docs.go gen-docs --path ../../docs

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
	hopcheckcmd "github.com/telekom/hopcheck/cmd"
)

const (
	formatMarkdown = "markdown"
	formatMan      = "man"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gen-docs",
		Short: "Generates docs for hopcheck",
	}
	rootCmd.AddCommand(NewCmdGenDocs())

	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewCmdGenDocs creates a new gen-docs command
func NewCmdGenDocs() *cobra.Command {
	var (
		docPath string
		format  string
	)

	cmd := &cobra.Command{
		Use:   "gen-docs",
		Short: "Generate the command documentation",
		Long:  `Generate the documentation of the hopcheck commands and their flags as markdown files or man pages`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return genDocs(hopcheckcmd.BuildCmd(""), docPath, format)
		},
	}

	cmd.PersistentFlags().StringVar(&docPath, "path", "docs", "directory path where the files will be created")
	cmd.PersistentFlags().StringVar(&format, "format", formatMarkdown, "output format, one of markdown or man")

	return cmd
}

// genDocs writes the documentation tree of c into path
func genDocs(c *cobra.Command, path, format string) error {
	c.DisableAutoGenTag = false
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("failed to create docs directory: %w", err)
	}

	var err error
	switch format {
	case formatMarkdown:
		err = doc.GenMarkdownTree(c, path)
	case formatMan:
		err = doc.GenManTree(c, &doc.GenManHeader{Title: "HOPCHECK", Section: "1"}, path)
	default:
		return fmt.Errorf("unknown docs format %q", format)
	}
	if err != nil {
		return fmt.Errorf("failed to generate docs: %w", err)
	}
	return nil
}
