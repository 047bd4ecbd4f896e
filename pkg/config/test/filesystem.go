// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package test provides filesystem fixtures for the configuration loaders
package test

import (
	"io/fs"
	"testing/fstest"
)

// ConfigFS returns an in-memory filesystem holding a single configuration file
func ConfigFS(name, content string) fstest.MapFS {
	return fstest.MapFS{name: &fstest.MapFile{Data: []byte(content), Mode: 0o644}}
}

// CloseErrFS wraps a filesystem so that closing any opened file fails with Err
type CloseErrFS struct {
	fs.FS
	Err error
}

func (c CloseErrFS) Open(name string) (fs.File, error) {
	f, err := c.FS.Open(name)
	if err != nil {
		return nil, err
	}
	return closeErrFile{File: f, err: c.Err}, nil
}

type closeErrFile struct {
	fs.File
	err error
}

func (c closeErrFile) Close() error {
	_ = c.File.Close()
	return c.err
}
