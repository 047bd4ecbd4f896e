// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package runtime

import (
	"iter"
	"maps"
	"slices"
	"sync"

	"github.com/telekom/hopcheck/pkg/checks"
)

// Checks is the set of registered checks. There is at most one check per name.
// The zero value is ready to use.
type Checks struct {
	mu     sync.RWMutex
	checks map[string]checks.Check
}

// Add registers a check, replacing a check with the same name.
func (c *Checks) Add(check checks.Check) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.checks == nil {
		c.checks = make(map[string]checks.Check)
	}
	c.checks[check.Name()] = check
}

// Delete removes the check with the name of the given check.
func (c *Checks) Delete(check checks.Check) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.checks, check.Name())
}

// Get returns the check registered under name
func (c *Checks) Get(name string) (checks.Check, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	check, ok := c.checks[name]
	return check, ok
}

// Len returns the number of registered checks
func (c *Checks) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.checks)
}

// Iter returns a snapshot of the registered checks ordered by name.
// The set may be modified while iterating.
func (c *Checks) Iter() iter.Seq[checks.Check] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := slices.Sorted(maps.Keys(c.checks))
	snapshot := make([]checks.Check, 0, len(names))
	for _, name := range names {
		snapshot = append(snapshot, c.checks[name])
	}
	return slices.Values(snapshot)
}
