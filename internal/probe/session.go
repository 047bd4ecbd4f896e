// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import "os"

// Session scopes ICMP reply matching for one ping run.
// Replies carrying a different identifier belong to other probers sharing the
// raw socket namespace and are discarded.
type Session struct {
	id uint16
}

// NewSession returns a session whose identifier is derived from the process id.
func NewSession() Session {
	return Session{id: uint16(os.Getpid() & 0xffff)} // #nosec G115 // masked to 16 bits
}

// SessionWithID returns a session using the given identifier.
func SessionWithID(id uint16) Session {
	return Session{id: id}
}

// ID returns the echo identifier of the session.
func (s Session) ID() uint16 {
	return s.id
}
