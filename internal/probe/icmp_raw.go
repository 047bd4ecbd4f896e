// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

//go:build linux

package probe

import (
	"errors"
	"fmt"
	"net"
	"time"

	"golang.org/x/sys/unix"
)

var _ Conn = (*rawConn)(nil)

// rawConn is a raw IPv4 ICMP socket. Datagrams read from it include the IPv4 header.
type rawConn struct {
	fd int
}

// OpenICMP opens a raw ICMP socket. Any failure to create the socket wraps
// [ErrICMPUnavailable].
func OpenICMP() (Conn, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_RAW|unix.SOCK_CLOEXEC, unix.IPPROTO_ICMP)
	if err != nil {
		if errors.Is(err, unix.EPERM) || errors.Is(err, unix.EACCES) {
			return nil, fmt.Errorf("%w: %w", ErrICMPUnavailable, err)
		}
		return nil, fmt.Errorf("%w: failed to create raw socket: %w", ErrICMPUnavailable, err)
	}
	return &rawConn{fd: fd}, nil
}

func (c *rawConn) Send(b []byte, dst net.IP) error {
	ip4 := dst.To4()
	if ip4 == nil {
		return fmt.Errorf("not an IPv4 address: %s", dst)
	}
	sa := &unix.SockaddrInet4{}
	copy(sa.Addr[:], ip4)
	return unix.Sendto(c.fd, b, 0, sa)
}

func (c *rawConn) Wait(timeout time.Duration) (bool, error) {
	ms := int(timeout.Milliseconds())
	if ms <= 0 {
		ms = 1
	}
	fds := []unix.PollFd{{Fd: int32(c.fd), Events: unix.POLLIN}} // #nosec G115 // fds fit into int32
	n, err := unix.Poll(fds, ms)
	switch {
	case errors.Is(err, unix.EINTR):
		return false, nil
	case err != nil:
		return false, err
	}
	return n > 0 && fds[0].Revents&unix.POLLIN != 0, nil
}

func (c *rawConn) Recv(b []byte) (int, error) {
	n, _, err := unix.Recvfrom(c.fd, b, 0)
	return n, err
}

func (c *rawConn) Close() error {
	return unix.Close(c.fd)
}
