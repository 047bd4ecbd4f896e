// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"bytes"
	"encoding/binary"

	"golang.org/x/net/ipv4"
)

const (
	// echoHeaderLen is the length of the ICMP echo header.
	echoHeaderLen = 8
	// echoPayloadLen is the length of the fixed echo payload.
	echoPayloadLen = 64
	// ipv4HeaderLen is the length of an IPv4 header without options.
	ipv4HeaderLen = 20
	// minReplyLen is the shortest datagram that can carry an echo reply header.
	minReplyLen = ipv4HeaderLen + echoHeaderLen
)

// echoPayload is the payload of every echo request.
var echoPayload = bytes.Repeat([]byte{'Q'}, echoPayloadLen)

// EchoHeader is the decoded ICMP header of an echo message.
type EchoHeader struct {
	Type     uint8
	Code     uint8
	Checksum uint16
	ID       uint16
	Seq      uint16
}

// IsReply reports whether the header belongs to an echo reply.
func (h EchoHeader) IsReply() bool {
	return h.Type == uint8(ipv4.ICMPTypeEchoReply) && h.Code == 0
}

// Checksum computes the Internet checksum (RFC 1071) of b.
// The sum is built over big-endian 16-bit words, an odd trailing byte is
// treated as the high byte of a final word.
//
// Some platforms (darwin) expect the checksum field in host order. This is
// not reproduced here: the value returned must be written in network order.
func Checksum(b []byte) uint16 {
	var sum uint32
	for i := 0; i+1 < len(b); i += 2 {
		sum += uint32(b[i])<<8 | uint32(b[i+1])
	}
	if len(b)%2 == 1 {
		sum += uint32(b[len(b)-1]) << 8
	}
	for sum>>16 != 0 {
		sum = sum&0xffff + sum>>16
	}
	return ^uint16(sum) // #nosec G115 // folded to 16 bits above
}

// BuildEchoRequest returns an ICMP echo request with the given identifier and
// sequence number, followed by the fixed 64 byte payload.
func BuildEchoRequest(id, seq uint16) []byte {
	b := make([]byte, echoHeaderLen+echoPayloadLen)
	b[0] = byte(ipv4.ICMPTypeEcho)
	b[1] = 0
	binary.BigEndian.PutUint16(b[4:6], id)
	binary.BigEndian.PutUint16(b[6:8], seq)
	copy(b[echoHeaderLen:], echoPayload)

	binary.BigEndian.PutUint16(b[2:4], Checksum(b))
	return b
}

// ParseEchoReply decodes the ICMP header of a raw IPv4 datagram.
// It assumes an IPv4 header without options and returns false if the buffer
// is too short to hold both headers.
//
// The reply checksum is not validated, corruption detection is left to the
// kernel and the link layer.
func ParseEchoReply(raw []byte) (EchoHeader, bool) {
	if len(raw) < minReplyLen {
		return EchoHeader{}, false
	}
	h := raw[ipv4HeaderLen:minReplyLen]
	return EchoHeader{
		Type:     h[0],
		Code:     h[1],
		Checksum: binary.BigEndian.Uint16(h[2:4]),
		ID:       binary.BigEndian.Uint16(h[4:6]),
		Seq:      binary.BigEndian.Uint16(h[6:8]),
	}, true
}
