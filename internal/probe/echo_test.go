// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"encoding/binary"
	"net"
	"testing"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
)

func TestChecksum_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "header only", data: make([]byte, 8)},
		{name: "even length", data: []byte{8, 0, 0, 0, 0x12, 0x34, 0x00, 0x01, 'a', 'b'}},
		{name: "odd length", data: []byte{8, 0, 0, 0, 0xff, 0xff, 0xff, 0xff, 0x01}},
		{name: "all ones", data: []byte{0xff, 0xff, 0, 0, 0xff, 0xff, 0xff}},
		{name: "echo payload", data: append(make([]byte, 8), echoPayload...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkt := append([]byte(nil), tt.data...)
			binary.BigEndian.PutUint16(pkt[2:4], 0)

			sum := Checksum(pkt)
			binary.BigEndian.PutUint16(pkt[2:4], sum)

			assert.Equal(t, uint16(0), Checksum(pkt), "re-summing the packet must yield zero")
		})
	}
}

func TestChecksum_Known(t *testing.T) {
	// Example from RFC 1071 section 3
	data := []byte{0x00, 0x01, 0xf2, 0x03, 0xf4, 0xf5, 0xf6, 0xf7}
	assert.Equal(t, ^uint16(0xddf2), Checksum(data))
	assert.Equal(t, uint16(0xffff), Checksum(nil))
}

func TestBuildEchoRequest(t *testing.T) {
	pkt := BuildEchoRequest(0xbeef, 7)

	require.Len(t, pkt, echoHeaderLen+echoPayloadLen)
	assert.Equal(t, byte(8), pkt[0], "type")
	assert.Equal(t, byte(0), pkt[1], "code")
	assert.Equal(t, uint16(0xbeef), binary.BigEndian.Uint16(pkt[4:6]), "identifier")
	assert.Equal(t, uint16(7), binary.BigEndian.Uint16(pkt[6:8]), "sequence")
	assert.Equal(t, echoPayload, pkt[echoHeaderLen:])
	assert.Equal(t, uint16(0), Checksum(pkt))
}

func TestBuildEchoRequest_MatchesXNetICMP(t *testing.T) {
	for _, seq := range []uint16{0, 1, 2, 0xffff} {
		msg := icmp.Message{
			Type: ipv4.ICMPTypeEcho,
			Code: 0,
			Body: &icmp.Echo{ID: 0x1234, Seq: int(seq), Data: echoPayload},
		}
		want, err := msg.Marshal(nil)
		require.NoError(t, err)

		assert.Equal(t, want, BuildEchoRequest(0x1234, seq), "seq %d", seq)
	}
}

func TestBuildEchoRequest_MatchesGopacket(t *testing.T) {
	l := &layers.ICMPv4{
		TypeCode: layers.CreateICMPv4TypeCode(layers.ICMPv4TypeEchoRequest, 0),
		Id:       0x4242,
		Seq:      3,
	}
	buf := gopacket.NewSerializeBuffer()
	err := gopacket.SerializeLayers(buf, gopacket.SerializeOptions{ComputeChecksums: true}, l, gopacket.Payload(echoPayload))
	require.NoError(t, err)

	assert.Equal(t, buf.Bytes(), BuildEchoRequest(0x4242, 3))
}

func TestParseEchoReply(t *testing.T) {
	reply := func(typ ipv4.ICMPType, id, seq int) []byte {
		t.Helper()
		body, err := (&icmp.Message{Type: typ, Body: &icmp.Echo{ID: id, Seq: seq, Data: echoPayload}}).Marshal(nil)
		require.NoError(t, err)
		return append(ipHeader(t, len(body)), body...)
	}

	tests := []struct {
		name   string
		raw    []byte
		want   EchoHeader
		wantOk bool
	}{
		{
			name:   "echo reply",
			raw:    reply(ipv4.ICMPTypeEchoReply, 0x0102, 9),
			want:   EchoHeader{Type: 0, Code: 0, ID: 0x0102, Seq: 9},
			wantOk: true,
		},
		{
			name:   "echo request",
			raw:    reply(ipv4.ICMPTypeEcho, 0x0102, 9),
			want:   EchoHeader{Type: 8, Code: 0, ID: 0x0102, Seq: 9},
			wantOk: true,
		},
		{
			name:   "exactly 28 bytes",
			raw:    reply(ipv4.ICMPTypeEchoReply, 1, 1)[:minReplyLen],
			want:   EchoHeader{Type: 0, ID: 1, Seq: 1},
			wantOk: true,
		},
		{
			name:   "too short",
			raw:    reply(ipv4.ICMPTypeEchoReply, 1, 1)[:minReplyLen-1],
			wantOk: false,
		},
		{
			name:   "empty",
			raw:    nil,
			wantOk: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseEchoReply(tt.raw)
			require.Equal(t, tt.wantOk, ok)
			if !ok {
				return
			}
			// the checksum is carried but not validated
			got.Checksum = 0
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Type == 0, got.IsReply())
		})
	}
}

// ipHeader returns a 20 byte IPv4 header for an ICMP payload of the given length.
func ipHeader(t testing.TB, payloadLen int) []byte {
	t.Helper()
	h := &ipv4.Header{
		Version:  ipv4.Version,
		Len:      ipv4.HeaderLen,
		TotalLen: ipv4.HeaderLen + payloadLen,
		TTL:      64,
		Protocol: 1,
		Src:      net.IPv4(10, 0, 0, 1),
		Dst:      net.IPv4(10, 0, 0, 2),
	}
	b, err := h.Marshal()
	require.NoError(t, err)
	require.Len(t, b, ipv4HeaderLen)
	return b
}
