/*
Licensed to the Apache Software Foundation (ASF) under one
or more contributor license agreements.  See the NOTICE file
distributed with this work for additional information
regarding copyright ownership.  The ASF licenses this file
to you under the Apache License, Version 2.0 (the
"License"); you may not use this file except in compliance
with the License.  You may obtain a copy of the License at

  http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing,
software distributed under the License is distributed on an
"AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
KIND, either express or implied.  See the License for the
specific language governing permissions and limitations
under the License.
*/

package novi

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func Test_PushVXLAN_Serialize(t *testing.T) {
	action, err := NewPushVXLAN("aa:bb:cc:dd:ee:ff", "11:22:33:44:55:66",
		"10.0.0.1", "10.0.0.2", 4789, 100)
	if err != nil {
		t.Fatalf("error building push vxlan action: %v", err)
	}

	packet := action.Serialize()

	expected := []byte{
		0xff, 0xff, // OFPAT_EXPERIMENTER
		0x00, 0x28, // length 40
		0xff, 0x00, 0x00, 0x02, // NoviFlow experimenter ID
		0xff, 0x00, // customer, reserved
		0x00, 0x02, // subtype push tunnel
		0x00, 0x01, // tunnel type VXLAN, tunnel data present
		0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff, // eth_src
		0x11, 0x22, 0x33, 0x44, 0x55, 0x66, // eth_dst
		0x0a, 0x00, 0x00, 0x01, // ipv4_src
		0x0a, 0x00, 0x00, 0x02, // ipv4_dst
		0x12, 0xb5, // udp_src 4789
		0x00, 0x00, 0x00, 0x64, // vni 100
	}

	if !bytes.Equal(packet, expected) {
		t.Logf("actual packet:   %x", packet)
		t.Logf("expected packet: %x", expected)
		t.Errorf("serialized push vxlan action did not match")
	}

	if action.Size() != 40 {
		t.Errorf("expected size 40, got %d", action.Size())
	}
}

func Test_PushVXLAN_RoundTrip(t *testing.T) {
	action, err := NewPushVXLAN("aa:bb:cc:dd:ee:ff", "11:22:33:44:55:66",
		"10.0.0.1", "10.0.0.2", 4789, 100)
	if err != nil {
		t.Fatalf("error building push vxlan action: %v", err)
	}

	set := Default()
	parsed, err := set.ParseAction(action.Serialize())
	if err != nil {
		t.Fatalf("error parsing serialized action: %v", err)
	}

	parsedPush, ok := parsed.(*PushVXLAN)
	if !ok {
		t.Fatalf("expected *PushVXLAN, got %T", parsed)
	}

	if parsedPush.EthSrc.String() != action.EthSrc.String() {
		t.Errorf("eth_src mismatch: %s != %s", parsedPush.EthSrc, action.EthSrc)
	}
	if parsedPush.EthDst.String() != action.EthDst.String() {
		t.Errorf("eth_dst mismatch: %s != %s", parsedPush.EthDst, action.EthDst)
	}
	if parsedPush.IPv4Src.String() != action.IPv4Src.String() {
		t.Errorf("ipv4_src mismatch: %s != %s", parsedPush.IPv4Src, action.IPv4Src)
	}
	if parsedPush.IPv4Dst.String() != action.IPv4Dst.String() {
		t.Errorf("ipv4_dst mismatch: %s != %s", parsedPush.IPv4Dst, action.IPv4Dst)
	}
	if parsedPush.UDPSrc != action.UDPSrc {
		t.Errorf("udp_src mismatch: %d != %d", parsedPush.UDPSrc, action.UDPSrc)
	}
	if parsedPush.VNI != action.VNI {
		t.Errorf("vni mismatch: %d != %d", parsedPush.VNI, action.VNI)
	}
}

func Test_NewPushVXLAN_InvalidAddresses(t *testing.T) {
	tests := []struct {
		name    string
		ethSrc  string
		ipv4Src string
	}{
		{
			name:    "bad mac",
			ethSrc:  "not-a-mac",
			ipv4Src: "10.0.0.1",
		},
		{
			name:    "bad ip",
			ethSrc:  "aa:bb:cc:dd:ee:ff",
			ipv4Src: "300.0.0.1",
		},
		{
			name:    "ipv6 address",
			ethSrc:  "aa:bb:cc:dd:ee:ff",
			ipv4Src: "2001:db8::1",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewPushVXLAN(test.ethSrc, "11:22:33:44:55:66",
				test.ipv4Src, "10.0.0.2", 4789, 100)
			if err == nil {
				t.Errorf("expected constructor error, got nil")
			}
		})
	}
}

func Test_PushVXLAN_ShortPayload(t *testing.T) {
	buf := make([]byte, vendorHeaderLen+10)
	putVendorHeader(buf, SubtypePushTunnel)

	_, err := Default().ParseVendor(buf)
	if err != ErrTooShort {
		t.Errorf("expected ErrTooShort, got %v", err)
	}
}

func Test_HashFieldsSym_Padding(t *testing.T) {
	tests := []struct {
		name   string
		fields []uint32
	}{
		{name: "no fields", fields: nil},
		{name: "one field", fields: []uint32{7}},
		{name: "two fields", fields: []uint32{1, 2}},
		{name: "three fields", fields: []uint32{1, 2, 3}},
		{name: "five fields", fields: []uint32{1, 2, 3, 4, 5}},
		{name: "eight fields", fields: []uint32{1, 2, 3, 4, 5, 6, 7, 8}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			action, err := NewHashFieldsSym(test.fields)
			if err != nil {
				t.Fatalf("error building hash fields action: %v", err)
			}

			packet := action.Serialize()

			// the padding must fall out of the length formula, not a
			// hardcoded table
			unpadded := 13 + 4*len(test.fields)
			wantPad := (unpadded+7)/8*8 - unpadded
			wantLen := unpadded + wantPad

			if len(packet) != wantLen {
				t.Errorf("expected %d byte action, got %d", wantLen, len(packet))
			}
			if len(packet)%8 != 0 {
				t.Errorf("action length %d is not a multiple of 8", len(packet))
			}
			if got := binary.BigEndian.Uint16(packet[2:4]); int(got) != wantLen {
				t.Errorf("length field is %d, expected %d", got, wantLen)
			}
			if packet[12] != byte(len(test.fields)) {
				t.Errorf("count byte is %d, expected %d", packet[12], len(test.fields))
			}
			for i, b := range packet[len(packet)-wantPad:] {
				if b != 0 {
					t.Errorf("pad byte %d is 0x%02x, expected zero", i, b)
				}
			}
			if action.Size() != wantLen {
				t.Errorf("Size() is %d, expected %d", action.Size(), wantLen)
			}
		})
	}
}

func Test_HashFieldsSym_RoundTrip(t *testing.T) {
	action, err := NewHashFieldsSym([]uint32{1, 2, 3})
	if err != nil {
		t.Fatalf("error building hash fields action: %v", err)
	}

	parsed, err := Default().ParseAction(action.Serialize())
	if err != nil {
		t.Fatalf("error parsing serialized action: %v", err)
	}

	parsedHash, ok := parsed.(*HashFieldsSym)
	if !ok {
		t.Fatalf("expected *HashFieldsSym, got %T", parsed)
	}

	if len(parsedHash.Fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(parsedHash.Fields))
	}
	for i, want := range []uint32{1, 2, 3} {
		if parsedHash.Fields[i] != want {
			t.Errorf("field %d is %d, expected %d", i, parsedHash.Fields[i], want)
		}
	}
}

func Test_HashFieldsSym_CountOverrun(t *testing.T) {
	// count claims 10 fields but only two fit in the payload
	buf := make([]byte, vendorHeaderLen+1+8)
	putVendorHeader(buf, SubtypeHashFieldsSym)
	buf[4] = 10

	_, err := Default().ParseVendor(buf)
	if err != ErrTooShort {
		t.Errorf("expected ErrTooShort, got %v", err)
	}
}

func Test_HashFieldsSym_TooManyFields(t *testing.T) {
	fields := make([]uint32, 256)
	if _, err := NewHashFieldsSym(fields); err == nil {
		t.Errorf("expected error for 256 fields, got nil")
	}
}

func Test_Unknown_RoundTrip(t *testing.T) {
	// a full experimenter action with an unregistered subtype
	original := []byte{
		0xff, 0xff, // OFPAT_EXPERIMENTER
		0x00, 0x10, // length 16
		0xff, 0x00, 0x00, 0x02, // NoviFlow experimenter ID
		0xff, 0x00, // customer, reserved
		0x77, 0x77, // unregistered subtype
		0x01, 0x02, 0x03, 0x04, // opaque payload
	}

	parsed, err := Default().ParseAction(original)
	if err != nil {
		t.Fatalf("error parsing unknown action: %v", err)
	}

	unknown, ok := parsed.(*Unknown)
	if !ok {
		t.Fatalf("expected *Unknown, got %T", parsed)
	}
	if unknown.Subtype() != 0x7777 {
		t.Errorf("subtype is 0x%04x, expected 0x7777", unknown.Subtype())
	}
	if !bytes.Equal(unknown.Data, []byte{0x01, 0x02, 0x03, 0x04}) {
		t.Errorf("payload is %x, expected 01020304", unknown.Data)
	}

	packet := unknown.Serialize()
	if !bytes.Equal(packet, original) {
		t.Logf("actual packet:   %x", packet)
		t.Logf("expected packet: %x", original)
		t.Errorf("unknown action did not round trip byte-for-byte")
	}
}

func Test_Unknown_EmptyPayload(t *testing.T) {
	// vendor header only, zero remaining bytes
	buf := make([]byte, vendorHeaderLen)
	putVendorHeader(buf, 0x7777)

	parsed, err := Default().ParseVendor(buf)
	if err != nil {
		t.Fatalf("error parsing vendor header: %v", err)
	}

	unknown, ok := parsed.(*Unknown)
	if !ok {
		t.Fatalf("expected *Unknown, got %T", parsed)
	}
	if len(unknown.Data) != 0 {
		t.Errorf("expected empty payload, got %d bytes", len(unknown.Data))
	}
}

func Test_ParseVendor_ShortHeader(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
	}{
		{name: "empty buffer", buf: nil},
		{name: "one byte", buf: []byte{0xff}},
		{name: "three bytes", buf: []byte{0xff, 0x00, 0x00}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Default().ParseVendor(test.buf)
			if err != ErrTooShort {
				t.Errorf("expected ErrTooShort, got %v", err)
			}
		})
	}
}

func Test_ParseAction_WrongExperimenter(t *testing.T) {
	packet := []byte{
		0xff, 0xff, // OFPAT_EXPERIMENTER
		0x00, 0x10, // length 16
		0x00, 0x00, 0x23, 0x20, // Nicira, not NoviFlow
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
	}

	_, err := Default().ParseAction(packet)
	if err != ErrWrongExperimenter {
		t.Errorf("expected ErrWrongExperimenter, got %v", err)
	}
}
