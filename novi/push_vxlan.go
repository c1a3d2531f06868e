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
	"encoding/binary"
	"fmt"
	"net"

	"github.com/novi-sdn/ofext/experimenter"

	"github.com/Kmotiko/gofc/ofprotocol/ofp13"
)

const (
	tunnelTypeVXLAN   = 0x00
	tunnelDataPresent = 0x01

	// payload after the vendor header: tunnel type, flags, two MACs,
	// two IPv4 addresses, UDP source port and VNI
	pushVXLANPayloadLen = 28

	// whole action: experimenter header (8) + vendor header (4) + payload
	pushVXLANLen = 40
)

// PushVXLAN asks the switch to encapsulate matching traffic in a VXLAN
// tunnel with the given outer headers. The encoded action is always
// exactly 40 bytes; tunnel type and the tunnel-data-present flag are
// fixed constants on the wire, not caller state.
type PushVXLAN struct {
	EthSrc  net.HardwareAddr
	EthDst  net.HardwareAddr
	IPv4Src net.IP
	IPv4Dst net.IP
	UDPSrc  uint16
	VNI     uint32
}

// NewPushVXLAN builds a tunnel-push action from textual addresses, in
// the same style as gofc's oxm constructors.
func NewPushVXLAN(ethSrc, ethDst, ipv4Src, ipv4Dst string, udpSrc uint16, vni uint32) (*PushVXLAN, error) {
	srcMAC, err := net.ParseMAC(ethSrc)
	if err != nil {
		return nil, fmt.Errorf("invalid eth_src %q: %v", ethSrc, err)
	}

	dstMAC, err := net.ParseMAC(ethDst)
	if err != nil {
		return nil, fmt.Errorf("invalid eth_dst %q: %v", ethDst, err)
	}

	srcIP := net.ParseIP(ipv4Src)
	if srcIP == nil || srcIP.To4() == nil {
		return nil, fmt.Errorf("invalid IPv4 address %q", ipv4Src)
	}

	dstIP := net.ParseIP(ipv4Dst)
	if dstIP == nil || dstIP.To4() == nil {
		return nil, fmt.Errorf("invalid IPv4 address %q", ipv4Dst)
	}

	return &PushVXLAN{
		EthSrc:  srcMAC,
		EthDst:  dstMAC,
		IPv4Src: srcIP,
		IPv4Dst: dstIP,
		UDPSrc:  udpSrc,
		VNI:     vni,
	}, nil
}

func parsePushVXLAN(payload []byte) (Action, error) {
	if len(payload) < pushVXLANPayloadLen {
		return nil, ErrTooShort
	}

	// payload[0] is the tunnel type and payload[1] the flags; both are
	// fixed constants read permissively
	return &PushVXLAN{
		EthSrc:  append(net.HardwareAddr(nil), payload[2:8]...),
		EthDst:  append(net.HardwareAddr(nil), payload[8:14]...),
		IPv4Src: net.IPv4(payload[14], payload[15], payload[16], payload[17]),
		IPv4Dst: net.IPv4(payload[18], payload[19], payload[20], payload[21]),
		UDPSrc:  binary.BigEndian.Uint16(payload[22:24]),
		VNI:     binary.BigEndian.Uint32(payload[24:28]),
	}, nil
}

func (a *PushVXLAN) Subtype() uint16 {
	return SubtypePushTunnel
}

func (a *PushVXLAN) Body() []byte {
	body := make([]byte, vendorHeaderLen+pushVXLANPayloadLen)
	putVendorHeader(body, SubtypePushTunnel)
	body[4] = tunnelTypeVXLAN
	body[5] = tunnelDataPresent
	copy(body[6:12], a.EthSrc)
	copy(body[12:18], a.EthDst)
	copy(body[18:22], a.IPv4Src.To4())
	copy(body[22:26], a.IPv4Dst.To4())
	binary.BigEndian.PutUint16(body[26:28], a.UDPSrc)
	binary.BigEndian.PutUint32(body[28:32], a.VNI)
	return body
}

func (a *PushVXLAN) Serialize() []byte {
	return serializeAction(a.Body())
}

// Parse implements ofp13.OfpAction; malformed input leaves the
// receiver unchanged. ActionSet.ParseAction is the checked path.
func (a *PushVXLAN) Parse(packet []byte) {
	if len(packet) < experimenter.HeaderLen+vendorHeaderLen {
		return
	}

	parsed, err := parsePushVXLAN(packet[experimenter.HeaderLen+vendorHeaderLen:])
	if err != nil {
		return
	}
	*a = *parsed.(*PushVXLAN)
}

func (a *PushVXLAN) Size() int {
	return pushVXLANLen
}

func (a *PushVXLAN) OfpActionType() uint16 {
	return ofp13.OFPAT_EXPERIMENTER
}
