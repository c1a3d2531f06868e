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
	"fmt"
	"net"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

const (
	// IANA-assigned VXLAN UDP port
	vxlanUDPPort = 4789

	encapTTL = 64
)

// EncapLayers returns the outer header stack the switch is being asked
// to push: Ethernet, IPv4, UDP to the VXLAN port and the VXLAN header
// with the action's VNI. Useful for controllers that already model
// packets as gopacket layers, e.g. to preview or log the resulting
// encapsulation.
func (a *PushVXLAN) EncapLayers() []gopacket.SerializableLayer {
	eth := &layers.Ethernet{
		SrcMAC:       a.EthSrc,
		DstMAC:       a.EthDst,
		EthernetType: layers.EthernetTypeIPv4,
	}

	ip := &layers.IPv4{
		Version:  4,
		TTL:      encapTTL,
		Protocol: layers.IPProtocolUDP,
		SrcIP:    a.IPv4Src,
		DstIP:    a.IPv4Dst,
	}

	udp := &layers.UDP{
		SrcPort: layers.UDPPort(a.UDPSrc),
		DstPort: vxlanUDPPort,
	}

	vxlan := &layers.VXLAN{
		ValidIDFlag: true,
		VNI:         a.VNI,
	}

	return []gopacket.SerializableLayer{eth, ip, udp, vxlan}
}

// PushVXLANFromLayers builds a tunnel-push action from a gopacket
// header template, taking the outer addresses, UDP source port and VNI
// from the respective layers.
func PushVXLANFromLayers(eth *layers.Ethernet, ip *layers.IPv4, udp *layers.UDP, vxlan *layers.VXLAN) (*PushVXLAN, error) {
	srcIP := ip.SrcIP.To4()
	if srcIP == nil {
		return nil, fmt.Errorf("outer source address %v is not IPv4", ip.SrcIP)
	}

	dstIP := ip.DstIP.To4()
	if dstIP == nil {
		return nil, fmt.Errorf("outer destination address %v is not IPv4", ip.DstIP)
	}

	return &PushVXLAN{
		EthSrc:  append(net.HardwareAddr(nil), eth.SrcMAC...),
		EthDst:  append(net.HardwareAddr(nil), eth.DstMAC...),
		IPv4Src: append(net.IP(nil), srcIP...),
		IPv4Dst: append(net.IP(nil), dstIP...),
		UDPSrc:  uint16(udp.SrcPort),
		VNI:     vxlan.VNI,
	}, nil
}
