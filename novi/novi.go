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

// Package novi implements NoviFlow experimenter actions for OpenFlow.
//
// NoviFlow switches accept vendor actions inside the standard
// experimenter action envelope. The first four bytes of the vendor
// payload are a fixed header (customer tag, reserved byte, 16-bit
// subtype); the subtype selects the concrete action codec. Bind builds
// an ActionSet holding the codec registry for one OpenFlow version;
// subtypes the set does not know are preserved losslessly as Unknown
// actions.
package novi

import (
	"encoding/binary"
	"errors"

	"github.com/novi-sdn/ofext/experimenter"

	"github.com/Kmotiko/gofc/ofprotocol/ofp13"
	"k8s.io/klog"
)

// ExperimenterID is the NoviFlow experimenter ID carried in the
// generic experimenter action header.
const ExperimenterID uint32 = 0xff000002

// Subtype codes for the supported NoviFlow actions.
const (
	SubtypePushTunnel    uint16 = 0x0002
	SubtypeHashFieldsSym uint16 = 0x0007
)

const (
	// customer and reserved are fixed on every serialized vendor
	// header. Parsers read them permissively.
	customer = 0xff
	reserved = 0x00

	vendorHeaderLen = 4
)

var (
	ErrTooShort           = errors.New("buffer too short for novi action")
	ErrWrongExperimenter  = errors.New("experimenter ID is not NoviFlow")
	ErrUnsupportedVersion = errors.New("unsupported OpenFlow version")
)

// Action is implemented by every NoviFlow vendor action. It includes
// ofp13.OfpAction, so any novi action can be appended to a gofc
// OfpInstructionActions and serialized into a flow mod directly.
type Action interface {
	ofp13.OfpAction

	// Subtype returns the 16-bit vendor subtype code.
	Subtype() uint16

	// Body returns the vendor portion of the action: the 4-byte
	// vendor header followed by the subtype-specific payload.
	Body() []byte
}

// ParseAction decodes a complete experimenter action starting at the
// OFPAT_EXPERIMENTER header and dispatches on the vendor subtype.
// Actions carrying a non-NoviFlow experimenter ID are rejected with
// ErrWrongExperimenter so the caller can hand them to another vendor
// subsystem.
func (s *ActionSet) ParseAction(packet []byte) (Action, error) {
	length, experimenterID, err := experimenter.ParseHeader(packet)
	if err != nil {
		return nil, err
	}

	if experimenterID != ExperimenterID {
		return nil, ErrWrongExperimenter
	}

	return s.ParseVendor(packet[experimenter.HeaderLen:length])
}

// ParseVendor decodes a vendor action starting at the vendor header,
// i.e. the opaque data region of the experimenter envelope. Subtypes
// without a registered codec are normal input and come back as
// *Unknown, never as an error.
func (s *ActionSet) ParseVendor(buf []byte) (Action, error) {
	if len(buf) < vendorHeaderLen {
		return nil, ErrTooShort
	}

	// customer and reserved are fixed values on the wire; they are
	// read here but not validated
	subtype := binary.BigEndian.Uint16(buf[2:4])
	payload := buf[vendorHeaderLen:]

	codec, ok := s.registry.Lookup(subtype)
	if !ok {
		klog.V(5).Infof("no codec for novi subtype 0x%04x, keeping %d bytes opaque", subtype, len(payload))
		return NewUnknown(subtype, payload), nil
	}

	return codec.Parse(payload)
}

// serializeAction frames body as a complete experimenter action with
// the NoviFlow experimenter ID. The length field covers the whole
// action including the 8-byte experimenter header.
func serializeAction(body []byte) []byte {
	packet := make([]byte, experimenter.HeaderLen+len(body))
	experimenter.PutHeader(packet, uint16(len(packet)), ExperimenterID)
	copy(packet[experimenter.HeaderLen:], body)
	return packet
}

func putVendorHeader(buf []byte, subtype uint16) {
	buf[0] = customer
	buf[1] = reserved
	binary.BigEndian.PutUint16(buf[2:4], subtype)
}

func align8(n int) int {
	return (n + 7) &^ 7
}
