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

// Package experimenter provides the generic OpenFlow experimenter
// action envelope: the OFPAT_EXPERIMENTER action header plus an
// experimenter ID and a vendor-opaque payload. Vendor-specific
// subsystems wrap this envelope with their own payload codecs.
package experimenter

import (
	"encoding/binary"
	"errors"

	"github.com/Kmotiko/gofc/ofprotocol/ofp13"
)

// HeaderLen is the size of the experimenter action header on the wire:
// type (2), length (2) and experimenter ID (4).
const HeaderLen = 8

var (
	ErrTooShort        = errors.New("buffer too short for experimenter action")
	ErrNotExperimenter = errors.New("action type is not OFPAT_EXPERIMENTER")
)

// Action is a generic experimenter action with an opaque payload.
// It implements the ofp13.OfpAction interface so it can be appended to
// gofc instruction action lists as-is.
//
// Serialize returns the full encoding as an owned byte slice and never
// writes into a caller-supplied buffer. No padding is added: callers own
// the 8-byte alignment of Data required by the OpenFlow spec, which keeps
// wire payloads byte-exact across a parse/serialize round trip.
type Action struct {
	Experimenter uint32
	Data         []byte
}

func (a *Action) Serialize() []byte {
	packet := make([]byte, a.Size())
	PutHeader(packet, uint16(a.Size()), a.Experimenter)
	copy(packet[HeaderLen:], a.Data)
	return packet
}

// Parse implements ofp13.OfpAction, which has no error return. Use
// Unmarshal for the checked decode path; malformed input leaves the
// receiver unchanged here.
func (a *Action) Parse(packet []byte) {
	if parsed, err := Unmarshal(packet); err == nil {
		*a = *parsed
	}
}

func (a *Action) Size() int {
	return HeaderLen + len(a.Data)
}

func (a *Action) OfpActionType() uint16 {
	return ofp13.OFPAT_EXPERIMENTER
}

// Unmarshal decodes a full experimenter action from packet. The payload
// is copied, so the returned action does not alias packet.
func Unmarshal(packet []byte) (*Action, error) {
	length, experimenter, err := ParseHeader(packet)
	if err != nil {
		return nil, err
	}

	data := make([]byte, int(length)-HeaderLen)
	copy(data, packet[HeaderLen:length])

	return &Action{
		Experimenter: experimenter,
		Data:         data,
	}, nil
}

// PutHeader writes the experimenter action header into buf, which must
// hold at least HeaderLen bytes.
func PutHeader(buf []byte, length uint16, experimenter uint32) {
	binary.BigEndian.PutUint16(buf[0:2], ofp13.OFPAT_EXPERIMENTER)
	binary.BigEndian.PutUint16(buf[2:4], length)
	binary.BigEndian.PutUint32(buf[4:8], experimenter)
}

// ParseHeader reads and validates the experimenter action header. The
// declared length is checked against the buffer so callers can slice
// packet[HeaderLen:length] safely.
func ParseHeader(packet []byte) (length uint16, experimenter uint32, err error) {
	if len(packet) < HeaderLen {
		return 0, 0, ErrTooShort
	}

	if t := binary.BigEndian.Uint16(packet[0:2]); t != ofp13.OFPAT_EXPERIMENTER {
		return 0, 0, ErrNotExperimenter
	}

	length = binary.BigEndian.Uint16(packet[2:4])
	if int(length) < HeaderLen || int(length) > len(packet) {
		return 0, 0, ErrTooShort
	}

	experimenter = binary.BigEndian.Uint32(packet[4:8])
	return length, experimenter, nil
}
