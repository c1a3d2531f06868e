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

	"github.com/novi-sdn/ofext/experimenter"

	"github.com/Kmotiko/gofc/ofprotocol/ofp13"
)

// HashFieldsSym asks the switch to hash the given protocol fields
// symmetrically, so both directions of a flow hash to the same value.
// Fields is an ordered sequence of 32-bit field identifiers; the order
// is the processing order, not just a set.
type HashFieldsSym struct {
	Fields []uint32
}

// NewHashFieldsSym copies fields into a new action. The wire format
// carries the field count in a single byte, so more than 255 fields is
// an error.
func NewHashFieldsSym(fields []uint32) (*HashFieldsSym, error) {
	if len(fields) > 0xff {
		return nil, fmt.Errorf("too many hash fields: %d, the wire format allows 255", len(fields))
	}

	return &HashFieldsSym{
		Fields: append([]uint32(nil), fields...),
	}, nil
}

func parseHashFieldsSym(payload []byte) (Action, error) {
	if len(payload) < 1 {
		return nil, ErrTooShort
	}

	// count comes off the wire and must not drive reads past the buffer
	count := int(payload[0])
	if len(payload) < 1+4*count {
		return nil, ErrTooShort
	}

	fields := make([]uint32, count)
	for i := range fields {
		fields[i] = binary.BigEndian.Uint32(payload[1+4*i:])
	}

	return &HashFieldsSym{Fields: fields}, nil
}

func (a *HashFieldsSym) Subtype() uint16 {
	return SubtypeHashFieldsSym
}

// unpaddedLen is the action length before padding: experimenter header
// (8), vendor header (4), count byte and the fields.
func (a *HashFieldsSym) unpaddedLen() int {
	return experimenter.HeaderLen + vendorHeaderLen + 1 + 4*len(a.Fields)
}

func (a *HashFieldsSym) Body() []byte {
	unpadded := a.unpaddedLen()
	pad := align8(unpadded) - unpadded

	body := make([]byte, vendorHeaderLen+1+4*len(a.Fields)+pad)
	putVendorHeader(body, SubtypeHashFieldsSym)
	body[4] = byte(len(a.Fields))
	for i, f := range a.Fields {
		binary.BigEndian.PutUint32(body[5+4*i:], f)
	}
	// pad bytes stay zero
	return body
}

func (a *HashFieldsSym) Serialize() []byte {
	return serializeAction(a.Body())
}

// Parse implements ofp13.OfpAction; malformed input leaves the
// receiver unchanged. ActionSet.ParseAction is the checked path.
func (a *HashFieldsSym) Parse(packet []byte) {
	if len(packet) < experimenter.HeaderLen+vendorHeaderLen {
		return
	}

	parsed, err := parseHashFieldsSym(packet[experimenter.HeaderLen+vendorHeaderLen:])
	if err != nil {
		return
	}
	*a = *parsed.(*HashFieldsSym)
}

// Size is recomputed from the field count on every call so a stale
// padding length can never be serialized.
func (a *HashFieldsSym) Size() int {
	return align8(a.unpaddedLen())
}

func (a *HashFieldsSym) OfpActionType() uint16 {
	return ofp13.OFPAT_EXPERIMENTER
}
