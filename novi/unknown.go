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

	"github.com/novi-sdn/ofext/experimenter"

	"github.com/Kmotiko/gofc/ofprotocol/ofp13"
)

// Unknown preserves a vendor action whose subtype has no registered
// codec. Data holds the payload after the vendor header verbatim, and
// serializing reproduces the original bytes without reinterpretation,
// so unrecognized actions survive a parse/serialize round trip intact.
type Unknown struct {
	subtype uint16
	Data    []byte
}

// NewUnknown copies data so the action does not alias the parse buffer.
func NewUnknown(subtype uint16, data []byte) *Unknown {
	return &Unknown{
		subtype: subtype,
		Data:    append([]byte(nil), data...),
	}
}

func (a *Unknown) Subtype() uint16 {
	return a.subtype
}

func (a *Unknown) Body() []byte {
	body := make([]byte, vendorHeaderLen+len(a.Data))
	putVendorHeader(body, a.subtype)
	copy(body[vendorHeaderLen:], a.Data)
	return body
}

func (a *Unknown) Serialize() []byte {
	return serializeAction(a.Body())
}

// Parse implements ofp13.OfpAction; malformed input leaves the
// receiver unchanged. ActionSet.ParseAction is the checked path.
func (a *Unknown) Parse(packet []byte) {
	length, _, err := experimenter.ParseHeader(packet)
	if err != nil {
		return
	}

	buf := packet[experimenter.HeaderLen:length]
	if len(buf) < vendorHeaderLen {
		return
	}

	a.subtype = binary.BigEndian.Uint16(buf[2:4])
	a.Data = append([]byte(nil), buf[vendorHeaderLen:]...)
}

func (a *Unknown) Size() int {
	return experimenter.HeaderLen + vendorHeaderLen + len(a.Data)
}

func (a *Unknown) OfpActionType() uint16 {
	return ofp13.OFPAT_EXPERIMENTER
}
