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
	"sort"
)

// Codec is a parse/serialize pair for one vendor action subtype. Parse
// receives the payload after the 4-byte vendor header; serialization
// lives on the action values themselves. Name is the codec's identity
// for conflict detection since func values are not comparable.
type Codec struct {
	Subtype uint16
	Name    string
	Parse   func(payload []byte) (Action, error)
}

// Registry maps subtype codes to codecs for one protocol-version
// context. It is populated by Bind before any traffic is parsed and is
// read-only afterwards, so lookups need no locking.
type Registry struct {
	codecs map[uint16]Codec
}

func newRegistry() *Registry {
	return &Registry{codecs: map[uint16]Codec{}}
}

// Register binds a codec to its subtype. Binding the same subtype to a
// codec with a different name is a wiring bug and returns an error;
// re-registering the identical codec is a no-op.
func (r *Registry) Register(c Codec) error {
	existing, ok := r.codecs[c.Subtype]
	if ok {
		if existing.Name == c.Name {
			return nil
		}
		return fmt.Errorf("novi subtype 0x%04x is already registered to %q, cannot register %q",
			c.Subtype, existing.Name, c.Name)
	}

	r.codecs[c.Subtype] = c
	return nil
}

// Lookup returns the codec for a subtype. A missing subtype is not an
// error: unknown codes are expected network input and are handled by
// the Unknown fallback.
func (r *Registry) Lookup(subtype uint16) (Codec, bool) {
	c, ok := r.codecs[subtype]
	return c, ok
}

// Codecs returns the registered codecs sorted by subtype, for tooling
// that wants to introspect the available action types.
func (r *Registry) Codecs() []Codec {
	out := make([]Codec, 0, len(r.codecs))
	for _, c := range r.codecs {
		out = append(out, c)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Subtype < out[j].Subtype
	})
	return out
}
