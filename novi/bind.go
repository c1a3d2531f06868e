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
	"sync"

	"k8s.io/klog"
)

// OpenFlow wire versions the vendor payload layout is defined for.
const (
	OFP13Version uint8 = 0x04
	OFP14Version uint8 = 0x05
)

// ActionSet binds the NoviFlow codecs to one OpenFlow version context.
// Each set owns an independent registry: a subtype registered on one
// set means nothing on another, since a subtype code may differ in
// meaning between protocol versions.
type ActionSet struct {
	version  uint8
	registry *Registry
}

func builtinCodecs() []Codec {
	return []Codec{
		{Subtype: SubtypePushTunnel, Name: "push_vxlan", Parse: parsePushVXLAN},
		{Subtype: SubtypeHashFieldsSym, Name: "hash_fields_sym", Parse: parseHashFieldsSym},
	}
}

// Bind builds a fresh ActionSet for the given OpenFlow version and
// registers the built-in codecs. Every call returns an independent
// set, so binding is idempotent: rebinding the same version never
// mutates a previously returned registry.
func Bind(version uint8) (*ActionSet, error) {
	if version != OFP13Version && version != OFP14Version {
		return nil, ErrUnsupportedVersion
	}

	registry := newRegistry()
	for _, c := range builtinCodecs() {
		if err := registry.Register(c); err != nil {
			// a conflict inside the built-in table is a programming
			// error, not a runtime condition
			panic(fmt.Sprintf("novi: built-in codec table is broken: %v", err))
		}
		klog.V(5).Infof("registered novi action %q under subtype 0x%04x for OF version 0x%02x",
			c.Name, c.Subtype, version)
	}

	return &ActionSet{
		version:  version,
		registry: registry,
	}, nil
}

func (s *ActionSet) Version() uint8 {
	return s.version
}

// Register adds a caller-supplied codec to this set. Conflicting with
// an already registered subtype aborts with an error rather than
// silently picking one codec.
func (s *ActionSet) Register(c Codec) error {
	return s.registry.Register(c)
}

// Codecs returns the registered codecs sorted by subtype.
func (s *ActionSet) Codecs() []Codec {
	return s.registry.Codecs()
}

var (
	defaultOnce sync.Once
	defaultSet  *ActionSet
)

// Default returns the process-wide OpenFlow 1.3 action set, bound
// lazily on first use. The sync.Once guard makes concurrent first
// calls safe; after binding the registry is read-only and lookups need
// no further coordination.
func Default() *ActionSet {
	defaultOnce.Do(func() {
		set, err := Bind(OFP13Version)
		if err != nil {
			panic(fmt.Sprintf("novi: binding default action set: %v", err))
		}
		defaultSet = set
	})
	return defaultSet
}
