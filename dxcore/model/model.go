/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package model defines the contracts that dxbump domain values implement.
//
// Every value that crosses a package boundary in dxbump (a parsed commit, a
// semantic version, a bump decision, a release plan) implements Model. The
// contract gives each value self-validation, a JSON and YAML round trip,
// safe and full string renderings, a canonical type name, and zero-value
// detection. The generic helpers in this package (ValidateAll, ToJSON,
// ToYAML, FromJSON, FromYAML) accept any Checked value and are what the
// changelog writer and the CLI use to check and emit those values.
//
// Model types are immutable value types. Methods MUST NOT mutate their
// receiver unless documented otherwise; concurrent reads are safe.
package model

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Model is the root interface combining all contracts required for dxbump
// domain types.
//
// Implementations satisfy Validatable (invariant checks), Serializable (JSON
// and YAML encoding), Loggable (String and Redacted), Identifiable (TypeName)
// and ZeroCheckable (IsZero). A compile-time assertion documents the intent:
//
//	var _ model.Model = (*Commit)(nil)
type Model interface {
	Validatable
	Serializable
	Loggable
	Identifiable
	ZeroCheckable
}

// Validatable defines the contract for types that validate their own state.
//
// Validate MUST check required fields, verify cross-field consistency and
// recursively validate nested values. It MUST be fast (no I/O), deterministic
// and free of side effects. Error messages SHOULD name the offending field,
// for example "RawCommit.Hash must not be empty".
type Validatable interface {
	// Validate returns nil if the instance is valid, or a descriptive error.
	Validate() error
}

// Serializable defines the contract for types that round-trip through JSON
// and YAML.
//
// Marshal methods SHOULD validate before encoding so that invalid values are
// never emitted. Unmarshal methods SHOULD validate after decoding so that
// invalid external input is rejected at the boundary.
type Serializable interface {
	json.Marshaler
	json.Unmarshaler
	yaml.Marshaler
	yaml.Unmarshaler
}

// Loggable defines the contract for types that can be rendered as text.
//
// Redacted returns a representation safe for production logs; String returns
// the complete representation. For values that carry nothing sensitive the
// two MAY be identical.
type Loggable interface {
	// Redacted returns a log-safe representation.
	Redacted() string

	// String returns the complete representation.
	String() string
}

// Identifiable defines the contract for types that report a canonical name.
//
// TypeName returns the CamelCase type name without package prefix, for
// example "Commit" or "Version". It is used in error messages.
type Identifiable interface {
	TypeName() string
}

// ZeroCheckable defines the contract for types that detect their empty state.
type ZeroCheckable interface {
	IsZero() bool
}

// Checked is the constraint of the generic helpers: a value that validates
// itself and reports its type name. Value types satisfy it even when their
// unmarshal methods need pointer receivers, so []Commit can be passed where
// only *Commit is a Model.
type Checked interface {
	Validatable
	Identifiable
}
