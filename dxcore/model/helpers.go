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

package model

import (
	"encoding/json"
	"fmt"

	"dirpx.dev/rxmerr"
	"gopkg.in/yaml.v3"
)

// ValidateAll validates a slice of models and returns every validation error
// encountered.
//
// Each failure is wrapped with the model's zero-based position and TypeName,
// for example "model[2] (Commit): ...", and the failures are combined with
// rxmerr.Collector so that callers see the whole batch at once rather than
// only the first problem. The entire slice is always processed. Empty and nil
// slices are valid and yield nil.
//
// The changelog writer calls ValidateAll on the commits it is about to render
// so that a malformed record is reported before anything touches the disk.
//
// Example:
//
//	if err := model.ValidateAll(commits); err != nil {
//	    return fmt.Errorf("cannot render release: %w", err)
//	}
func ValidateAll[T Checked](models []T) error {
	c := rxmerr.NewCollector()

	for i, m := range models {
		if err := m.Validate(); err != nil {
			c.Append(fmt.Errorf("model[%d] (%s): %w", i, m.TypeName(), err))
		}
	}

	return c.Err()
}

// ToJSON validates m and marshals it to JSON.
//
// Invalid models are rejected with an error that names the type; nothing is
// encoded in that case.
func ToJSON[T Checked](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	return json.Marshal(m)
}

// ToYAML validates m and marshals it to YAML.
func ToYAML[T Checked](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	return yaml.Marshal(m)
}

// FromJSON unmarshals data into m and validates the result.
func FromJSON[T Checked](data []byte, m *T) error {
	if err := json.Unmarshal(data, m); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}
	if err := (*m).Validate(); err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}
	return nil
}

// FromYAML unmarshals data into m and validates the result.
func FromYAML[T Checked](data []byte, m *T) error {
	if err := yaml.Unmarshal(data, m); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	if err := (*m).Validate(); err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}
	return nil
}
