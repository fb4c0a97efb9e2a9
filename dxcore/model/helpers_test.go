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

package model_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"dirpx.dev/dxbump/dxcore/model"
	"gopkg.in/yaml.v3"
)

// manifest is a minimal Model used to exercise the generic helpers.
type manifest struct {
	Path    string `json:"path" yaml:"path"`
	Version string `json:"version" yaml:"version"`
}

func (m manifest) Validate() error {
	if m.Path == "" {
		return errors.New("manifest.Path must not be empty")
	}
	if m.Version == "" {
		return errors.New("manifest.Version must not be empty")
	}
	return nil
}

func (m manifest) TypeName() string { return "manifest" }
func (m manifest) IsZero() bool     { return m.Path == "" && m.Version == "" }
func (m manifest) Redacted() string { return "manifest{" + m.Path + "}" }
func (m manifest) String() string   { return "manifest{" + m.Path + "@" + m.Version + "}" }

func (m manifest) MarshalJSON() ([]byte, error) {
	type alias manifest
	return json.Marshal(alias(m))
}

func (m *manifest) UnmarshalJSON(data []byte) error {
	type alias manifest
	return json.Unmarshal(data, (*alias)(m))
}

func (m manifest) MarshalYAML() (interface{}, error) {
	type alias manifest
	return alias(m), nil
}

func (m *manifest) UnmarshalYAML(node *yaml.Node) error {
	type alias manifest
	return node.Decode((*alias)(m))
}

var _ model.Model = (*manifest)(nil)

func TestValidateAll(t *testing.T) {
	tests := []struct {
		name      string
		models    []manifest
		wantErr   bool
		wantParts []string
	}{
		{
			name:    "nil slice",
			models:  nil,
			wantErr: false,
		},
		{
			name: "all valid",
			models: []manifest{
				{Path: "VERSION", Version: "1.0.0"},
				{Path: "app/VERSION", Version: "1.0.0"},
			},
			wantErr: false,
		},
		{
			name: "collects every failure",
			models: []manifest{
				{Path: "", Version: "1.0.0"},
				{Path: "VERSION", Version: "1.0.0"},
				{Path: "app/VERSION", Version: ""},
			},
			wantErr:   true,
			wantParts: []string{"model[0] (manifest)", "model[2] (manifest)", "Path", "Version"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := model.ValidateAll(tt.models)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateAll() error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, part := range tt.wantParts {
				if !strings.Contains(err.Error(), part) {
					t.Errorf("ValidateAll() error %q should mention %q", err.Error(), part)
				}
			}
		})
	}
}

func TestToJSON_RejectsInvalid(t *testing.T) {
	if _, err := model.ToJSON(manifest{}); err == nil {
		t.Fatal("ToJSON() should reject an invalid model")
	}

	data, err := model.ToJSON(manifest{Path: "VERSION", Version: "2.0.0"})
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}
	if string(data) != `{"path":"VERSION","version":"2.0.0"}` {
		t.Errorf("ToJSON() = %s", data)
	}
}

func TestToYAML_FromYAML_RoundTrip(t *testing.T) {
	original := manifest{Path: "VERSION", Version: "1.4.0"}

	data, err := model.ToYAML(original)
	if err != nil {
		t.Fatalf("ToYAML() error = %v", err)
	}

	var decoded manifest
	if err := model.FromYAML(data, &decoded); err != nil {
		t.Fatalf("FromYAML() error = %v", err)
	}
	if decoded != original {
		t.Errorf("round trip = %+v, want %+v", decoded, original)
	}
}

func TestFromJSON_RejectsInvalid(t *testing.T) {
	var m manifest
	if err := model.FromJSON([]byte(`{"path":"VERSION"}`), &m); err == nil {
		t.Fatal("FromJSON() should fail when the decoded model is invalid")
	}
	if err := model.FromJSON([]byte(`{broken`), &m); err == nil {
		t.Fatal("FromJSON() should fail on malformed JSON")
	}
}
