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

package semver_test

import (
	"encoding/json"
	"testing"

	"dirpx.dev/dxbump/dxcore/model/semver"
	"gopkg.in/yaml.v3"
)

func TestVersion_String(t *testing.T) {
	tests := []struct {
		name    string
		version semver.Version
		want    string
	}{
		{"simple_version", semver.Version{Major: 1, Minor: 2, Patch: 3}, "1.2.3"},
		{"with_prerelease", semver.Version{Major: 1, Prerelease: "alpha.1"}, "1.0.0-alpha.1"},
		{"with_metadata", semver.Version{Major: 2, Metadata: "build.123"}, "2.0.0+build.123"},
		{"full", semver.Version{Major: 1, Prerelease: "rc.1", Metadata: "exp.sha.5114f85"}, "1.0.0-rc.1+exp.sha.5114f85"},
		{"zero_version", semver.Version{}, "0.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.version.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVersion_Tag(t *testing.T) {
	v := semver.Version{Major: 1, Minor: 4}
	if got := v.Tag(); got != "v1.4.0" {
		t.Errorf("Tag() = %q, want %q", got, "v1.4.0")
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    semver.Version
		wantErr bool
	}{
		{name: "simple_version", input: "1.2.3", want: semver.Version{Major: 1, Minor: 2, Patch: 3}},
		{name: "tag_prefix", input: "v2.0.0", want: semver.Version{Major: 2}},
		{name: "with_prerelease", input: "1.0.0-alpha.1", want: semver.Version{Major: 1, Prerelease: "alpha.1"}},
		{name: "full", input: "v2.0.0-rc.1+build.123", want: semver.Version{Major: 2, Prerelease: "rc.1", Metadata: "build.123"}},
		{name: "empty", input: "", wantErr: true},
		{name: "two_components", input: "1.2", wantErr: true},
		{name: "leading_zero", input: "01.2.3", wantErr: true},
		{name: "garbage", input: "release-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := semver.ParseVersion(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseVersion(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseVersion(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMustParseVersion_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParseVersion() did not panic on invalid input")
		}
	}()
	semver.MustParseVersion("not-a-version")
}

func TestVersion_Validate(t *testing.T) {
	tests := []struct {
		name    string
		version semver.Version
		wantErr bool
	}{
		{"valid", semver.Version{Major: 1, Minor: 2, Patch: 3}, false},
		{"zero", semver.Version{}, false},
		{"negative_major", semver.Version{Major: -1}, true},
		{"negative_patch", semver.Version{Patch: -3}, true},
		{"bad_prerelease", semver.Version{Major: 1, Prerelease: "alpha..1"}, true},
		{"leading_zero_prerelease", semver.Version{Major: 1, Prerelease: "01"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.version.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestVersion_IsZero(t *testing.T) {
	if !(semver.Version{}).IsZero() {
		t.Error("IsZero() = false for zero value")
	}
	if (semver.Version{Prerelease: "alpha"}).IsZero() {
		t.Error("IsZero() = true for 0.0.0-alpha")
	}
}

func TestVersion_Compare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.0", "2.0.0", -1},
		{"1.10.0", "1.9.0", 1},
		{"1.0.0-alpha", "1.0.0", -1},
		{"1.0.0-alpha", "1.0.0-alpha.1", -1},
		{"1.0.0-beta.11", "1.0.0-beta.2", 1},
		{"1.0.0+build1", "1.0.0+build2", 0},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			a := semver.MustParseVersion(tt.a)
			b := semver.MustParseVersion(tt.b)
			if got := a.Compare(b); got != tt.want {
				t.Errorf("Compare() = %d, want %d", got, tt.want)
			}
			if a.Less(b) != (tt.want < 0) || a.Equal(b) != (tt.want == 0) || a.Greater(b) != (tt.want > 0) {
				t.Errorf("Less/Equal/Greater disagree with Compare() = %d", tt.want)
			}
		})
	}
}

func TestVersion_Compare_InvalidFallsBackToCore(t *testing.T) {
	a := semver.Version{Major: 1, Prerelease: "bad..pre"}
	b := semver.Version{Major: 2}
	if got := a.Compare(b); got != -1 {
		t.Errorf("Compare() = %d, want -1", got)
	}
}

func TestVersion_Increments(t *testing.T) {
	v := semver.Version{Major: 1, Minor: 2, Patch: 3, Prerelease: "rc.1", Metadata: "b7"}

	tests := []struct {
		name string
		got  semver.Version
		want string
	}{
		{"major", v.IncMajor(), "2.0.0"},
		{"minor", v.IncMinor(), "1.3.0"},
		{"patch", v.IncPatch(), "1.2.4"},
		{"zero_major", semver.Version{Minor: 4, Patch: 1}.IncMajor(), "1.0.0"},
		{"zero_patch", semver.Version{}.IncPatch(), "0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.got.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVersion_JSON(t *testing.T) {
	v := semver.Version{Major: 1, Minor: 2, Patch: 3, Prerelease: "rc.1"}

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `"1.2.3-rc.1"` {
		t.Errorf("Marshal() = %s, want %q", data, `"1.2.3-rc.1"`)
	}

	var got semver.Version
	if err := json.Unmarshal([]byte(`"v1.2.3-rc.1"`), &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got != v {
		t.Errorf("Unmarshal() = %+v, want %+v", got, v)
	}

	if _, err := json.Marshal(semver.Version{Major: -1}); err == nil {
		t.Error("Marshal() of invalid version succeeded")
	}
	if err := json.Unmarshal([]byte(`123`), &got); err == nil {
		t.Error("Unmarshal() of number succeeded")
	}
}

func TestVersion_YAML(t *testing.T) {
	type doc struct {
		Current semver.Version `yaml:"current"`
	}

	data, err := yaml.Marshal(doc{Current: semver.Version{Major: 3, Minor: 1}})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != "current: 3.1.0\n" {
		t.Errorf("Marshal() = %q", data)
	}

	var got doc
	if err := yaml.Unmarshal([]byte("current: v0.9.2\n"), &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got.Current != (semver.Version{Minor: 9, Patch: 2}) {
		t.Errorf("Unmarshal() = %+v", got.Current)
	}

	if err := yaml.Unmarshal([]byte("current: nope\n"), &got); err == nil {
		t.Error("Unmarshal() of invalid version succeeded")
	}
}
