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

package errors

import "testing"

func TestParseError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ParseError
		want string
	}{
		{
			"Bump type",
			&ParseError{Type: "Bump", Value: "unknown"},
			"dxbump: invalid Bump value: unknown",
		},
		{
			"commit Type",
			&ParseError{Type: "Type", Value: "invalid"},
			"dxbump: invalid Type value: invalid",
		},
		{
			"Strategy type",
			&ParseError{Type: "Strategy", Value: "bad"},
			"dxbump: invalid Strategy value: bad",
		},
		{
			"empty value",
			&ParseError{Type: "Links", Value: ""},
			"dxbump: invalid Links value: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ParseError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMarshalError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *MarshalError
		want string
	}{
		{
			"positive value",
			&MarshalError{Type: "Bump", Value: 99},
			"dxbump: cannot marshal invalid Bump value: 99",
		},
		{
			"negative value",
			&MarshalError{Type: "Type", Value: -1},
			"dxbump: cannot marshal invalid Type value: -1",
		},
		{
			"zero value",
			&MarshalError{Type: "Strategy", Value: 0},
			"dxbump: cannot marshal invalid Strategy value: 0",
		},
		{
			"large value",
			&MarshalError{Type: "Links", Value: 12345},
			"dxbump: cannot marshal invalid Links value: 12345",
		},
		{
			"value 42 should be decimal not unicode",
			&MarshalError{Type: "Version", Value: 42},
			"dxbump: cannot marshal invalid Version value: 42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("MarshalError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnmarshalError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *UnmarshalError
		want string
	}{
		{
			"empty data",
			&UnmarshalError{
				Type:   "Bump",
				Data:   []byte{},
				Reason: "empty data",
			},
			"dxbump: cannot unmarshal Bump: empty data",
		},
		{
			"invalid format",
			&UnmarshalError{
				Type:   "Type",
				Data:   []byte(`"bad"`),
				Reason: "invalid format",
			},
			"dxbump: cannot unmarshal Type: invalid format",
		},
		{
			"parse error",
			&UnmarshalError{
				Type:   "Strategy",
				Data:   []byte(`99`),
				Reason: "invalid numeric value",
			},
			"dxbump: cannot unmarshal Strategy: invalid numeric value",
		},
		{
			"json syntax error",
			&UnmarshalError{
				Type:   "Links",
				Data:   []byte(`{broken`),
				Reason: "unexpected end of JSON input",
			},
			"dxbump: cannot unmarshal Links: unexpected end of JSON input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("UnmarshalError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			"with field",
			&ValidationError{Type: "RawCommit", Field: "Hash", Reason: "must not be empty"},
			"dxbump: invalid RawCommit.Hash: must not be empty",
		},
		{
			"without field",
			&ValidationError{Type: "Strategy", Reason: "invalid value", Value: 7},
			"dxbump: invalid Strategy: invalid value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ValidationError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfigError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ConfigError
		want string
	}{
		{
			"remote url",
			&ConfigError{Key: "remote_url", Value: "https://gitlab.com/org/repo.git", Reason: "not a GitHub remote"},
			`dxbump: invalid configuration remote_url="https://gitlab.com/org/repo.git": not a GitHub remote`,
		},
		{
			"empty value",
			&ConfigError{Key: "bump.strategy", Value: "", Reason: "must not be empty"},
			`dxbump: invalid configuration bump.strategy="": must not be empty`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ConfigError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrors_Implements_Error_Interface(t *testing.T) {
	var _ error = (*ParseError)(nil)
	var _ error = (*MarshalError)(nil)
	var _ error = (*UnmarshalError)(nil)
	var _ error = (*ValidationError)(nil)
	var _ error = (*ConfigError)(nil)
}
