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

// Package errors provides the typed error values shared by the dxbump packages.
//
// The errors in this package are simple value carriers with stable message
// formats. Every message starts with the "dxbump:" prefix so that failures
// surfaced by the CLI are easy to attribute. Callers recognize them with
// errors.As:
//
//	var cfgErr *dxerrors.ConfigError
//	if errors.As(err, &cfgErr) {
//	    fmt.Println("bad setting:", cfgErr.Key)
//	}
//
// # Error Types
//
//   - ParseError
//     Returned when parsing text into an enum-like type (Bump, Strategy,
//     commit Type) fails.
//
//   - MarshalError
//     Returned when an enum-like value outside its constant set is marshaled.
//
//   - UnmarshalError
//     Returned when serialized data cannot be decoded into a typed value.
//
//   - ValidationError
//     Returned by Validate methods of model types.
//
//   - ConfigError
//     Returned when a configuration value (a git remote URL, a config file
//     key, an environment override) cannot be used. Configuration errors are
//     fatal: a component constructed from bad configuration would emit wrong
//     output for the life of a release, so construction fails instead.
package errors

import (
	"fmt"
	"strconv"
)

// ParseError is returned when parsing a string into a strongly typed enum-like
// value fails.
//
// Type identifies the logical type being parsed (for example, "Bump" or
// "Strategy"), and Value contains the exact string that could not be
// interpreted.
//
// # Example
//
//	func ParseBump(s string) (Bump, error) {
//	    switch s {
//	    case "patch":
//	        return BumpPatch, nil
//	    default:
//	        // "dxbump: invalid Bump value: <value>"
//	        return BumpNone, &errors.ParseError{Type: "Bump", Value: s}
//	    }
//	}
type ParseError struct {
	// Type is the logical name of the type being parsed (for example, "Bump").
	Type string

	// Value is the invalid textual representation that was provided.
	Value string
}

// Error implements the error interface for ParseError.
//
// The error message format is:
//
//	"dxbump: invalid {Type} value: {Value}"
func (e *ParseError) Error() string {
	return "dxbump: invalid " + e.Type + " value: " + e.Value
}

// MarshalError is returned when marshaling a typed value fails due to it being
// outside the set of valid constants.
//
// In most cases a MarshalError indicates a programming error, for example a
// value produced by an unchecked integer conversion.
type MarshalError struct {
	// Type is the logical name of the type being marshaled (for example, "Bump").
	Type string

	// Value is the underlying numeric representation that could not be
	// marshaled because it does not correspond to a known constant.
	Value int
}

// Error implements the error interface for MarshalError.
//
// The error message format is:
//
//	"dxbump: cannot marshal invalid {Type} value: {Value}"
//
// where Value is rendered as a decimal integer.
func (e *MarshalError) Error() string {
	return "dxbump: cannot marshal invalid " + e.Type + " value: " + strconv.Itoa(e.Value)
}

// UnmarshalError is returned when unmarshaling data into a typed value fails.
//
// Type identifies the logical type being populated, Data contains the original
// raw payload, and Reason provides a human-readable description of what went
// wrong. Data is deliberately left out of the formatted message; callers can
// log it separately when appropriate.
type UnmarshalError struct {
	// Type is the logical name of the type being unmarshaled into.
	Type string

	// Data is the raw input that failed to unmarshal.
	Data []byte

	// Reason is a short, human-readable explanation of the failure.
	//
	// Reason SHOULD describe what went wrong (for example, "empty data")
	// rather than repeating the type name.
	Reason string
}

// Error implements the error interface for UnmarshalError.
//
// The error message format is:
//
//	"dxbump: cannot unmarshal {Type}: {Reason}"
func (e *UnmarshalError) Error() string {
	return "dxbump: cannot unmarshal " + e.Type + ": " + e.Reason
}

// ValidationError is returned when validation of a model type fails.
//
// Type identifies the logical name of the type being validated (for example,
// "Commit"), Field optionally identifies which field failed validation,
// Reason explains the failure, and Value optionally carries the offending
// value.
//
// # Example
//
//	func (c RawCommit) Validate() error {
//	    if c.Hash.IsZero() {
//	        return &errors.ValidationError{
//	            Type:   "RawCommit",
//	            Field:  "Hash",
//	            Reason: "must not be empty",
//	        }
//	    }
//	    return nil
//	}
type ValidationError struct {
	// Type is the logical name of the type being validated.
	Type string

	// Field is the name of the field that failed validation.
	// May be empty if the error applies to the entire type.
	Field string

	// Reason is a short, human-readable explanation of why validation failed.
	Reason string

	// Value optionally contains the invalid value.
	Value any
}

// Error implements the error interface for ValidationError.
//
// The error message format is:
//
//	"dxbump: invalid {Type}.{Field}: {Reason}" (when Field is specified)
//	"dxbump: invalid {Type}: {Reason}" (when Field is empty)
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "dxbump: invalid " + e.Type + "." + e.Field + ": " + e.Reason
	}
	return "dxbump: invalid " + e.Type + ": " + e.Reason
}

// ConfigError is returned when a configuration input cannot be used to build
// a component.
//
// Key names the setting (for example, "remote_url" or "bump.strategy"),
// Value holds the rejected input, and Reason explains the rejection. Unlike
// ValidationError, which reports on an already constructed value, ConfigError
// is raised at construction time and callers MUST NOT continue with a
// fallback.
type ConfigError struct {
	// Key is the configuration key or constructor argument that was rejected.
	Key string

	// Value is the rejected input, verbatim.
	Value string

	// Reason is a short, human-readable explanation of the rejection.
	Reason string
}

// Error implements the error interface for ConfigError.
//
// The error message format is:
//
//	"dxbump: invalid configuration {Key}={Value}: {Reason}"
func (e *ConfigError) Error() string {
	return fmt.Sprintf("dxbump: invalid configuration %s=%q: %s", e.Key, e.Value, e.Reason)
}
