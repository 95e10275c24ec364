// Copyright 2026 The Nuru Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package nuru

import (
	"errors"
	"fmt"
)

// Static errors for the cases that carry no useful structured fields. These should be
// wrapped with fmt.Errorf and %w when the caller needs context.
var (
	// Registration errors
	ErrEmptyPattern    = errors.New("nuru: pattern must not be empty")
	ErrDuplicateOption = errors.New("nuru: option declared more than once on a single route")
	ErrNotBuilt        = errors.New("nuru: app must be Build() before matching or completing")
	ErrAlreadyBuilt    = errors.New("nuru: app already built; no further endpoints may be registered")
	ErrNoEndpoints     = errors.New("nuru: no endpoints registered")

	// Converter registry errors
	ErrConverterExists = errors.New("nuru: a converter is already registered for this type tag")
)

// UnknownTypeError is raised at registration time when a parameter's type-tag has no
// registered converter. It is never silently treated as "string".
type UnknownTypeError struct {
	Pattern string
	TypeTag string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("nuru: unknown type tag %q in pattern %q", e.TypeTag, e.Pattern)
}

// ConvertError reports that a typed parameter's raw token could not be converted.
// It contributes to a NoMatch per endpoint rather than escaping as a standalone error,
// unless every endpoint rejects the same argv for the same reason.
type ConvertError struct {
	ParameterName string
	TypeTag       string
	RawValue      string
	Cause         error
}

func (e *ConvertError) Error() string {
	return fmt.Sprintf("nuru: cannot convert %q to %s for parameter %q: %v", e.RawValue, e.TypeTag, e.ParameterName, e.Cause)
}

func (e *ConvertError) Unwrap() error {
	return e.Cause
}

// HandlerError wraps the error returned by a user handler (panics are not recovered).
// It propagates unchanged to the host; the core never interprets it.
type HandlerError struct {
	Endpoint *Endpoint
	Cause    error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("nuru: handler for %q failed: %v", e.Endpoint.Pattern, e.Cause)
}

func (e *HandlerError) Unwrap() error {
	return e.Cause
}
