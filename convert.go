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
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/coregx/coregex"
)

// ConverterFunc converts a raw argv token into a typed value, or reports that it
// could not. The parameterName and typeTag are passed through so the converter can
// build a precise ConvertError without the registry having to guess at one.
type ConverterFunc func(parameterName, typeTag, raw string) (any, error)

// TypeConverterRegistry is the process-wide string→typed-value mapping keyed by
// type-tag, generalized from the teacher's per-type ParamInt/ParamInt64/... accessor
// family into a single registry a caller can extend with custom tags. Registration is
// mutation-time only; once an App has been Build(), the registry backing it is read
// only during matching.
type TypeConverterRegistry struct {
	mu         sync.RWMutex
	converters map[string]ConverterFunc
	enums      map[string][]string
}

// NewTypeConverterRegistry returns a registry pre-populated with the built-in tags:
// int, long, double, bool, string.
func NewTypeConverterRegistry() *TypeConverterRegistry {
	r := &TypeConverterRegistry{converters: map[string]ConverterFunc{}}
	r.registerBuiltins()
	return r
}

func (r *TypeConverterRegistry) registerBuiltins() {
	r.converters["int"] = func(name, tag, raw string) (any, error) {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &ConvertError{ParameterName: name, TypeTag: tag, RawValue: raw, Cause: err}
		}
		return v, nil
	}
	r.converters["long"] = func(name, tag, raw string) (any, error) {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, &ConvertError{ParameterName: name, TypeTag: tag, RawValue: raw, Cause: err}
		}
		return v, nil
	}
	r.converters["double"] = func(name, tag, raw string) (any, error) {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, &ConvertError{ParameterName: name, TypeTag: tag, RawValue: raw, Cause: err}
		}
		return v, nil
	}
	r.converters["bool"] = func(name, tag, raw string) (any, error) {
		switch strings.ToLower(raw) {
		case "true", "1", "yes":
			return true, nil
		case "false", "0", "no":
			return false, nil
		default:
			return nil, &ConvertError{ParameterName: name, TypeTag: tag, RawValue: raw,
				Cause: fmt.Errorf("expected one of true/false/1/0/yes/no")}
		}
	}
	r.converters["string"] = func(name, tag, raw string) (any, error) {
		return raw, nil
	}
}

// Register adds or replaces the converter for tag. Registration is only meaningful
// before an App built against this registry is frozen.
func (r *TypeConverterRegistry) Register(tag string, fn ConverterFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.converters[tag] = fn
}

// Has reports whether tag has a registered converter.
func (r *TypeConverterRegistry) Has(tag string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.converters[tag]
	return ok
}

// Convert runs the converter registered for tag against raw. Callers should check Has
// at compile time; Convert itself returns UnknownTypeError-shaped information via a
// plain error if tag was never registered, which should not happen for a route that
// compiled successfully.
func (r *TypeConverterRegistry) Convert(parameterName, tag, raw string) (any, error) {
	r.mu.RLock()
	fn, ok := r.converters[tag]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("nuru: no converter registered for type tag %q", tag)
	}
	return fn(parameterName, tag, raw)
}

// EnumValues returns the domain of an enumerable built-in type, for the Completion
// Engine's "suggest all valid values at this slot" behavior (spec §4.G). Only "bool"
// is enumerable among the built-ins; custom converters are not enumerable unless the
// caller also registers their domain via RegisterEnum.
func (r *TypeConverterRegistry) EnumValues(tag string) ([]string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if vals, ok := r.enums[tag]; ok {
		return vals, true
	}
	if tag == "bool" {
		return []string{"true", "false"}, true
	}
	return nil, false
}

// RegisterEnum declares the completion domain for a custom type-tag, independent of
// registering its converter. Both calls are typically made together.
func (r *TypeConverterRegistry) RegisterEnum(tag string, values []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.enums == nil {
		r.enums = map[string][]string{}
	}
	r.enums[tag] = values
}

// NewRegexConverter builds a ConverterFunc backed by coregex, a drop-in regexp-shaped
// engine from the example pack. Registering it under a custom tag (e.g. "semver",
// "uuid") gives embedding applications a validated string type without hand-writing a
// converter, mirroring how the teacher's RouteConstraint validates path parameters
// against a compiled *regexp.Regexp.
func NewRegexConverter(pattern string) (ConverterFunc, error) {
	re, err := coregex.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("nuru: invalid regex converter pattern %q: %w", pattern, err)
	}
	return func(name, tag, raw string) (any, error) {
		if !re.MatchString(raw) {
			return nil, &ConvertError{ParameterName: name, TypeTag: tag, RawValue: raw,
				Cause: fmt.Errorf("does not match pattern %q", pattern)}
		}
		return raw, nil
	}, nil
}
