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
	"os"
	"strconv"
)

// envDebugVar is the only environment variable the core observes (spec §6): a toggle
// for verbose matcher-rejection tracing. Read once at Build(), never per call.
const envDebugVar = "NURU_DEBUG"

// debugFromEnv reports whether envDebugVar is set to a truthy value. Any value
// strconv.ParseBool accepts ("1", "t", "true", "TRUE", ...) counts as enabled; unset or
// unparseable counts as disabled.
func debugFromEnv() bool {
	v, ok := os.LookupEnv(envDebugVar)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
