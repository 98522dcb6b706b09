// Copyright 2026 The logkit Authors
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

package logkit

import "errors"

// ErrInvalidLevel indicates that a severity name from configuration did not
// match any of DEBUG, INFO, WARNING, ERROR or CRITICAL.
var ErrInvalidLevel = errors.New("logkit: invalid level name")

// ErrInvalidConfig indicates that a configuration document was syntactically
// valid but failed schema validation (for example, an unparseable level
// string for a sink or component). The offending key is included in the
// wrapping error.
var ErrInvalidConfig = errors.New("logkit: invalid configuration")
