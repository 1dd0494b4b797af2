// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package analyzer

import "strconv"

// parseIntText and parseFloatText validate a numeric literal's text the same
// way the compiler will need to when it lowers the literal to a PushUsize/
// PushFloat instruction; the analyzer runs the same parse early so a
// malformed literal is reported as CodeIntParse/CodeFloatParse instead of
// surfacing as a opaque compile failure later.
func parseIntText(text string) (int64, error) {
	return strconv.ParseInt(text, 10, 64)
}

func parseFloatText(text string) (float64, error) {
	return strconv.ParseFloat(text, 64)
}
