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

// Package analyzer runs a demand-driven pass over a cst.Node tree: local
// scope analysis, cross-scope name resolution, type-tag inference and
// diagnostic collection, plus the symbol/completion query surface a
// language-server front end consumes.
package analyzer

import "github.com/adastra-lang/adastra/pkg/util/source"

// IssueCode is a three-digit code XYY: X is the depth (1 syntax, 2 local
// semantic, 3 type flow) that produced the issue, YY its sub-code.
type IssueCode int

const (
	CodeParse IssueCode = 101

	CodeUnresolvedPackage IssueCode = 201
	CodeNotAPackage       IssueCode = 202
	CodeOrphanedBreak     IssueCode = 203
	CodeDuplicateParam    IssueCode = 204
	CodeReadUninit        IssueCode = 205
	CodeUnresolvedIdent   IssueCode = 206
	CodeIntParse          IssueCode = 207
	CodeFloatParse        IssueCode = 208
	CodeUnreachableStmt   IssueCode = 209
	CodeUnreachableArm    IssueCode = 210
	CodeDuplicateEntry    IssueCode = 211
	CodeLiteralAssignment IssueCode = 212

	CodeTypeMismatch         IssueCode = 301
	CodeNilIndex             IssueCode = 302
	CodeIndexTypeMismatch    IssueCode = 303
	CodeUndefinedOperator    IssueCode = 304
	CodeUndefinedDisplay     IssueCode = 305
	CodeCallArityMismatch    IssueCode = 306
	CodeFnArityMismatch      IssueCode = 307
	CodeResultMismatch       IssueCode = 308
	CodeUnknownComponent     IssueCode = 309
	CodeInconsistentReturns  IssueCode = 310
)

// warningCodes are depth-2 codes that are warnings rather than errors; every
// depth-3 code is a warning (see Severity), and every other depth-1/2 code
// is an error.
var warningCodes = map[IssueCode]bool{
	CodeUnreachableStmt:   true,
	CodeUnreachableArm:    true,
	CodeDuplicateEntry:    true,
	CodeLiteralAssignment: true,
}

// Depth returns the analysis depth (1, 2 or 3) that produces this code.
func (c IssueCode) Depth() int {
	return int(c) / 100
}

// Severity classifies an issue as an error or a warning.
type Severity uint8

const (
	SeverityError Severity = iota
	SeverityWarning
)

// Severity reports whether this code is an error or a warning: depth-3
// codes are always warnings (the language is dynamically typed, so type
// mismatches are advisory); among depth-1/2 codes, only the handful in
// warningCodes are warnings.
func (c IssueCode) Severity() Severity {
	if c.Depth() == 3 || warningCodes[c] {
		return SeverityWarning
	}

	return SeverityError
}

// Issue is one diagnostic raised against a span of source.
type Issue struct {
	Code      IssueCode
	Message   string
	Span      source.Span
	Quickfix  string
}
