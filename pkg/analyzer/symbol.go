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

import "github.com/adastra-lang/adastra/pkg/util/source"

// SymbolKind is a bitmask classifying one node surfaced by Symbols; a caller
// filters the query by OR-ing together the kinds it wants back.
type SymbolKind uint32

const (
	SymbolUse SymbolKind = 1 << iota
	SymbolPackage
	SymbolVar
	SymbolLoop
	SymbolBreak
	SymbolFn
	SymbolReturn
	SymbolStruct
	SymbolArray
	SymbolEntry
	SymbolIdent
	SymbolField
	SymbolLiteral
	SymbolOperator
	SymbolCall
	SymbolIndex

	SymbolAll = SymbolUse | SymbolPackage | SymbolVar | SymbolLoop | SymbolBreak |
		SymbolFn | SymbolReturn | SymbolStruct | SymbolArray | SymbolEntry |
		SymbolIdent | SymbolField | SymbolLiteral | SymbolOperator | SymbolCall | SymbolIndex
)

// Symbol is one named or kinded occurrence surfaced by a Symbols query.
type Symbol struct {
	Kind SymbolKind
	Name string
	Span source.Span
}
