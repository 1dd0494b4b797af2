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

// Package lexer tokenises Ad Astra source text, built atop the generic
// Lexer[T]/Scanner[T] machinery of pkg/util/source.
package lexer

// Kind enumerates every token category the lexer produces.
type Kind uint

const (
	// Structural / sentinel kinds.
	Eof Kind = iota
	Error

	Ident
	Int
	Float
	String

	// Keywords.
	KwIf
	KwElse
	KwMatch
	KwLet
	KwFor
	KwIn
	KwLoop
	KwBreak
	KwContinue
	KwReturn
	KwFn
	KwStruct
	KwUse
	KwCrate
	KwSelf
	KwTrue
	KwFalse
	KwMax

	// Punctuation.
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Colon
	ColonColon
	Semicolon
	Arrow
	FatArrow
	Dot
	DotDot
	Question

	// Operators.
	Assign
	AddAssign
	SubAssign
	MulAssign
	DivAssign
	RemAssign
	AndAssign
	OrAssign
	BitAndAssign
	BitOrAssign
	BitXorAssign
	ShlAssign
	ShrAssign

	Plus
	Minus
	Star
	Slash
	Percent
	AmpAmp
	PipePipe
	Bang
	Amp
	Pipe
	Caret
	Shl
	Shr
	Tilde

	Eq
	Ne
	Lt
	Le
	Gt
	Ge

	Comment
	Whitespace
)

var keywords = map[string]Kind{
	"if": KwIf, "else": KwElse, "match": KwMatch, "let": KwLet,
	"for": KwFor, "in": KwIn, "loop": KwLoop, "break": KwBreak,
	"continue": KwContinue, "return": KwReturn, "fn": KwFn,
	"struct": KwStruct, "use": KwUse, "crate": KwCrate, "self": KwSelf,
	"true": KwTrue, "false": KwFalse, "max": KwMax,
}

var kindNames = map[Kind]string{
	Eof: "eof", Error: "error", Ident: "ident", Int: "int", Float: "float",
	String: "string", KwIf: "if", KwElse: "else", KwMatch: "match",
	KwLet: "let", KwFor: "for", KwIn: "in", KwLoop: "loop", KwBreak: "break",
	KwContinue: "continue", KwReturn: "return", KwFn: "fn", KwStruct: "struct",
	KwUse: "use", KwCrate: "crate", KwSelf: "self", KwTrue: "true",
	KwFalse: "false", KwMax: "max", LParen: "(", RParen: ")", LBrace: "{",
	RBrace: "}", LBracket: "[", RBracket: "]", Comma: ",", Colon: ":",
	ColonColon: "::", Semicolon: ";", Arrow: "->", FatArrow: "=>", Dot: ".",
	DotDot: "..", Question: "?", Assign: "=", AddAssign: "+=",
	SubAssign: "-=", MulAssign: "*=", DivAssign: "/=", RemAssign: "%=",
	AndAssign: "&&=", OrAssign: "||=", BitAndAssign: "&=", BitOrAssign: "|=",
	BitXorAssign: "^=", ShlAssign: "<<=", ShrAssign: ">>=", Plus: "+",
	Minus: "-", Star: "*", Slash: "/", Percent: "%", AmpAmp: "&&",
	PipePipe: "||", Bang: "!", Amp: "&", Pipe: "|", Caret: "^", Shl: "<<",
	Shr: ">>", Tilde: "~", Eq: "==", Ne: "!=", Lt: "<", Le: "<=", Gt: ">",
	Ge: ">=", Comment: "comment", Whitespace: "whitespace",
}

// String renders the token kind's canonical name.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}

	return "unknown"
}

// IsKeyword reports whether name is a reserved word, and if so its kind.
func IsKeyword(name string) (Kind, bool) {
	k, ok := keywords[name]

	return k, ok
}

// IsTrivia reports whether a kind carries no syntactic meaning (whitespace
// or a comment), and is filtered from the token stream the parser sees.
func (k Kind) IsTrivia() bool {
	return k == Whitespace || k == Comment
}
