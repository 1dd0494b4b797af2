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

// Package origin provides the unified source-location token carried by every
// runtime value, error and bytecode instruction in Ad Astra: either a static
// host-code location (recorded once, by the exporting macro, at registration
// time) or a script-code location (a module identifier plus a span that
// realigns as the module is edited).
package origin

import (
	"fmt"

	"github.com/adastra-lang/adastra/pkg/util/source"
)

// Kind distinguishes the two forms an Origin can take.
type Kind uint8

const (
	// Nil indicates the absence of an origin.
	Nil Kind = iota
	// Host indicates a location within the embedding application's own
	// source code, recorded statically at registration time.
	Host
	// Script indicates a location within a script module's source text.
	Script
)

// Origin is a tagged location handle.  Two Origins compare and hash by
// identity of their underlying fields, never by resolving the span they
// happen to point at — two tokens covering the same text are distinct
// origins unless constructed identically.
type Origin struct {
	kind Kind
	// Populated when kind == Host.
	host HostLocation
	// Populated when kind == Script.
	module string
	span   source.Span
}

// HostLocation records where, in the embedding application's own source, a
// declaration was made.  Supplied by the (out-of-scope) exporting macro.
type HostLocation struct {
	// ModulePath is the host package path (e.g. "myapp/scripting").
	ModulePath string
	// Line is the 1-indexed source line.
	Line int
	// Column is the 1-indexed source column.
	Column int
	// Crate names the host crate/module and, optionally, its version.
	Crate   string
	Version string
}

// NilOrigin is the explicit absence of a location.
var NilOrigin = Origin{kind: Nil}

// NewHost constructs a host-code Origin.
func NewHost(loc HostLocation) Origin {
	return Origin{kind: Host, host: loc}
}

// NewScript constructs a script-code Origin from a module identifier and a
// token-reference span within that module's source text.
func NewScript(module string, span source.Span) Origin {
	return Origin{kind: Script, module: module, span: span}
}

// IsNil reports whether this is the explicit nil origin.
func (o Origin) IsNil() bool {
	return o.kind == Nil
}

// Kind returns the tag of this Origin.
func (o Origin) Kind() Kind {
	return o.kind
}

// Host returns the host location and true, if this is a Host origin.
func (o Origin) Host() (HostLocation, bool) {
	return o.host, o.kind == Host
}

// Module returns the owning module identifier and true, if this is a Script
// origin.
func (o Origin) Module() (string, bool) {
	return o.module, o.kind == Script
}

// Span returns the token-reference span and true, if this is a Script
// origin.
func (o Origin) Span() (source.Span, bool) {
	return o.span, o.kind == Script
}

// String renders a human-readable location, suitable for error messages.
func (o Origin) String() string {
	switch o.kind {
	case Host:
		if o.host.Crate != "" {
			return fmt.Sprintf("%s:%d:%d (%s %s)", o.host.ModulePath, o.host.Line, o.host.Column, o.host.Crate, o.host.Version)
		}

		return fmt.Sprintf("%s:%d:%d", o.host.ModulePath, o.host.Line, o.host.Column)
	case Script:
		return fmt.Sprintf("%s:%d-%d", o.module, o.span.Start(), o.span.End())
	default:
		return "<nil origin>"
	}
}

// Equals compares two Origins for identity.
func (o Origin) Equals(other Origin) bool {
	if o.kind != other.kind {
		return false
	}

	switch o.kind {
	case Host:
		return o.host == other.host
	case Script:
		return o.module == other.module && o.span == other.span
	default:
		return true
	}
}
