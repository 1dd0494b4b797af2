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

// Package module ties the lexer, cst, analyzer and asm stages together
// behind one editor-facing Module: a named, mutable script source plus a
// demand-driven, memoised re-analysis of it, gated by a read-write lock and
// a global access-level switch a host can flip to revoke every in-flight
// query at once.
package module

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/adastra-lang/adastra/pkg/analyzer"
	"github.com/adastra-lang/adastra/pkg/asm"
	"github.com/adastra-lang/adastra/pkg/cst"
	"github.com/adastra-lang/adastra/pkg/lexer"
	"github.com/adastra-lang/adastra/pkg/registry"
	"github.com/adastra-lang/adastra/pkg/util/source"
)

// ErrAccessDenied is returned by every query once a Module's access level
// has been set to Deny.
var ErrAccessDenied = errors.New("module: access denied")

// AccessLevel gates every Module query; Deny revokes access globally
// regardless of which goroutine or collaborator is asking.
type AccessLevel uint8

const (
	AccessAllow AccessLevel = iota
	AccessDeny
)

// Module is one editable script bound to a Registry. Every query
// (Diagnostics, Symbols, Completions, Compile) runs against a memoised
// Analysis that is recomputed lazily the first time it's needed after an
// Edit — there is no incremental attribute graph, matching
// analyzer.Analysis's own doc comment on why a full re-run is acceptable at
// this scale.
type Module struct {
	mu     sync.RWMutex
	name   string
	reg    *registry.Registry
	text   string
	dirty  bool
	an     *analyzer.Analysis
	access atomic.Int32
}

// New constructs a Module named name, holding text, bound to reg for
// package/component resolution.
func New(name, text string, reg *registry.Registry) *Module {
	return &Module{name: name, reg: reg, text: text, dirty: true}
}

// SetAccess flips the module's access level; a collaborator sets AccessDeny
// to revoke every subsequent query until it sets AccessAllow again.
func (m *Module) SetAccess(level AccessLevel) {
	m.access.Store(int32(level))
}

func (m *Module) checkAccess() error {
	if AccessLevel(m.access.Load()) == AccessDeny {
		return ErrAccessDenied
	}

	return nil
}

// Text returns the module's current source text.
func (m *Module) Text() (string, error) {
	if err := m.checkAccess(); err != nil {
		return "", err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.text, nil
}

// Edit replaces the source text spanned by span with replacement, then
// marks the module's analysis stale. It does not itself re-analyze: the
// next Diagnostics/Symbols/Completions/Compile call pays that cost once,
// on demand.
func (m *Module) Edit(span source.Span, replacement string) error {
	if err := m.checkAccess(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if span.Start() < 0 || span.End() > len(m.text) || span.Start() > span.End() {
		return errors.New("module: edit span out of range")
	}

	m.text = m.text[:span.Start()] + replacement + m.text[span.End():]
	m.dirty = true

	return nil
}

// ensureAnalyzed returns the module's current Analysis, recomputing it if
// the text has changed since the last call. The fast path (already fresh)
// only takes a read lock; recomputation takes the write lock and
// double-checks staleness, so concurrent callers racing to refresh the same
// edit do the work once.
func (m *Module) ensureAnalyzed() *analyzer.Analysis {
	m.mu.RLock()
	if !m.dirty && m.an != nil {
		a := m.an
		m.mu.RUnlock()

		return a
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.dirty && m.an != nil {
		return m.an
	}

	file := source.NewSourceFile(m.name, []byte(m.text))
	toks := lexer.Tokenize(file)
	p := cst.NewParser(toks)
	root := p.Parse()

	a := analyzer.Analyze(root, m.name, m.reg)

	for _, pe := range p.Errors() {
		a.Issues = append(a.Issues, analyzer.Issue{Code: analyzer.CodeParse, Message: pe.Message, Span: pe.Span})
	}

	m.an = a
	m.dirty = false

	return a
}

// Diagnostics returns every issue at or below depth, ordered by position.
func (m *Module) Diagnostics(depth int) ([]analyzer.Issue, error) {
	if err := m.checkAccess(); err != nil {
		return nil, err
	}

	return m.ensureAnalyzed().Diagnostics(depth), nil
}

// Symbols returns every symbol of a kind in mask whose span falls within
// span (the zero Span selects the whole module).
func (m *Module) Symbols(span source.Span, mask analyzer.SymbolKind) ([]analyzer.Symbol, error) {
	if err := m.checkAccess(); err != nil {
		return nil, err
	}

	return m.ensureAnalyzed().SymbolsIn(span, mask), nil
}

// Completions resolves the completion candidates visible at offset.
func (m *Module) Completions(offset int) (analyzer.CompletionScope, []analyzer.Completion, error) {
	if err := m.checkAccess(); err != nil {
		return analyzer.ScopeUnknown, nil, err
	}

	scope, items := m.ensureAnalyzed().Completions(offset)

	return scope, items, nil
}

// Compile lowers the module's current analysis to an Assembly ready for
// pkg/vm. A module with depth-1 (parse) diagnostics still compiles — the
// compiler emits PushNil in place of whatever it couldn't make sense of —
// matching the language's deliberately permissive, best-effort posture
// rather than refusing to produce bytecode.
func (m *Module) Compile() (*asm.Assembly, error) {
	if err := m.checkAccess(); err != nil {
		return nil, err
	}

	return asm.Compile(m.ensureAnalyzed())
}
