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
package cmd

import (
	log "github.com/sirupsen/logrus"

	"github.com/adastra-lang/adastra/pkg/felt"
	"github.com/adastra-lang/adastra/pkg/natives"
	"github.com/adastra-lang/adastra/pkg/origin"
	"github.com/adastra-lang/adastra/pkg/registry"
)

// builtinOrigin blames every built-in declaration on this process, the way
// a real host embedding would blame its own registration call site.
var builtinOrigin = origin.NewHost(origin.HostLocation{
	ModulePath: "github.com/adastra-lang/adastra/cmd/adastra",
	Crate:      "adastra",
})

// newRegistry builds and seals the registry every subcommand interprets
// against. A conflict here (duplicate type or family clash) is a fatal
// configuration error: it means the built-in declarations themselves are
// broken, not that a script did anything wrong, so it is logged and the
// process exits rather than surfaced as a diagnostic.
func newRegistry() *registry.Registry {
	reg := registry.New()

	groups := []registry.DeclarationGroup{
		natives.Declarations(builtinOrigin),
		felt.Declarations(builtinOrigin),
	}

	if err := reg.Declare(groups); err != nil {
		log.WithError(err).Fatal("registry: built-in declarations rejected")
	}

	return reg
}
