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
	"fmt"
	"strings"

	"github.com/adastra-lang/adastra/pkg/cell"
	"github.com/adastra-lang/adastra/pkg/felt"
	"github.com/adastra-lang/adastra/pkg/natives"
	"github.com/adastra-lang/adastra/pkg/origin"
	"github.com/adastra-lang/adastra/pkg/registry"
)

// formatCell renders a result Cell for terminal output. It understands the
// built-in types (Bool, String, Array, Struct, Int, Float, Felt) directly
// and falls back to the registry's type name for anything else, since a
// host collaborator's own types have no generic textual form here.
func formatCell(reg *registry.Registry, c cell.Cell) string {
	if c.IsNil() {
		return "nil"
	}

	id := c.Slice().ElementType().ID

	switch id {
	case natives.BoolTypeID:
		v, err := natives.UnboxBool(origin.NilOrigin, c)
		if err != nil {
			return "<bool: " + err.Error() + ">"
		}

		return fmt.Sprintf("%t", v)
	case natives.StringTypeID:
		v, err := natives.UnboxString(origin.NilOrigin, c)
		if err != nil {
			return "<string: " + err.Error() + ">"
		}

		return fmt.Sprintf("%q", v)
	case natives.ArrayTypeID:
		return formatArray(reg, c)
	case natives.StructTypeID:
		return formatStruct(reg, c)
	}

	switch id {
	case felt.IntTypeID:
		v, err := felt.UnboxInt(origin.NilOrigin, c)
		if err != nil {
			return "<int: " + err.Error() + ">"
		}

		return fmt.Sprintf("%d", v)
	case felt.FloatTypeID:
		v, err := felt.UnboxFloat(origin.NilOrigin, c)
		if err != nil {
			return "<float: " + err.Error() + ">"
		}

		return fmt.Sprintf("%g", v)
	case felt.FeltTypeID:
		v, err := felt.UnboxFelt(origin.NilOrigin, c)
		if err != nil {
			return "<felt: " + err.Error() + ">"
		}

		return v.String()
	}

	if meta, ok := reg.TypeByID(id); ok {
		return fmt.Sprintf("<%s>", meta.Name)
	}

	return "<value>"
}

func formatArray(reg *registry.Registry, c cell.Cell) string {
	n := natives.ArrayLen(c)
	parts := make([]string, 0, n)

	for i := 0; i < n; i++ {
		e, err := natives.ArrayElem(origin.NilOrigin, c, uintptr(i))
		if err != nil {
			parts = append(parts, "<err>")
			continue
		}

		parts = append(parts, formatCell(reg, e))
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

func formatStruct(reg *registry.Registry, c cell.Cell) string {
	n := natives.ArrayLen(c)
	parts := make([]string, 0, n)

	for i := 0; i < n; i++ {
		e, err := natives.StructEntry(origin.NilOrigin, c, uintptr(i))
		if err != nil {
			parts = append(parts, "<err>")
			continue
		}

		parts = append(parts, formatCell(reg, e))
	}

	return "{" + strings.Join(parts, ", ") + "}"
}
