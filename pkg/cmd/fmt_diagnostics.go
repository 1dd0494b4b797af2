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
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/adastra-lang/adastra/pkg/analyzer"
	"github.com/adastra-lang/adastra/pkg/query"
)

// fmtDiagnosticsCmd re-emits a script's diagnostics in go.lsp.dev/protocol's
// wire vocabulary, the shape an editor collaborator's jsonrpc2 handler
// would forward verbatim as a textDocument/publishDiagnostics
// notification.
var fmtDiagnosticsCmd = &cobra.Command{
	Use:   "fmt-diagnostics script.adastra",
	Short: "print a script's diagnostics as LSP-shaped JSON.",
	Long:  "Analyze a script and print its diagnostics in go.lsp.dev/protocol vocabulary, one JSON array to stdout.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		reg := newRegistry()
		mod := readModule(args[0], reg)

		issues, err := mod.Diagnostics(GetInt(cmd, "depth"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		text, err := mod.Text()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		diags := query.Diagnostics(text, issues)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		if err := enc.Encode(diags); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(fmtDiagnosticsCmd)
	fmtDiagnosticsCmd.Flags().Int("depth", 3, "deepest diagnostic tier to report (1=parse, 2=local semantics, 3=type flow)")
}

// printDiagnostics renders issues as plain-text, one per line, with the
// severity label coloured when stdout is a terminal — the way the
// teacher's CLI probes the terminal before deciding whether a constraint
// table gets coloured.
func printDiagnostics(filename string, issues []analyzer.Issue) {
	colour := term.IsTerminal(int(os.Stdout.Fd()))

	for _, iss := range issues {
		label := severityLabel(iss.Code.Severity(), colour)
		fmt.Printf("%s:%d: %s [%03d] %s\n", filename, iss.Span.Start(), label, int(iss.Code), iss.Message)
	}

	if len(issues) == 0 {
		fmt.Printf("%s: no issues found\n", filename)
	}
}

func severityLabel(sev analyzer.Severity, colour bool) string {
	const (
		red    = "\x1b[31m"
		yellow = "\x1b[33m"
		reset  = "\x1b[0m"
	)

	if sev == analyzer.SeverityWarning {
		if colour {
			return yellow + "warning" + reset
		}

		return "warning"
	}

	if colour {
		return red + "error" + reset
	}

	return "error"
}
