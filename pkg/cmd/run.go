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
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/adastra-lang/adastra/pkg/analyzer"
	"github.com/adastra-lang/adastra/pkg/module"
	"github.com/adastra-lang/adastra/pkg/registry"
	"github.com/adastra-lang/adastra/pkg/vm"
)

var runCmd = &cobra.Command{
	Use:   "run script.adastra",
	Short: "compile and execute an Ad Astra script.",
	Long:  "Compile a single Ad Astra script to bytecode and interpret it, printing its result value.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}

		reg := newRegistry()
		start := time.Now()

		mod := readModule(args[0], reg)

		issues, err := mod.Diagnostics(2)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		if hasErrors(issues) {
			printDiagnostics(args[0], issues)
			os.Exit(1)
		}

		asmFile, err := mod.Compile()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		compiled := time.Now()

		interp := vm.New(reg)

		result, rerr := interp.Run(asmFile, nil)
		if rerr != nil {
			fmt.Println(rerr.Error())
			os.Exit(1)
		}

		fmt.Println(formatCell(reg, result))

		if GetFlag(cmd, "stats") {
			ran := time.Now()
			log.Infof("compile: %s, run: %s, total: %s", compiled.Sub(start), ran.Sub(compiled), ran.Sub(start))
		}
	},
}

// readModule reads filename off disk and wraps it in a module.Module; a
// read failure is a usage error, not a diagnostic, so it exits immediately
// rather than flowing through the Issue taxonomy.
func readModule(filename string, reg *registry.Registry) *module.Module {
	text, err := os.ReadFile(filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	return module.New(filename, string(text), reg)
}

func hasErrors(issues []analyzer.Issue) bool {
	for _, iss := range issues {
		if iss.Code.Severity() == analyzer.SeverityError {
			return true
		}
	}

	return false
}

func init() {
	rootCmd.AddCommand(runCmd)
}
