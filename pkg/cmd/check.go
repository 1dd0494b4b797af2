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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check script.adastra",
	Short: "analyze an Ad Astra script without running it.",
	Long:  "Parse and analyze a script, printing every diagnostic up to --depth without compiling or executing it.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}

		reg := newRegistry()
		mod := readModule(args[0], reg)

		issues, err := mod.Diagnostics(GetInt(cmd, "depth"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		printDiagnostics(args[0], issues)

		if hasErrors(issues) {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Int("depth", 3, "deepest diagnostic tier to report (1=parse, 2=local semantics, 3=type flow)")
}
