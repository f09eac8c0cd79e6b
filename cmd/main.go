/*
Copyright 2024 Ereal Labs Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ereal-labs/ereal"
	"github.com/ereal-labs/ereal/config"
)

// Ereal represents the CLI application, encapsulating the root Cobra command.
type Ereal struct {
	cmd *cobra.Command
}

// erealInstance holds the engine instance and its configuration, shared with
// every subcommand through the persistent pre-run hook.
type erealInstance struct {
	engine *ereal.Ereal
	cnf    *config.Configuration
}

// recoverPanic handles any panics during program execution and logs the error.
func recoverPanic() {
	if rec := recover(); rec != nil {
		logrus.Error(rec)
		os.Exit(1)
	}
}

// preRun loads the configuration and initializes the engine before any
// subcommand executes.
func preRun(app *erealInstance, configFile *string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := config.InitConfig(*configFile)
		if err != nil {
			log.Fatal("error loading config", err)
		}

		cnf, err := config.Fetch()
		if err != nil {
			return err
		}

		engine, err := ereal.NewEreal(cnf)
		if err != nil {
			log.Fatal(err)
		}

		app.engine = engine
		app.cnf = cnf

		return nil
	}
}

// NewCLI creates the command-line interface for the ereal engine.
func NewCLI() *Ereal {
	var configFile string
	e := &erealInstance{}

	var rootCmd = &cobra.Command{
		Use:   "ereal",
		Short: "Compliance-aware value ledger and payment engine",
		Run:   func(cmd *cobra.Command, args []string) {},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "./ereal.json", "Configuration file for the engine")

	rootCmd.PersistentPreRunE = preRun(e, &configFile)

	rootCmd.AddCommand(serverCommands(e))
	rootCmd.AddCommand(configCommands())

	return &Ereal{cmd: rootCmd}
}

func (w Ereal) executeCLI() {
	if err := w.cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	defer recoverPanic()

	cli := NewCLI()
	cli.executeCLI()
}
