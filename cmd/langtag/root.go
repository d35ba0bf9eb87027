/*
Copyright 2025 Langtag Authors

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
	"io"
	"os"

	"github.com/lithammer/dedent"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/calyptra/bcp47/langtag"
)

// rootOptions carries the global flags and the parser every subcommand
// runs against. The parser is built once in complete, after flag parsing.
type rootOptions struct {
	tablesPath string
	verbose    bool
	fold       bool

	log    *logrus.Logger
	parser *langtag.Parser
}

// newRootCmd returns the root command for the langtag tool. Results are
// written to out; diagnostics go to the command's error stream.
func newRootCmd(out io.Writer) *cobra.Command {
	o := &rootOptions{log: logrus.New()}

	cmd := &cobra.Command{
		Use:   "langtag",
		Short: "Parse, validate, and canonicalize BCP 47 language tags",
		Long: dedent.Dedent(`
			langtag works with IETF BCP 47 (RFC 5646) language tags such as
			"en-US", "zh-cmn-Hans-CN", or "sr-Latn-RS": it decomposes them into
			their subtags, checks them for well-formedness and registry
			validity, and rewrites deprecated forms to their canonical modern
			equivalents.

			Subcommands operate on their arguments, or read one tag per line
			from standard input when no arguments are given. Registry data
			comes from an embedded snapshot of the IANA Language Subtag
			Registry; pass --tables to use a different bundle.
			`),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return o.complete(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&o.tablesPath, "tables", "", "Path to a JSON tables bundle to use instead of the embedded snapshot")
	pf.BoolVarP(&o.verbose, "verbose", "v", false, "Enable debug logging")
	pf.BoolVar(&o.fold, "fold", false, "Apply Unicode NFKC folding to input before parsing, for copy-pasted full-width text")

	cmd.AddCommand(newCanonCmd(o, out))
	cmd.AddCommand(newCheckCmd(o, out))
	cmd.AddCommand(newPartsCmd(o, out))
	cmd.AddCommand(newTablesCmd(o, out))

	return cmd
}

// complete finishes the global options after flag parsing: it points the
// logger at the command's error stream and builds the parser from the
// requested tables bundle.
func (o *rootOptions) complete(cmd *cobra.Command) error {
	o.log.SetOutput(cmd.ErrOrStderr())
	o.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if o.verbose {
		o.log.SetLevel(logrus.DebugLevel)
	}

	if o.tablesPath == "" {
		parser, err := langtag.NewParser()
		if err != nil {
			return err
		}
		o.parser = parser
		o.log.Debug("using embedded tables bundle")
		return nil
	}

	f, err := os.Open(o.tablesPath)
	if err != nil {
		return fmt.Errorf("failed to open tables bundle: %w", err)
	}
	defer f.Close()

	tables, err := langtag.LoadTables(f)
	if err != nil {
		return fmt.Errorf("failed to load tables bundle %q: %w", o.tablesPath, err)
	}
	parser, err := langtag.NewParserWithTables(tables)
	if err != nil {
		return err
	}
	o.parser = parser
	o.log.WithFields(logrus.Fields{
		"path":     o.tablesPath,
		"fileDate": tables.FileDate,
	}).Debug("loaded tables bundle")
	return nil
}
