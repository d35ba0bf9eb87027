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

	"github.com/lithammer/dedent"
	"github.com/spf13/cobra"
)

// newTablesCmd returns the `langtag tables` command.
func newTablesCmd(o *rootOptions, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "Show provenance of the active tables bundle",
		Long: dedent.Dedent(`
			Tables prints the provenance of the registry tables the other
			commands run against: the File-Date of the registry snapshot the
			bundle was derived from, its source, and the size of each lookup
			table. Combine with --tables to inspect an alternate bundle.
			`),
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTables(o, out)
		},
	}
}

func runTables(o *rootOptions, out io.Writer) error {
	t := o.parser.Tables()
	fmt.Fprintf(out, "file date:\t%s\n", t.FileDate)
	if t.Source != "" {
		fmt.Fprintf(out, "source:\t%s\n", t.Source)
	}
	fmt.Fprintf(out, "languages:\t%d\n", len(t.Languages))
	fmt.Fprintf(out, "extlangs:\t%d\n", len(t.Extlangs))
	fmt.Fprintf(out, "scripts:\t%d\n", len(t.Scripts))
	fmt.Fprintf(out, "regions:\t%d\n", len(t.Regions))
	fmt.Fprintf(out, "variants:\t%d\n", len(t.Variants))
	fmt.Fprintf(out, "tag remaps:\t%d\n", len(t.TagRemap))
	fmt.Fprintf(out, "language remaps:\t%d\n", len(t.LanguageRemap))
	fmt.Fprintf(out, "suppress scripts:\t%d\n", len(t.SuppressScript))
	fmt.Fprintf(out, "macrolanguages:\t%d\n", len(t.Macrolanguage))
	return nil
}
