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
	"encoding/json"
	"fmt"
	"io"

	"github.com/lithammer/dedent"
	"github.com/spf13/cobra"
)

type checkFlags struct {
	level  checkLevel
	format outputFormat
	out    io.Writer
}

// newCheckCmd returns the `langtag check` command.
func newCheckCmd(o *rootOptions, out io.Writer) *cobra.Command {
	flags := &checkFlags{level: levelValid, format: formatText, out: out}

	cmd := &cobra.Command{
		Use:   "check [tag...]",
		Short: "Check language tags for well-formedness and validity",
		Long: dedent.Dedent(`
			Check reports, for each tag, whether it is well-formed (satisfies
			the RFC 5646 grammar) and whether it is valid (well-formed with
			every subtag registered in the IANA Language Subtag Registry).
			A made-up tag like "zz-ZZ" is well-formed but not valid.

			The command exits non-zero when any tag fails the property
			selected with --level.
			`),
		Example: dedent.Dedent(`
			  langtag check en-US zz-ZZ
			  langtag check --level wellformed zz-ZZ`),
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tags, err := o.readTags(cmd, args)
			if err != nil {
				return err
			}
			return runCheck(o, flags, tags)
		},
	}

	addLevelFlag(cmd.Flags(), &flags.level)
	addFormatFlag(cmd.Flags(), &flags.format)
	return cmd
}

type checkResult struct {
	Tag        string `json:"tag"`
	WellFormed bool   `json:"wellFormed"`
	Valid      bool   `json:"valid"`
}

func runCheck(o *rootOptions, flags *checkFlags, tags []string) error {
	results := make([]checkResult, 0, len(tags))
	failed := 0
	for _, tag := range tags {
		res := checkResult{
			Tag:        tag,
			WellFormed: o.parser.IsWellFormed(tag),
			Valid:      o.parser.IsValid(tag),
		}
		results = append(results, res)

		pass := res.WellFormed
		if flags.level == levelValid {
			pass = res.Valid
		}
		if !pass {
			failed++
		}
	}

	if flags.format == formatJSON {
		enc := json.NewEncoder(flags.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else {
		for _, res := range results {
			fmt.Fprintf(flags.out, "%s\twell-formed=%t\tvalid=%t\n", res.Tag, res.WellFormed, res.Valid)
		}
	}

	if failed > 0 {
		word := "well-formed"
		if flags.level == levelValid {
			word = "valid"
		}
		return fmt.Errorf("%d of %d tags are not %s", failed, len(tags), word)
	}
	return nil
}
