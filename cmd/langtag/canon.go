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

type canonFlags struct {
	format outputFormat
	out    io.Writer
}

// newCanonCmd returns the `langtag canon` command.
func newCanonCmd(o *rootOptions, out io.Writer) *cobra.Command {
	flags := &canonFlags{format: formatText, out: out}

	cmd := &cobra.Command{
		Use:   "canon [tag...]",
		Short: "Canonicalize language tags",
		Long: dedent.Dedent(`
			Canonicalize rewrites each tag to its canonical form as defined by
			RFC 5646 section 4.5: grandfathered and deprecated forms are
			replaced ("i-klingon" becomes "tlh", "en-BU" becomes "en-MM"),
			extended language forms are collapsed ("zh-cmn-Hans" becomes
			"cmn-Hans"), default scripts are suppressed ("en-Latn-US" becomes
			"en-US"), case is normalized, and extension blocks are sorted.

			Tags the registry does not know pass through with their case
			normalized. A tag that is not well-formed is reported on the error
			stream and makes the command exit non-zero.
			`),
		Example: dedent.Dedent(`
			  langtag canon zh-cmn-Hans-CN en-latn-us
			  echo sr_latn_rs | langtag canon`),
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tags, err := o.readTags(cmd, args)
			if err != nil {
				return err
			}
			return runCanon(o, flags, tags)
		},
	}

	addFormatFlag(cmd.Flags(), &flags.format)
	return cmd
}

type canonResult struct {
	Input     string `json:"input"`
	Canonical string `json:"canonical,omitempty"`
	Error     string `json:"error,omitempty"`
}

func runCanon(o *rootOptions, flags *canonFlags, tags []string) error {
	results := make([]canonResult, 0, len(tags))
	failed := 0
	for _, tag := range tags {
		lt, err := o.parser.Canonicalize(tag)
		if err != nil {
			failed++
			results = append(results, canonResult{Input: tag, Error: err.Error()})
			o.log.WithError(err).WithField("tag", tag).Warn("tag does not canonicalize")
			continue
		}
		results = append(results, canonResult{Input: tag, Canonical: lt.String()})
	}

	if flags.format == formatJSON {
		enc := json.NewEncoder(flags.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else {
		for _, res := range results {
			if res.Error != "" {
				continue
			}
			fmt.Fprintln(flags.out, res.Canonical)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d tags failed to canonicalize", failed, len(tags))
	}
	return nil
}
