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
	"strings"

	"github.com/lithammer/dedent"
	"github.com/spf13/cobra"

	"github.com/calyptra/bcp47/langtag"
)

type partsFlags struct {
	format outputFormat
	out    io.Writer
}

// newPartsCmd returns the `langtag parts` command.
func newPartsCmd(o *rootOptions, out io.Writer) *cobra.Command {
	flags := &partsFlags{format: formatText, out: out}

	cmd := &cobra.Command{
		Use:   "parts [tag...]",
		Short: "Decompose language tags into their subtags",
		Long: dedent.Dedent(`
			Parts splits each tag into its components: primary language,
			extended language subtags, script, region, variants, extension
			blocks, and private-use subtags. The tag is parsed as given, with
			only its case normalized; use the canon command to rewrite
			deprecated forms first.

			Grandfathered tags such as "i-klingon" are registered as whole
			tags and have no components.
			`),
		Example: dedent.Dedent(`
			  langtag parts zh-cmn-Hans-CN
			  langtag parts -o json sl-rozaj-biske`),
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tags, err := o.readTags(cmd, args)
			if err != nil {
				return err
			}
			return runParts(o, flags, tags)
		},
	}

	addFormatFlag(cmd.Flags(), &flags.format)
	return cmd
}

type tagParts struct {
	Tag           string   `json:"tag"`
	Language      string   `json:"language,omitempty"`
	Extlangs      []string `json:"extlangs,omitempty"`
	Script        string   `json:"script,omitempty"`
	Region        string   `json:"region,omitempty"`
	Variants      []string `json:"variants,omitempty"`
	Extensions    []string `json:"extensions,omitempty"`
	PrivateUse    []string `json:"privateUse,omitempty"`
	Grandfathered bool     `json:"grandfathered,omitempty"`
}

func decompose(lt langtag.LanguageTag) tagParts {
	parts := tagParts{
		Tag:           lt.String(),
		Grandfathered: lt.IsGrandfathered(),
		Extlangs:      lt.Extlangs(),
		Variants:      lt.Variants(),
		PrivateUse:    lt.PrivateUse(),
	}
	if language, ok := lt.Language(); ok {
		parts.Language = language
	}
	if script, ok := lt.Script(); ok {
		parts.Script = script
	}
	if region, ok := lt.Region(); ok {
		parts.Region = region
	}
	for _, ext := range lt.Extensions() {
		parts.Extensions = append(parts.Extensions, ext.String())
	}
	return parts
}

func runParts(o *rootOptions, flags *partsFlags, tags []string) error {
	results := make([]tagParts, 0, len(tags))
	failed := 0
	for _, tag := range tags {
		lt, err := o.parser.Parse(tag)
		if err != nil {
			failed++
			o.log.WithError(err).WithField("tag", tag).Warn("tag does not parse")
			continue
		}
		results = append(results, decompose(lt))
	}

	if flags.format == formatJSON {
		enc := json.NewEncoder(flags.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else {
		for i, parts := range results {
			if i > 0 {
				fmt.Fprintln(flags.out)
			}
			writeParts(flags.out, parts)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d tags failed to parse", failed, len(tags))
	}
	return nil
}

func writeParts(w io.Writer, parts tagParts) {
	fmt.Fprintf(w, "tag:\t%s\n", parts.Tag)
	if parts.Grandfathered {
		fmt.Fprintf(w, "grandfathered:\ttrue\n")
		return
	}
	if parts.Language != "" {
		fmt.Fprintf(w, "language:\t%s\n", parts.Language)
	}
	if len(parts.Extlangs) > 0 {
		fmt.Fprintf(w, "extlangs:\t%s\n", strings.Join(parts.Extlangs, ", "))
	}
	if parts.Script != "" {
		fmt.Fprintf(w, "script:\t%s\n", parts.Script)
	}
	if parts.Region != "" {
		fmt.Fprintf(w, "region:\t%s\n", parts.Region)
	}
	if len(parts.Variants) > 0 {
		fmt.Fprintf(w, "variants:\t%s\n", strings.Join(parts.Variants, ", "))
	}
	if len(parts.Extensions) > 0 {
		fmt.Fprintf(w, "extensions:\t%s\n", strings.Join(parts.Extensions, ", "))
	}
	if len(parts.PrivateUse) > 0 {
		fmt.Fprintf(w, "private use:\t%s\n", strings.Join(parts.PrivateUse, ", "))
	}
}
