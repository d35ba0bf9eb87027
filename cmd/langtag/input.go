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
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"
)

// readTags returns the tags a subcommand should operate on: the positional
// arguments when present, otherwise one tag per line from standard input,
// skipping blank lines. With --fold every tag is NFKC-normalized first, so
// full-width and other compatibility characters parse as their ASCII
// equivalents.
func (o *rootOptions) readTags(cmd *cobra.Command, args []string) ([]string, error) {
	tags := args
	if len(tags) == 0 {
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			tags = append(tags, line)
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read tags from stdin: %w", err)
		}
	}
	if o.fold {
		folded := make([]string, len(tags))
		for i, tag := range tags {
			folded[i] = norm.NFKC.String(tag)
		}
		tags = folded
	}
	return tags, nil
}
