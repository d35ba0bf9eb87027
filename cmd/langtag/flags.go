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

	"github.com/spf13/pflag"
)

// outputFormat is an enum flag selecting between human-readable and JSON
// output.
type outputFormat string

const (
	formatText outputFormat = "text"
	formatJSON outputFormat = "json"
)

func (f *outputFormat) String() string {
	return string(*f)
}

func (f *outputFormat) Set(value string) error {
	switch outputFormat(value) {
	case formatText, formatJSON:
		*f = outputFormat(value)
		return nil
	}
	return fmt.Errorf("must be one of %q or %q", formatText, formatJSON)
}

func (f *outputFormat) Type() string {
	return "format"
}

func addFormatFlag(fs *pflag.FlagSet, f *outputFormat) {
	fs.VarP(f, "format", "o", "Output format, one of: text, json")
}

// checkLevel is an enum flag selecting which property the check command
// enforces.
type checkLevel string

const (
	levelWellFormed checkLevel = "wellformed"
	levelValid      checkLevel = "valid"
)

func (l *checkLevel) String() string {
	return string(*l)
}

func (l *checkLevel) Set(value string) error {
	switch checkLevel(value) {
	case levelWellFormed, levelValid:
		*l = checkLevel(value)
		return nil
	}
	return fmt.Errorf("must be one of %q or %q", levelWellFormed, levelValid)
}

func (l *checkLevel) Type() string {
	return "level"
}

func addLevelFlag(fs *pflag.FlagSet, l *checkLevel) {
	fs.Var(l, "level", "Property to enforce, one of: wellformed, valid")
}
