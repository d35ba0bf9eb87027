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

package langtag

import (
	"bytes"
	_ "embed" // Note the blank import for go:embed
	"sync"
)

//go:embed tables.json
var embeddedTablesData []byte

var (
	defaultTablesOnce sync.Once
	defaultTables     *Tables
	defaultTablesErr  error
)

// DefaultTables returns the embedded tables bundle, decoded once and
// shared by every caller. The returned value must not be mutated.
func DefaultTables() (*Tables, error) {
	defaultTablesOnce.Do(func() {
		defaultTables, defaultTablesErr = LoadTables(bytes.NewReader(embeddedTablesData))
	})
	return defaultTables, defaultTablesErr
}

// NewParser creates a parser backed by the embedded tables. The embedded
// bundle is decoded on the first call and shared afterwards, so repeated
// calls are cheap; a single parser can still be reused freely, as it is
// safe for concurrent use.
func NewParser() (*Parser, error) {
	tables, err := DefaultTables()
	if err != nil {
		return nil, err
	}
	return &Parser{tables: tables}, nil
}
