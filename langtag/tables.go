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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

const (
	rangeParts          = 2
	maxNumericExpansion = 20000
	maxAlphaExpansion   = 40000
)

// Tables holds the pre-built lookup tables the parser consumes. They are
// derived from the IANA Language Subtag Registry and the ISO 639 code
// tables by external tooling; this package only loads and reads them.
//
// All keys are lowercase subtag (or whole-tag) strings; replacement values
// carry the registry's canonical casing. A Tables value must not be
// mutated once it has been handed to a Parser.
type Tables struct {
	// FileDate is the File-Date of the registry snapshot the tables were
	// derived from. Loading fails without it: data of unknown age is worse
	// than no data.
	FileDate string `json:"fileDate"`
	// Source names the snapshot's origin, free-form.
	Source string `json:"source,omitempty"`

	// TagRemap maps whole grandfathered and deprecated redundant tags to
	// their modern replacement, or to "" when none exists ("i-enochian").
	TagRemap map[string]string `json:"tagRemap,omitempty"`
	// ExtlangRemap maps an extlang subtag to its preferred primary
	// language. The registry guarantees the value equals the subtag.
	ExtlangRemap map[string]string `json:"extlangRemap,omitempty"`
	// LanguageRemap maps a primary language to its preferred replacement:
	// archaic codes, retired ISO 639-3 codes, and 3-to-2-letter
	// simplifications, merged and fully resolved.
	LanguageRemap map[string]string `json:"languageRemap,omitempty"`
	// ScriptRemap, RegionRemap, and VariantRemap map deprecated subtags of
	// the respective kind to their preferred values.
	ScriptRemap  map[string]string `json:"scriptRemap,omitempty"`
	RegionRemap  map[string]string `json:"regionRemap,omitempty"`
	VariantRemap map[string]string `json:"variantRemap,omitempty"`
	// SuppressScript maps a primary language to the script that is
	// redundant for it ("en" to "Latn").
	SuppressScript map[string]string `json:"suppressScript,omitempty"`
	// Macrolanguage maps an individual language to its macrolanguage
	// ("cmn" to "zh"). Canonicalization never applies it; it backs the
	// Macrolanguage and ExtlangForm operations.
	Macrolanguage map[string]string `json:"macrolanguage,omitempty"`

	// Membership sets for validity checking.
	Languages SubtagSet `json:"languages,omitempty"`
	Extlangs  SubtagSet `json:"extlangs,omitempty"`
	Scripts   SubtagSet `json:"scripts,omitempty"`
	Regions   SubtagSet `json:"regions,omitempty"`
	Variants  SubtagSet `json:"variants,omitempty"`
	// ExtensionSubtags is consulted only when non-empty; the registry does
	// not enumerate extension subtags, so the default bundle leaves
	// extensions opaque.
	ExtensionSubtags SubtagSet `json:"extensionSubtags,omitempty"`
}

// LoadTables reads a JSON tables bundle, expands range entries, folds keys
// to lowercase, and returns the frozen Tables. The bundle format is the
// output of the registry derivation tooling; unknown fields are rejected
// so a drifted bundle fails loudly instead of silently losing a table.
func LoadTables(r io.Reader) (*Tables, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	t := &Tables{}
	if err := dec.Decode(t); err != nil {
		return nil, fmt.Errorf("failed to decode tables bundle: %w", err)
	}
	if err := t.normalize(); err != nil {
		return nil, err
	}
	return t, nil
}

// normalize folds map keys to lowercase and replaces nil maps and sets
// with empty ones so lookups never need a nil check.
func (t *Tables) normalize() error {
	if t.FileDate == "" {
		return errors.New("tables bundle has no file date")
	}
	t.TagRemap = foldKeys(t.TagRemap)
	t.ExtlangRemap = foldKeys(t.ExtlangRemap)
	t.LanguageRemap = foldKeys(t.LanguageRemap)
	t.ScriptRemap = foldKeys(t.ScriptRemap)
	t.RegionRemap = foldKeys(t.RegionRemap)
	t.VariantRemap = foldKeys(t.VariantRemap)
	t.SuppressScript = foldKeys(t.SuppressScript)
	t.Macrolanguage = foldKeys(t.Macrolanguage)
	if t.Languages == nil {
		t.Languages = SubtagSet{}
	}
	if t.Extlangs == nil {
		t.Extlangs = SubtagSet{}
	}
	if t.Scripts == nil {
		t.Scripts = SubtagSet{}
	}
	if t.Regions == nil {
		t.Regions = SubtagSet{}
	}
	if t.Variants == nil {
		t.Variants = SubtagSet{}
	}
	if t.ExtensionSubtags == nil {
		t.ExtensionSubtags = SubtagSet{}
	}
	return nil
}

// foldKeys rebuilds a rewrite map with lowercase keys.
func foldKeys(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[strings.ToLower(k)] = v
	}
	return out
}

// SubtagSet is a membership table keyed by lowercase subtag.
type SubtagSet map[string]struct{}

// Contains reports whether the subtag is in the set, case-insensitively.
func (s SubtagSet) Contains(subtag string) bool {
	_, ok := s[strings.ToLower(subtag)]
	return ok
}

// UnmarshalJSON decodes the set from a JSON array of subtags. An entry may
// be a range in the registry's "qaa..qtz" notation, which is expanded into
// its individual members.
func (s *SubtagSet) UnmarshalJSON(data []byte) error {
	var entries []string
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	set := make(SubtagSet, len(entries))
	for _, entry := range entries {
		if strings.Contains(entry, "..") {
			expanded, err := expandRange(entry)
			if err != nil {
				return err
			}
			for _, subtag := range expanded {
				set[subtag] = struct{}{}
			}
			continue
		}
		set[strings.ToLower(entry)] = struct{}{}
	}
	*s = set
	return nil
}

// MarshalJSON encodes the set as a sorted JSON array. Ranges are not
// re-compressed; round-tripping a bundle yields the expanded form.
func (s SubtagSet) MarshalJSON() ([]byte, error) {
	entries := make([]string, 0, len(s))
	for entry := range s {
		entries = append(entries, entry)
	}
	sort.Strings(entries)
	return json.Marshal(entries)
}

// expandRange expands a subtag range into a slice of individual subtags.
func expandRange(rangeStr string) ([]string, error) {
	parts := strings.Split(rangeStr, "..")
	if len(parts) != rangeParts {
		return nil, fmt.Errorf("invalid range format: %s", rangeStr)
	}
	start, end := parts[0], parts[1]

	if len(start) != len(end) || len(start) == 0 {
		return nil, fmt.Errorf("range start/end must have same, non-zero length: %s", rangeStr)
	}

	if isNumeric(start) && isNumeric(end) {
		return expandNumericRange(start, end)
	}
	if isAlphabetic(start) && isAlphabetic(end) {
		return expandAlphabeticRange(start, end)
	}

	return nil, fmt.Errorf("range must be purely alphabetic or purely numeric: %s", rangeStr)
}

// expandNumericRange expands a numeric range (e.g., "001..003").
func expandNumericRange(start, end string) ([]string, error) {
	startNum, err1 := strconv.Atoi(start)
	endNum, err2 := strconv.Atoi(end)
	if err1 != nil || err2 != nil {
		return nil, fmt.Errorf("invalid numeric range: %s..%s", start, end)
	}
	if startNum > endNum {
		return nil, fmt.Errorf("start of range cannot be greater than end: %s..%s", start, end)
	}
	if endNum-startNum > maxNumericExpansion {
		return nil, fmt.Errorf("numeric range is too large to expand: %s..%s", start, end)
	}

	var result []string
	format := fmt.Sprintf("%%0%dd", len(start))
	for i := startNum; i <= endNum; i++ {
		result = append(result, fmt.Sprintf(format, i))
	}
	return result, nil
}

// expandAlphabeticRange expands an alphabetic range (e.g., "qaa..qtz").
func expandAlphabeticRange(start, end string) ([]string, error) {
	current := []byte(strings.ToLower(start))
	endBytes := []byte(strings.ToLower(end))

	if bytes.Compare(current, endBytes) > 0 {
		return nil, fmt.Errorf("start of alphabetic range cannot be greater than end: %s..%s", start, end)
	}

	var result []string
	for {
		result = append(result, string(current))
		if bytes.Equal(current, endBytes) {
			break
		}
		if len(result) > maxAlphaExpansion {
			return nil, fmt.Errorf("alphabetic range is too large to expand: %s..%s", start, end)
		}

		for i := len(current) - 1; i >= 0; i-- {
			current[i]++
			if current[i] <= 'z' {
				break
			}
			current[i] = 'a'
		}
	}
	return result, nil
}
