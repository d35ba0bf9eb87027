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

// Package langtag parses, validates, and canonicalizes IETF BCP 47
// language tags as specified in RFC 5646.
//
// The package separates well-formedness (pure syntax) from validity
// (membership in the IANA Language Subtag Registry) and from
// canonicalization (rewriting deprecated subtags to their preferred
// values). Each is available independently, so a caller that only needs
// syntax checking never pays for registry lookups.
//
// # Key Features
//
//   - Well-Formedness: Parse decomposes a tag into its language, extended
//     language, script, region, variant, extension, and private-use
//     components using the RFC 5646 grammar, including grandfathered tags
//     that do not fit the compositional syntax.
//   - Canonicalization: Canonicalize normalizes a tag to its canonical
//     form, replacing deprecated tags and subtags, collapsing extended
//     language forms, suppressing default scripts, normalizing case, and
//     sorting extension blocks.
//   - Precise Diagnostics: Every parse failure is a *ParseError carrying
//     the offending subtag, its byte offset, and the slots that were still
//     admissible, wrapping a sentinel that callers can test with errors.Is.
//   - Pluggable Data: All registry-derived knowledge lives in a Tables
//     value injected at construction. A curated snapshot is embedded, so
//     the package works out of the box, and NewParserWithTables accepts a
//     newer or trimmed bundle without recompiling.
package langtag

import (
	"encoding/json"
	"errors"
	"strings"
)

// Parser is a reusable BCP 47 parser bound to one immutable Tables value.
// It is safe for concurrent use and should be created once and shared.
type Parser struct {
	tables *Tables
}

// NewParserWithTables returns a Parser backed by the given tables, for
// callers that load their own registry snapshot. Most callers want
// NewParser, which uses the embedded tables.
func NewParserWithTables(tables *Tables) (*Parser, error) {
	if tables == nil {
		return nil, errors.New("langtag: tables must not be nil")
	}
	if tables.FileDate == "" {
		return nil, errors.New("langtag: tables have no file date")
	}
	return &Parser{tables: tables}, nil
}

// Tables returns the tables the parser was built with. The returned value
// is shared, not copied, and must not be mutated.
func (p *Parser) Tables() *Tables {
	return p.tables
}

// Parse checks that a tag is well-formed according to RFC 5646 syntax and
// decomposes it into its components. It does not consult the registry
// beyond the whole-tag grandfathered lookup, so unknown-but-well-formed
// subtags are accepted; use IsValid or Canonicalize for registry checks.
//
// Subtags are case-normalized to their conventional form as they are
// matched (language lowercase, script titlecase, region uppercase), and
// underscore separators are rewritten to hyphens, but no subtag is
// replaced. Grandfathered tags such as "i-klingon" are kept as single,
// un-decomposed units with their input casing.
func (p *Parser) Parse(tag string) (LanguageTag, error) {
	r, perr := p.match(tag)
	if perr != nil {
		return LanguageTag{}, perr
	}
	return r.finish(), nil
}

// Canonicalize parses a tag and normalizes it to its canonical form as per
// RFC 5646 section 4.5: grandfathered and deprecated tags and subtags are
// replaced by their preferred values, extended language forms are collapsed
// ("zh-cmn-Hans" to "cmn-Hans"), default scripts are suppressed
// ("en-Latn-US" to "en-US"), case is normalized, and extension blocks are
// sorted by singleton. Canonicalization is idempotent.
//
// Subtags the registry does not know are carried through unchanged, so a
// well-formed tag always canonicalizes without error.
func (p *Parser) Canonicalize(tag string) (LanguageTag, error) {
	r, perr := p.match(tag)
	if perr != nil {
		return LanguageTag{}, perr
	}
	r, perr = p.canonicalize(r)
	if perr != nil {
		return LanguageTag{}, perr
	}
	return r.finish(), nil
}

// IsWellFormed reports whether the tag satisfies the RFC 5646 syntax. It
// never consults registry membership.
func (p *Parser) IsWellFormed(tag string) bool {
	_, perr := p.match(tag)
	return perr == nil
}

// IsValid reports whether the tag is well-formed and every registry-bound
// subtag is registered: the primary language, extended languages, script,
// region, and variants must all appear in the tables. Deprecated subtags
// are registered and therefore valid. Private-use subtags are never
// checked, and extension subtags are checked only when the tables
// enumerate them. A malformed tag is simply invalid, never an error.
func (p *Parser) IsValid(tag string) bool {
	r, perr := p.match(tag)
	if perr != nil {
		return false
	}
	return p.valid(r)
}

// valid checks registry membership for every subtag the tables cover.
func (p *Parser) valid(r *matchRun) bool {
	if r.grandfathered != "" {
		// Grandfathered tags are registered as whole tags; matching one
		// is the membership check.
		return true
	}
	if r.language == "" {
		// Private-use-only tags have no registry-bound subtags.
		return true
	}
	if !p.tables.Languages.Contains(r.language) {
		return false
	}
	for _, extlang := range r.extlangs {
		if !p.tables.Extlangs.Contains(extlang) {
			return false
		}
	}
	if r.script != "" && !p.tables.Scripts.Contains(r.script) {
		return false
	}
	if r.region != "" && !p.tables.Regions.Contains(r.region) {
		return false
	}
	for _, variant := range r.variants {
		if !p.tables.Variants.Contains(variant) {
			return false
		}
	}
	if len(p.tables.ExtensionSubtags) > 0 {
		for _, ext := range r.extensions {
			for _, subtag := range ext.Subtags() {
				if !p.tables.ExtensionSubtags.Contains(subtag) {
					return false
				}
			}
		}
	}
	return true
}

// ExtlangForm converts a canonical language tag into its "extlang form" as
// described in RFC 5646 section 4.5: if the primary language is a
// registered extended language subtag, its macrolanguage is prepended.
// The canonical tag "hak-CN" becomes "zh-hak-CN".
//
// A tag that is not convertible (its primary language is not an extlang,
// or it is grandfathered or private-use-only, or it already carries an
// extlang) is returned unchanged. The input should be canonical, such as a
// tag returned by Canonicalize.
func (p *Parser) ExtlangForm(lt LanguageTag) (LanguageTag, error) {
	if lt.language == "" || lt.grandfathered != "" || len(lt.extlangs) > 0 {
		return lt, nil
	}
	if !p.tables.Extlangs.Contains(lt.language) {
		return lt, nil
	}
	macro, ok := p.tables.Macrolanguage[lt.language]
	if !ok {
		return lt, nil
	}
	return p.Parse(macro + "-" + lt.tag)
}

// Macrolanguage returns the macrolanguage that encompasses the given
// primary language subtag ("cmn" belongs to "zh"), or false when the
// registry records none.
func (p *Parser) Macrolanguage(language string) (string, bool) {
	macro, ok := p.tables.Macrolanguage[strings.ToLower(language)]
	return macro, ok
}

// LanguageTag is a decomposed, immutable RFC 5646 language tag as returned
// by Parse or Canonicalize.
type LanguageTag struct {
	tag           string
	language      string
	extlangs      []string
	script        string
	region        string
	variants      []string
	extensions    []Extension
	privateUse    []string
	grandfathered string
}

// String returns the tag string. It implements fmt.Stringer.
func (lt *LanguageTag) String() string {
	return lt.tag
}

// Language returns the primary language subtag in lowercase. It reports
// false for private-use-only and grandfathered tags, which have none.
func (lt *LanguageTag) Language() (string, bool) {
	if lt.language == "" {
		return "", false
	}
	return lt.language, true
}

// Extlangs returns the extended language subtags in lowercase, in order.
func (lt *LanguageTag) Extlangs() []string {
	if len(lt.extlangs) == 0 {
		return nil
	}
	out := make([]string, len(lt.extlangs))
	copy(out, lt.extlangs)
	return out
}

// Script returns the script subtag in titlecase ("Latn").
func (lt *LanguageTag) Script() (string, bool) {
	if lt.script == "" {
		return "", false
	}
	return lt.script, true
}

// Region returns the region subtag, uppercase for the two-letter form
// ("US") and as three digits for the numeric form ("419").
func (lt *LanguageTag) Region() (string, bool) {
	if lt.region == "" {
		return "", false
	}
	return lt.region, true
}

// Variants returns the variant subtags in lowercase. Their order is the
// input order; it carries meaning and is never changed.
func (lt *LanguageTag) Variants() []string {
	if len(lt.variants) == 0 {
		return nil
	}
	out := make([]string, len(lt.variants))
	copy(out, lt.variants)
	return out
}

// Extensions returns the extension blocks, one per singleton.
func (lt *LanguageTag) Extensions() []Extension {
	if len(lt.extensions) == 0 {
		return nil
	}
	out := make([]Extension, len(lt.extensions))
	copy(out, lt.extensions)
	return out
}

// PrivateUse returns the subtags following the "x" singleton, in lowercase.
func (lt *LanguageTag) PrivateUse() []string {
	if len(lt.privateUse) == 0 {
		return nil
	}
	out := make([]string, len(lt.privateUse))
	copy(out, lt.privateUse)
	return out
}

// IsGrandfathered reports whether the tag is a registered whole tag that
// predates RFC 4646 and is not decomposed into subtag components.
func (lt *LanguageTag) IsGrandfathered() bool {
	return lt.grandfathered != ""
}

// IsPrivateUseOnly reports whether the whole tag is a private-use sequence
// with no language component, such as "x-whatever".
func (lt *LanguageTag) IsPrivateUseOnly() bool {
	return lt.language == "" && lt.grandfathered == "" && len(lt.privateUse) > 0
}

// Extension is a single extension block, e.g. "u-co-phonebk".
type Extension struct {
	// Singleton is the lowercase block identifier ('u', 't', ...).
	Singleton rune
	// Value is the block's subtags joined by hyphens ("co-phonebk").
	Value string
}

// Subtags returns the block's subtags as a slice.
func (e Extension) Subtags() []string {
	if e.Value == "" {
		return nil
	}
	return strings.Split(e.Value, "-")
}

// String returns the block as it appears in a tag, singleton included.
func (e Extension) String() string {
	if e.Value == "" {
		return string(e.Singleton)
	}
	return string(e.Singleton) + "-" + e.Value
}

// MarshalJSON implements json.Marshaler. The tag marshals as a JSON
// string.
func (lt *LanguageTag) MarshalJSON() ([]byte, error) {
	return json.Marshal(lt.tag)
}

// UnmarshalJSON implements json.Unmarshaler. The tag is parsed and
// canonicalized with the embedded default tables; an empty JSON string
// yields the zero LanguageTag.
//
// To unmarshal against custom tables, decode into a string and parse it
// with your own Parser instead.
func (lt *LanguageTag) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	if s == "" {
		*lt = LanguageTag{}
		return nil
	}

	p, err := NewParser()
	if err != nil {
		return err
	}

	parsed, err := p.Canonicalize(s)
	if err != nil {
		return err
	}
	*lt = parsed
	return nil
}
