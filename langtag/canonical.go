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
	"sort"
	"strings"
	"unicode"
)

// canonicalize applies the canonicalization passes from RFC 5646 Sec 4.5
// to a successful match. The pass order is fixed: extlang collapsing must
// run before the language remap (the collapsed language may itself be
// mapped), and both must run before script suppression (the suppressed
// script belongs to the rewritten language). Unknown subtags pass through
// untouched, so canonicalization cannot fail on anything the grammar
// accepted; the only error path is a replacement string from the tables
// that does not itself parse.
func (p *Parser) canonicalize(r *matchRun) (*matchRun, *ParseError) {
	if r.grandfathered != "" {
		replacement := p.tables.TagRemap[strings.ToLower(r.grandfathered)]
		if replacement == "" {
			// No modern equivalent. The canonical form is the tag itself
			// with registry casing restored.
			r.grandfathered = formatTagByPosition(r.grandfathered)
			return r, nil
		}
		tokens, perr := lexTag(replacement)
		if perr != nil {
			return nil, perr
		}
		rr, perr := matchGeneric(tokens)
		if perr != nil {
			return nil, perr
		}
		r = rr
	}

	p.collapseExtlangs(r)
	p.remapLanguage(r)
	p.remapSubtags(r)
	p.suppressScript(r)
	r.normalizeCase()
	r.sortExtensions()
	return r, nil
}

// collapseExtlangs replaces the primary language with the first extlang's
// preferred language value and drops the extlang field entirely. Every
// registered extlang's preferred value is the extlang subtag itself, so
// "zh-cmn" collapses to "cmn". An unregistered extlang leaves the tag
// untouched.
func (p *Parser) collapseExtlangs(r *matchRun) {
	if len(r.extlangs) == 0 {
		return
	}
	preferred, ok := p.tables.ExtlangRemap[r.extlangs[0]]
	if !ok || preferred == "" {
		return
	}
	r.language = strings.ToLower(preferred)
	r.extlangs = nil
}

// remapLanguage substitutes the primary language with its preferred value:
// archaic codes ("iw" to "he"), retired ISO 639-3 codes, and 3-letter
// codes with a 2-letter equivalent ("eng" to "en"). Table targets are
// fully resolved, so a single lookup suffices.
func (p *Parser) remapLanguage(r *matchRun) {
	if r.language == "" {
		return
	}
	if preferred, ok := p.tables.LanguageRemap[r.language]; ok && preferred != "" {
		r.language = strings.ToLower(preferred)
	}
}

// remapSubtags substitutes deprecated script, region, and variant subtags
// with their preferred values ("BU" to "MM", "Qaai" to "Zinh", "heploc" to
// "alalc97"). A variant substitution can collide with a variant already
// present; the duplicate is dropped, keeping the first occurrence.
func (p *Parser) remapSubtags(r *matchRun) {
	if r.script != "" {
		if preferred, ok := p.tables.ScriptRemap[strings.ToLower(r.script)]; ok && preferred != "" {
			r.script = preferred
		}
	}
	if r.region != "" {
		if preferred, ok := p.tables.RegionRemap[strings.ToLower(r.region)]; ok && preferred != "" {
			r.region = preferred
		}
	}
	if len(r.variants) == 0 {
		return
	}
	for i, v := range r.variants {
		if preferred, ok := p.tables.VariantRemap[strings.ToLower(v)]; ok && preferred != "" {
			r.variants[i] = strings.ToLower(preferred)
		}
	}
	if len(r.variants) > 1 {
		seen := make(map[string]struct{}, len(r.variants))
		kept := r.variants[:0]
		for _, v := range r.variants {
			lower := strings.ToLower(v)
			if _, dup := seen[lower]; dup {
				continue
			}
			seen[lower] = struct{}{}
			kept = append(kept, v)
		}
		r.variants = kept
	}
}

// suppressScript drops the script subtag when it is the default script of
// the primary language ("en-Latn" to "en"). It runs after the language
// rewrites so the lookup sees the final primary language.
func (p *Parser) suppressScript(r *matchRun) {
	if r.script == "" {
		return
	}
	if suppress, ok := p.tables.SuppressScript[r.language]; ok && strings.EqualFold(suppress, r.script) {
		r.script = ""
	}
}

// normalizeCase restores the canonical case conventions after table
// substitutions: language and extlangs lowercase, script titlecase, region
// uppercase, everything after the region lowercase.
func (r *matchRun) normalizeCase() {
	r.language = strings.ToLower(r.language)
	for i, e := range r.extlangs {
		r.extlangs[i] = strings.ToLower(e)
	}
	r.script = titleCase(r.script)
	r.region = strings.ToUpper(r.region)
	for i, v := range r.variants {
		r.variants[i] = strings.ToLower(v)
	}
	for i := range r.extensions {
		r.extensions[i].Singleton = unicode.ToLower(r.extensions[i].Singleton)
		r.extensions[i].Value = strings.ToLower(r.extensions[i].Value)
	}
	for i, s := range r.privateUse {
		r.privateUse[i] = strings.ToLower(s)
	}
}

// sortExtensions orders extension blocks by ascending singleton. Variants
// are deliberately left in input order: their relative order is
// meaningful ("sl-rozaj-biske" names a sub-dialect of the rozaj variant)
// and RFC 5646 defines no canonical variant order.
func (r *matchRun) sortExtensions() {
	if len(r.extensions) > 1 {
		sort.Slice(r.extensions, func(i, j int) bool {
			return r.extensions[i].Singleton < r.extensions[j].Singleton
		})
	}
}

// formatTagByPosition applies the registry casing convention to a tag by
// subtag position alone: first subtag lowercase, interior 2-letter subtags
// uppercase, interior 4-letter subtags titlecase, and everything after a
// singleton lowercase. For every grandfathered and redundant tag this
// reproduces the registry's own casing ("en-GB-oed", "sgn-BE-FR").
func formatTagByPosition(tag string) string {
	var b strings.Builder
	b.Grow(len(tag))
	afterSingleton := false
	for i, subtag := range strings.Split(tag, "-") {
		if i > 0 {
			b.WriteByte('-')
		}
		switch {
		case i == 0 || afterSingleton:
			b.WriteString(strings.ToLower(subtag))
		case len(subtag) == regionAlphaLen:
			b.WriteString(strings.ToUpper(subtag))
		case len(subtag) == scriptLen:
			writeTitleCase(&b, subtag)
		default:
			b.WriteString(strings.ToLower(subtag))
		}
		if len(subtag) == 1 {
			afterSingleton = true
		}
	}
	return b.String()
}
