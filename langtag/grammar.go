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
	"strings"
	"unicode"
)

// BCP 47 length classes for subtag slots.
const (
	maxSubtagLen        = 8 // Maximum length of any subtag.
	maxExtlangs         = 3 // The grammar admits up to three extended language subtags.
	extlangLen          = 3 // An extended language subtag is always 3 letters.
	scriptLen           = 4 // A script subtag is always 4 letters.
	regionAlphaLen      = 2 // An alphabetic region subtag is always 2 letters.
	regionNumericLen    = 3 // A numeric region subtag is always 3 digits.
	minPrimaryLangLen   = 2 // Minimum length of a primary language subtag.
	shortPrimaryLangLen = 3 // Max length of a primary language that can be followed by an extlang.
	minVariantLenAlpha  = 5 // Min length of a variant starting with a letter.
	minVariantLenDigit  = 4 // Min length of a variant starting with a digit.
	minExtensionLen     = 2 // Min length of a subtag inside an extension block.
)

// matchState represents the current position in the slot machine while
// matching. Slots are consumed strictly left to right; the state can only
// advance, which is what rules out backtracking.
type matchState int

const (
	stateLanguage     matchState = iota // Expecting the primary language subtag.
	stateAfterLang                      // After a 2-3 letter primary language; extlang still open.
	stateAfterExtlang                   // Extlang slots closed; expecting script, region, etc.
	stateAfterScript                    // After a script; expecting region, variant, etc.
	stateAfterRegion                    // After a region; expecting variant, etc.
	stateInVariant                      // In a sequence of one or more variants.
	stateInExtension                    // In an extension block (after a singleton).
	stateInPrivateUse                   // In a private-use sequence (after 'x').
)

// matchRun holds the state of a single grammar match over a token stream.
// The subtag fields are stored in their canonical case as they are
// consumed: language and extlangs lowercase, script titlecase, region
// uppercase, everything after the region lowercase.
type matchRun struct {
	language      string
	extlangs      []string
	script        string
	region        string
	variants      []string
	extensions    []Extension
	privateUse    []string
	grandfathered string

	state          matchState
	seenVariants   map[string]struct{}
	seenSingletons map[rune]struct{}
	openSingleton  token // singleton whose block is open and still empty
	blockOpen      bool  // an extension block awaits its first subtag
}

// match lexes and grammar-matches a tag. The whole input is first checked
// against the grandfathered/redundant table: those tags bypass the generic
// grammar because the irregular ones do not conform to it.
func (p *Parser) match(input string) (*matchRun, *ParseError) {
	tokens, perr := lexTag(input)
	if perr != nil {
		return nil, perr
	}
	if _, ok := p.tables.TagRemap[lowerJoinTokens(tokens)]; ok {
		return &matchRun{grandfathered: joinTokens(tokens)}, nil
	}
	return matchGeneric(tokens)
}

// matchGeneric runs the slot machine over the tokens without consulting the
// grandfathered table. Canonicalization uses it directly when re-parsing a
// replacement tag.
func matchGeneric(tokens []token) (*matchRun, *ParseError) {
	r := &matchRun{}
	if strings.EqualFold(tokens[0].text, "x") {
		if err := r.matchPrivateUseOnly(tokens); err != nil {
			return nil, err
		}
		return r, nil
	}
	for _, tok := range tokens {
		var err *ParseError
		switch r.state {
		case stateLanguage:
			err = r.matchLanguage(tok)
		case stateInExtension:
			err = r.matchExtensionSubtag(tok)
		case stateInPrivateUse:
			err = r.matchPrivateUseSubtag(tok)
		default:
			err = r.matchInterior(tok)
		}
		if err != nil {
			return nil, err
		}
	}
	if err := r.finishMatch(); err != nil {
		return nil, err
	}
	return r, nil
}

// matchLanguage consumes the required primary language subtag: 2-8 letters
// (2-3 ISO-style, exactly 4 reserved, 5-8 registered). Only a 2-3 letter
// language admits extended language subtags after it.
func (r *matchRun) matchLanguage(tok token) *ParseError {
	if len(tok.text) < minPrimaryLangLen || len(tok.text) > maxSubtagLen || !tok.alphabetic() {
		return errMalformed(tok.text, tok.start, SlotLanguage)
	}
	r.language = strings.ToLower(tok.text)
	if len(tok.text) <= shortPrimaryLangLen {
		r.state = stateAfterLang
	} else {
		r.state = stateAfterExtlang
	}
	return nil
}

// matchInterior dispatches a token between the primary language and any
// extension or private-use sequence. Slots are tried in grammar order;
// the first slot whose length class accepts the token wins, and the match
// never backs up to reconsider.
func (r *matchRun) matchInterior(tok token) *ParseError {
	if len(tok.text) == 1 {
		return r.matchSingleton(tok)
	}
	if r.tryExtlang(tok) {
		return nil
	}
	if r.tryScript(tok) {
		return nil
	}
	if r.tryRegion(tok) {
		return nil
	}
	if ok, err := r.tryVariant(tok); ok || err != nil {
		return err
	}
	return errUnexpected(tok.text, tok.start, r.openSlots())
}

// tryExtlang attempts to consume the token as an extended language subtag.
func (r *matchRun) tryExtlang(tok token) bool {
	if r.state != stateAfterLang || len(tok.text) != extlangLen || !tok.alphabetic() {
		return false
	}
	r.extlangs = append(r.extlangs, strings.ToLower(tok.text))
	if len(r.extlangs) == maxExtlangs {
		r.state = stateAfterExtlang
	}
	return true
}

// tryScript attempts to consume the token as a script subtag.
func (r *matchRun) tryScript(tok token) bool {
	if r.state > stateAfterExtlang || len(tok.text) != scriptLen || !tok.alphabetic() {
		return false
	}
	r.script = titleCase(tok.text)
	r.state = stateAfterScript
	return true
}

// tryRegion attempts to consume the token as a region subtag.
func (r *matchRun) tryRegion(tok token) bool {
	isRegionFmt := (len(tok.text) == regionAlphaLen && tok.alphabetic()) ||
		(len(tok.text) == regionNumericLen && tok.numeric())
	if r.state > stateAfterScript || !isRegionFmt {
		return false
	}
	r.region = strings.ToUpper(tok.text)
	r.state = stateAfterRegion
	return true
}

// tryVariant attempts to consume the token as a variant subtag. Variants
// are 5-8 alphanumerics, or exactly 4 starting with a digit; each one is
// checked case-insensitively against the variants already consumed.
func (r *matchRun) tryVariant(tok token) (bool, *ParseError) {
	startsWithLetter := len(tok.text) >= minVariantLenAlpha && isAlpha(tok.text[0])
	startsWithDigit := len(tok.text) >= minVariantLenDigit && isDigit(tok.text[0])
	if len(tok.text) > maxSubtagLen || !(startsWithLetter || startsWithDigit) || !isAlphanumeric(tok.text) {
		return false, nil
	}
	lower := strings.ToLower(tok.text)
	if _, seen := r.seenVariants[lower]; seen {
		return false, errAt(ErrDuplicateVariant, tok.text, tok.start)
	}
	if r.seenVariants == nil {
		r.seenVariants = make(map[string]struct{})
	}
	r.seenVariants[lower] = struct{}{}
	r.variants = append(r.variants, lower)
	r.state = stateInVariant
	return true, nil
}

// matchSingleton consumes a single-character subtag, which closes the slots
// to its left and opens an extension block or the private-use sequence.
func (r *matchRun) matchSingleton(tok token) *ParseError {
	if r.blockOpen {
		return errAt(ErrEmptyExtension, r.openSingleton.text, r.openSingleton.start)
	}
	s := unicode.ToLower(rune(tok.text[0]))
	if s == 'x' {
		r.state = stateInPrivateUse
		r.openSingleton = tok
		return nil
	}
	if _, ok := r.seenSingletons[s]; ok {
		return errAt(ErrDuplicateSingleton, tok.text, tok.start)
	}
	if r.seenSingletons == nil {
		r.seenSingletons = make(map[rune]struct{})
	}
	r.seenSingletons[s] = struct{}{}
	r.extensions = append(r.extensions, Extension{Singleton: s})
	r.openSingleton = tok
	r.blockOpen = true
	r.state = stateInExtension
	return nil
}

// matchExtensionSubtag consumes a token inside an extension block. A new
// length-1 token always starts the next block.
func (r *matchRun) matchExtensionSubtag(tok token) *ParseError {
	if len(tok.text) == 1 {
		return r.matchSingleton(tok)
	}
	if len(tok.text) > maxSubtagLen {
		return errMalformed(tok.text, tok.start, SlotExtension)
	}
	last := &r.extensions[len(r.extensions)-1]
	if last.Value == "" {
		last.Value = strings.ToLower(tok.text)
	} else {
		last.Value += "-" + strings.ToLower(tok.text)
	}
	r.blockOpen = false
	return nil
}

// matchPrivateUseSubtag consumes a token after the 'x' singleton. Everything
// through the end of the input belongs to the private-use sequence.
func (r *matchRun) matchPrivateUseSubtag(tok token) *ParseError {
	if len(tok.text) > maxSubtagLen {
		return errMalformed(tok.text, tok.start, SlotPrivateUse)
	}
	r.privateUse = append(r.privateUse, strings.ToLower(tok.text))
	return nil
}

// matchPrivateUseOnly handles tags whose first subtag is "x": the whole tag
// is a private-use sequence with no language component.
func (r *matchRun) matchPrivateUseOnly(tokens []token) *ParseError {
	r.state = stateInPrivateUse
	r.openSingleton = tokens[0]
	for _, tok := range tokens[1:] {
		if err := r.matchPrivateUseSubtag(tok); err != nil {
			return err
		}
	}
	return r.finishMatch()
}

// finishMatch rejects matches that ended with an open, empty block, such as
// a lone trailing singleton ("en-a") or a bare "x".
func (r *matchRun) finishMatch() *ParseError {
	if r.blockOpen {
		return errAt(ErrEmptyExtension, r.openSingleton.text, r.openSingleton.start)
	}
	if r.state == stateInPrivateUse && len(r.privateUse) == 0 {
		return errAt(ErrEmptyPrivateUse, r.openSingleton.text, r.openSingleton.start)
	}
	return nil
}

// openSlots lists the slots still admissible at the current state, for the
// unexpected-subtag diagnostic.
func (r *matchRun) openSlots() []Slot {
	var slots []Slot
	if r.state == stateAfterLang && len(r.extlangs) < maxExtlangs {
		slots = append(slots, SlotExtlang)
	}
	if r.state <= stateAfterExtlang {
		slots = append(slots, SlotScript)
	}
	if r.state <= stateAfterScript {
		slots = append(slots, SlotRegion)
	}
	return append(slots, SlotVariant, SlotSingleton)
}

// render reconstructs the tag string from the matched components. The
// fields already carry canonical case, so rendering is a plain join.
func (r *matchRun) render() string {
	if r.grandfathered != "" {
		return r.grandfathered
	}
	var b strings.Builder
	if r.language == "" {
		b.WriteByte('x')
		for _, subtag := range r.privateUse {
			b.WriteByte('-')
			b.WriteString(subtag)
		}
		return b.String()
	}

	b.WriteString(r.language)
	for _, subtag := range r.extlangs {
		b.WriteByte('-')
		b.WriteString(subtag)
	}
	if r.script != "" {
		b.WriteByte('-')
		b.WriteString(r.script)
	}
	if r.region != "" {
		b.WriteByte('-')
		b.WriteString(r.region)
	}
	for _, subtag := range r.variants {
		b.WriteByte('-')
		b.WriteString(subtag)
	}
	for _, ext := range r.extensions {
		b.WriteByte('-')
		b.WriteRune(ext.Singleton)
		if ext.Value != "" {
			b.WriteByte('-')
			b.WriteString(ext.Value)
		}
	}
	if len(r.privateUse) > 0 {
		b.WriteString("-x")
		for _, subtag := range r.privateUse {
			b.WriteByte('-')
			b.WriteString(subtag)
		}
	}
	return b.String()
}

// finish freezes the run into an immutable LanguageTag value.
func (r *matchRun) finish() LanguageTag {
	return LanguageTag{
		tag:           r.render(),
		language:      r.language,
		extlangs:      r.extlangs,
		script:        r.script,
		region:        r.region,
		variants:      r.variants,
		extensions:    r.extensions,
		privateUse:    r.privateUse,
		grandfathered: r.grandfathered,
	}
}

// joinTokens reassembles tokens with canonical hyphen separators, keeping
// the original casing.
func joinTokens(tokens []token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = tok.text
	}
	return strings.Join(parts, "-")
}

// lowerJoinTokens builds the lowercase whole-tag lookup key.
func lowerJoinTokens(tokens []token) string {
	return strings.ToLower(joinTokens(tokens))
}
