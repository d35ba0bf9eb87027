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
	"errors"
	"fmt"
	"strings"
)

// Errors that can occur during language tag parsing. Every error returned
// by Parse, Canonicalize, and ExtlangForm is a *ParseError wrapping one of
// these, so callers can branch with errors.Is.
var (
	ErrEmptyInput            = errors.New("the language tag is empty")
	ErrInvalidCharacter      = errors.New("the language tag contains a character that is not a letter, digit, or separator")
	ErrEmptySubtag           = errors.New("a subtag should not be empty")
	ErrMalformedSubtagLength = errors.New("a subtag does not fit the length class of its slot")
	ErrUnexpectedSubtag      = errors.New("a subtag cannot be matched to any remaining slot")
	ErrDuplicateVariant      = errors.New("the same variant subtag appears more than once")
	ErrDuplicateSingleton    = errors.New("the same extension singleton appears more than once")
	ErrEmptyExtension        = errors.New("if an extension subtag is present, it must not be empty")
	ErrEmptyPrivateUse       = errors.New("if the 'x' subtag is present, it must not be empty")
)

// Slot identifies the grammatical position a subtag can occupy within a
// language tag. Slots are consumed strictly left to right.
type Slot int

const (
	SlotLanguage Slot = iota
	SlotExtlang
	SlotScript
	SlotRegion
	SlotVariant
	SlotSingleton
	SlotExtension
	SlotPrivateUse
)

// String returns the human-readable slot name used in diagnostics.
func (s Slot) String() string {
	switch s {
	case SlotLanguage:
		return "language"
	case SlotExtlang:
		return "extended language"
	case SlotScript:
		return "script"
	case SlotRegion:
		return "region"
	case SlotVariant:
		return "variant"
	case SlotSingleton:
		return "singleton"
	case SlotExtension:
		return "extension"
	case SlotPrivateUse:
		return "private-use"
	default:
		return "unknown"
	}
}

// ParseError describes why a language tag failed to parse. It points at the
// offending subtag by byte offset into the original input, so a caller can
// render a precise diagnostic without re-parsing the tag.
type ParseError struct {
	// Err is the error kind, one of the Err* sentinels above.
	Err error
	// Subtag is the offending token with its original casing. It is empty
	// for errors that are not tied to a token, such as ErrEmptyInput.
	Subtag string
	// Position is the zero-based byte offset of the offending token (or
	// character) in the input string.
	Position int
	// Slot is the slot whose length class the subtag failed, for
	// ErrMalformedSubtagLength.
	Slot Slot
	// Expected lists the slots that were still admissible at this position,
	// for ErrUnexpectedSubtag.
	Expected []Slot
}

// Error formats the failure with the offending subtag, its position, and
// the slot context when available.
func (e *ParseError) Error() string {
	switch {
	case errors.Is(e.Err, ErrEmptyInput):
		return "language tag: empty input"
	case errors.Is(e.Err, ErrInvalidCharacter):
		return fmt.Sprintf("language tag: invalid character %q at offset %d", e.Subtag, e.Position)
	case errors.Is(e.Err, ErrEmptySubtag):
		return fmt.Sprintf("language tag: empty subtag at offset %d", e.Position)
	case errors.Is(e.Err, ErrMalformedSubtagLength):
		return fmt.Sprintf("language tag: subtag %q at offset %d does not fit the %s slot",
			e.Subtag, e.Position, e.Slot)
	case errors.Is(e.Err, ErrUnexpectedSubtag):
		return fmt.Sprintf("language tag: unexpected subtag %q at offset %d (admissible slots: %s)",
			e.Subtag, e.Position, slotList(e.Expected))
	case errors.Is(e.Err, ErrDuplicateVariant):
		return fmt.Sprintf("language tag: duplicate variant %q at offset %d", e.Subtag, e.Position)
	case errors.Is(e.Err, ErrDuplicateSingleton):
		return fmt.Sprintf("language tag: duplicate extension singleton %q at offset %d", e.Subtag, e.Position)
	case errors.Is(e.Err, ErrEmptyExtension):
		return fmt.Sprintf("language tag: extension %q at offset %d has no subtags", e.Subtag, e.Position)
	case errors.Is(e.Err, ErrEmptyPrivateUse):
		return fmt.Sprintf("language tag: private-use sequence at offset %d has no subtags", e.Position)
	default:
		return fmt.Sprintf("language tag: %v", e.Err)
	}
}

// Unwrap returns the sentinel error kind, enabling errors.Is checks.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// slotList joins slot names for the UnexpectedSubtag diagnostic.
func slotList(slots []Slot) string {
	if len(slots) == 0 {
		return "none"
	}
	names := make([]string, len(slots))
	for i, s := range slots {
		names[i] = s.String()
	}
	return strings.Join(names, ", ")
}

// errAt builds a ParseError for a token-bound failure.
func errAt(kind error, subtag string, pos int) *ParseError {
	return &ParseError{Err: kind, Subtag: subtag, Position: pos}
}

// errMalformed builds a ParseError for a token that fails the length class
// of the only slot it could fill.
func errMalformed(subtag string, pos int, slot Slot) *ParseError {
	return &ParseError{Err: ErrMalformedSubtagLength, Subtag: subtag, Position: pos, Slot: slot}
}

// errUnexpected builds a ParseError for a token that fits none of the slots
// still open at its position.
func errUnexpected(subtag string, pos int, expected []Slot) *ParseError {
	return &ParseError{Err: ErrUnexpectedSubtag, Subtag: subtag, Position: pos, Expected: expected}
}
