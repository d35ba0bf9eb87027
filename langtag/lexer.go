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

// token is a single subtag candidate cut out of the input string. It keeps
// the original casing and its byte offset; the grammar assigns the semantic
// role later.
type token struct {
	text  string
	start int
}

// alphabetic reports whether the token consists only of ASCII letters.
func (t token) alphabetic() bool { return isAlphabetic(t.text) }

// numeric reports whether the token consists only of ASCII digits.
func (t token) numeric() bool { return isNumeric(t.text) }

// end returns the byte offset one past the token.
func (t token) end() int { return t.start + len(t.text) }

// lexTag splits a raw tag string into subtag tokens. Subtags are separated
// by '-' or '_'; any other non-alphanumeric character is rejected. A
// leading or trailing separator, or two adjacent separators, produce an
// empty-subtag error at the offending offset.
func lexTag(input string) ([]token, *ParseError) {
	if input == "" {
		return nil, &ParseError{Err: ErrEmptyInput}
	}

	// As per RFC 5646 Sec 2.1, only US-ASCII alphanumeric chars and
	// hyphens may appear; the underscore is tolerated as a separator.
	for i, r := range input {
		if !isTagRune(r) {
			return nil, errAt(ErrInvalidCharacter, string(r), i)
		}
	}

	var tokens []token
	start := 0
	for i := 0; i <= len(input); i++ {
		if i < len(input) && !isSeparator(input[i]) {
			continue
		}
		if i == start {
			return nil, errAt(ErrEmptySubtag, "", i)
		}
		tokens = append(tokens, token{text: input[start:i], start: start})
		start = i + 1
	}
	return tokens, nil
}
