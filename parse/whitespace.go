// Copyright 2014 Joel Scoble (github:mohae). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

// AnalyzeWhitespace runs the standalone-line pre-pass over a freshly lexed
// token stream, flipping the Kind of Newline and blank Text tokens that lie
// on a standalone structural line to Skip. It must run before any list
// expansion or partial inlining, since both of those mutate the stream in
// ways that would otherwise confuse the per-line classification.
func AnalyzeWhitespace(tokens []*Token) {
	lines := groupByLine(tokens)
	for _, idxs := range lines {
		interp, allBlank, hasPartial, structural := lineShape(tokens, idxs)
		for _, i := range idxs {
			t := tokens[i]
			switch t.Kind {
			case Newline:
				if len(idxs) > 1 && allBlank && !interp && (structural >= 1 || hasPartial) {
					t.Kind = Skip
				}
			case Text:
				if isBlankText(t.Value) && allBlank && !interp && !hasPartial && structural == 1 {
					t.Kind = Skip
				}
			}
		}
	}
}

// IsStandalonePartial reports whether the Partial token at i sits alone on
// its line per the same whitespace rule used for comments and sections
// (§4.2), with the partial itself counted toward the structural-tag tally.
// Unlike Newline/Text, a standalone Partial is never marked Skip: its
// standalone-ness is consumed directly by the partial inliner.
func IsStandalonePartial(tokens []*Token, i int) bool {
	if tokens[i].Kind != Partial {
		return false
	}
	idxs := lineOf(tokens, i)
	interp, allBlank, _, structural := lineShape(tokens, idxs)
	return allBlank && !interp && structural == 0
}

// IndentPrefix returns the blank-text token immediately preceding a
// standalone Partial on the same line, or nil if there isn't one.
func IndentPrefix(tokens []*Token, i int) *Token {
	if i == 0 {
		return nil
	}
	prev := tokens[i-1]
	if prev.Line != tokens[i].Line {
		return nil
	}
	if prev.Kind == Text && isBlankText(prev.Value) {
		return prev
	}
	return nil
}

func isBlankText(v string) bool {
	for _, r := range v {
		switch r {
		case ' ', '\t', '\r':
		default:
			return false
		}
	}
	return true
}

func groupByLine(tokens []*Token) map[int][]int {
	lines := make(map[int][]int)
	for i, t := range tokens {
		if t.Kind == EOF || t.Kind == Error {
			continue
		}
		lines[t.Line] = append(lines[t.Line], i)
	}
	return lines
}

// lineOf returns the indices of the contiguous run of tokens around i that
// share i's line number.
func lineOf(tokens []*Token, i int) []int {
	line := tokens[i].Line
	lo := i
	for lo > 0 && tokens[lo-1].Line == line {
		lo--
	}
	var idxs []int
	for j := lo; j < len(tokens) && tokens[j].Line == line; j++ {
		if t := tokens[j]; t.Kind != EOF && t.Kind != Error {
			idxs = append(idxs, j)
		}
	}
	return idxs
}

// lineShape scans the tokens on one line and returns whether it carries an
// interpolation tag, whether every Text token on it is blank, whether it
// carries a Partial, and the count of other structural tags (S in §4.2).
func lineShape(tokens []*Token, idxs []int) (interp, allBlank, hasPartial bool, structural int) {
	allBlank = true
	for _, i := range idxs {
		t := tokens[i]
		switch t.Kind {
		case Tag, TagLiteral, TagLiteralTriple:
			interp = true
		case Partial:
			hasPartial = true
		case SectionOpen, SectionOpenInverted, SectionClose, Comment:
			structural++
		case Text:
			if !isBlankText(t.Value) {
				allBlank = false
			}
		}
	}
	return
}
