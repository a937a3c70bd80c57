// Copyright 2014 Joel Scoble (github:mohae). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mohae/stache/access"
)

// defaultMaxFrameDepth bounds context-stack growth from section nesting
// and list iteration, guarding against runaway recursion on cyclic or
// pathological data without requiring a graph-cycle check.
const defaultMaxFrameDepth = 100000

// PartialLookup resolves a partial by name to its raw template source.
// A miss returns ("", false); the interpreter logs it and emits nothing.
type PartialLookup func(name string) (string, bool)

// Interpreter walks a lexed, whitespace-analyzed token stream and renders
// it against a data value, mutating the stream in place for list-section
// replay and partial splicing (see §4.4, §4.5).
type Interpreter struct {
	tokens        []*Token
	stack         *Stack
	partials      PartialLookup
	delims        Delims
	maxFrameDepth int

	out strings.Builder
}

// NewInterpreter builds an interpreter over tokens for the given root
// data value. delims is the delimiter table the lex used, reused when
// lexing partials; partials resolves {{>name}} lookups.
func NewInterpreter(tokens []*Token, root interface{}, delims Delims, partials PartialLookup) *Interpreter {
	return &Interpreter{
		tokens:        tokens,
		stack:         NewStack(root),
		partials:      partials,
		delims:        delims,
		maxFrameDepth: defaultMaxFrameDepth,
	}
}

// Run walks the token stream to completion and returns the rendered
// output, or an *Error if the frame-depth safety ceiling is exceeded.
func (in *Interpreter) Run() (string, error) {
	cursor := 0
	for cursor < len(in.tokens) {
		t := in.tokens[cursor]
		switch t.Kind {
		case Text, Newline:
			if in.stack.Truthy() {
				in.out.WriteString(t.Value)
			}
			cursor++

		case Tag:
			if in.stack.Truthy() {
				v := in.stack.Resolve(t.Value)
				in.out.WriteString(escapeHTML(access.ToString(v)))
			}
			cursor++

		case TagLiteral, TagLiteralTriple:
			if in.stack.Truthy() {
				v := in.stack.Resolve(t.Value)
				in.out.WriteString(access.ToString(v))
			}
			cursor++

		case SectionOpen:
			next, err := in.openSection(cursor, false)
			if err != nil {
				return "", err
			}
			cursor = next

		case SectionOpenInverted:
			next, err := in.openSection(cursor, true)
			if err != nil {
				return "", err
			}
			cursor = next

		case SectionClose:
			in.stack.Pop()
			if t.Iters > 0 {
				t.Iters--
				cursor = t.ReplayTo
			} else {
				cursor++
			}

		case Partial:
			next := in.splicePartial(cursor)
			cursor = next

		case Comment, Skip, EOF:
			cursor++

		default:
			cursor++
		}
	}
	return in.out.String(), nil
}

// openSection implements §4.4's frame-pushing rule for SectionOpen and
// SectionOpenInverted. It returns the cursor index to resume at.
func (in *Interpreter) openSection(cursor int, inverted bool) (int, error) {
	t := in.tokens[cursor]
	v := in.stack.Resolve(t.Value)

	if inverted {
		truthy := Truthy(v)
		in.stack.Push(Frame{Data: strconv.FormatBool(!truthy), Label: "inverted:" + t.Value})
		if in.stack.Depth() > in.maxFrameDepth {
			return 0, in.depthError(t)
		}
		return cursor + 1, nil
	}

	switch access.TypeOf(v) {
	case access.List:
		return in.openListSection(cursor, v)
	case access.Nil:
		in.stack.Push(Frame{Data: nil, Label: "section:" + t.Value})
	default:
		in.stack.Push(Frame{Data: v, Label: "section:" + t.Value})
	}
	if in.stack.Depth() > in.maxFrameDepth {
		return 0, in.depthError(t)
	}
	return cursor + 1, nil
}

// openListSection implements the list-iteration replay mechanism
// described in §4.4: locate the matching close, delete the body and the
// close for an empty list (so no frame is pushed or popped), or stage replay metadata and push one frame per element in
// reverse order.
func (in *Interpreter) openListSection(cursor int, v interface{}) (int, error) {
	t := in.tokens[cursor]
	closeIdx := in.matchingClose(cursor)
	if closeIdx < 0 {
		return 0, newError(t.Filename, t.Line, t.StartColumn, "interpreter", UnbalancedTags,
			"no matching section close for %q", t.Value)
	}
	length := access.LengthOf(v)
	if length == 0 {
		in.tokens = append(in.tokens[:cursor+1], in.tokens[closeIdx+1:]...)
		return cursor + 1, nil
	}

	// replay_to targets the first body token (cursor+1), not the
	// SectionOpen token itself: every element's frame is pre-staged here,
	// up front, so a replay must resume *inside* the body and consume the
	// next staged frame rather than re-run section-open resolution, which
	// would re-push length frames on every iteration.
	in.tokens[closeIdx].Iters = length - 1
	in.tokens[closeIdx].ReplayTo = cursor + 1

	for i := length - 1; i >= 0; i-- {
		in.stack.Push(Frame{Data: access.IndexAt(v, i), Label: fmt.Sprintf("%s[%d]", t.Value, i)})
	}
	if in.stack.Depth() > in.maxFrameDepth {
		return 0, in.depthError(t)
	}
	return cursor + 1, nil
}

// matchingClose scans forward from a SectionOpen/SectionOpenInverted at
// openIdx for the SectionClose with the same name, honoring nesting of
// same-named sections.
func (in *Interpreter) matchingClose(openIdx int) int {
	name := in.tokens[openIdx].Value
	depth := 0
	for i := openIdx + 1; i < len(in.tokens); i++ {
		t := in.tokens[i]
		switch t.Kind {
		case SectionOpen, SectionOpenInverted:
			if t.Value == name {
				depth++
			}
		case SectionClose:
			if t.Value == name {
				if depth == 0 {
					return i
				}
				depth--
			}
		}
	}
	return -1
}

func (in *Interpreter) depthError(t *Token) error {
	return newError(t.Filename, t.Line, t.StartColumn, "interpreter", FrameDepthExceeded,
		"frame depth exceeded %d while opening %q", in.maxFrameDepth, t.Value)
}

// splicePartial implements §4.5: look the partial up, lex its body under
// the host's delimiter table, re-indent it if the host tag is standalone
// and preceded by an indent prefix, and splice the result in place of the
// Partial token itself. Replacing rather than appending after it matters
// inside a replayed list section: the body tokens it resolves to are
// re-executed fresh against each element's frame the same way any other
// section body is, so the Partial token must not survive to be re-spliced
// on the next replay pass.
func (in *Interpreter) splicePartial(cursor int) int {
	t := in.tokens[cursor]
	if !in.stack.Truthy() {
		return cursor + 1
	}
	if in.partials == nil {
		return cursor + 1
	}
	body, ok := in.partials(t.Value)
	if !ok {
		Logger.Debugf("stache: partial %q not found", t.Value)
		return cursor + 1
	}

	partialTokens, err := Lex(t.Filename, body, in.delims)
	if err != nil {
		Logger.Debugf("stache: partial %q failed to lex: %v", t.Value, err)
		return cursor + 1
	}
	partialTokens = partialTokens[:len(partialTokens)-1] // drop EOF
	AnalyzeWhitespace(partialTokens)

	if IsStandalonePartial(in.tokens, cursor) {
		if prefix := IndentPrefix(in.tokens, cursor); prefix != nil {
			partialTokens = reindent(partialTokens, prefix)
		}
	}

	rest := make([]*Token, len(in.tokens[cursor+1:]))
	copy(rest, in.tokens[cursor+1:])
	in.tokens = append(in.tokens[:cursor], append(partialTokens, rest...)...)
	return cursor
}

// reindent inserts a copy of prefix at the start of every line inside
// tokens after the first, per §4.5 step 3.
func reindent(tokens []*Token, prefix *Token) []*Token {
	out := make([]*Token, 0, len(tokens)*2)
	for i, t := range tokens {
		out = append(out, t)
		if t.Kind == Newline && i != len(tokens)-1 {
			cp := *prefix
			out = append(out, &cp)
		}
	}
	return out
}

func escapeHTML(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
