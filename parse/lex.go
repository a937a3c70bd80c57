// Copyright 2014 Joel Scoble (github:mohae). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// This code is based on code originally written by The Go Authors.
// Their copyright notice immediately follows this one.

// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"fmt"
	"strings"
)

type stateFn func(*lexer) stateFn

// lexer scans a Mustache template into a flat Token stream. It's a
// goroutine-driven state machine in the style of text/template's lexer:
// each stateFn consumes some input and returns the next state to enter,
// or nil to stop the run loop. Delimiter matching is driven entirely by
// l.delims so that a {{=...=}} tag can retarget every sigil mid-scan by
// just swapping the table out (see lexSetDelim).
type lexer struct {
	name   string // template name, used for error reports
	input  string // the full template text being scanned
	delims Delims

	pos   int // current byte offset
	start int // start byte offset of the token being built

	line      int // current line (1-based)
	col       int // current column (1-based)
	startLine int // line at which the current token started
	startCol  int // column at which the current token started

	tokens    chan *Token
	errored   bool
	errReason Reason
}

// lex starts a new lexer goroutine over input using delims (DefaultDelims
// if the zero value is passed) and returns it; tokens are retrieved one
// at a time with nextToken.
func lex(name, input string, delims Delims) *lexer {
	if delims.Open == "" {
		delims = DefaultDelims()
	}
	l := &lexer{
		name:      name,
		input:     input,
		delims:    delims,
		line:      1,
		col:       1,
		startLine: 1,
		startCol:  1,
		tokens:    make(chan *Token, 2),
	}
	go l.run()
	return l
}

// Lex tokenizes input in one shot and returns the collected token slice,
// or an *Error if a structural lex failure occurred.
func Lex(name, input string, delims Delims) ([]*Token, error) {
	l := lex(name, input, delims)
	var toks []*Token
	for {
		t := l.nextToken()
		toks = append(toks, t)
		if t.Kind == EOF {
			break
		}
		if t.Kind == Error {
			return nil, newError(name, t.Line, t.StartColumn, "lexer", l.errReason, "%s", t.Value)
		}
	}
	if err := validateBalance(name, toks); err != nil {
		return nil, err
	}
	return toks, nil
}

// validateBalance enforces the invariant that every SectionOpen/
// SectionOpenInverted has a matching later SectionClose with identical
// value, and that no SectionClose is left dangling.
func validateBalance(name string, toks []*Token) error {
	type open struct {
		value string
		line  int
		col   int
	}
	var stack []open
	for _, t := range toks {
		switch t.Kind {
		case SectionOpen, SectionOpenInverted:
			stack = append(stack, open{t.Value, t.Line, t.StartColumn})
		case SectionClose:
			if len(stack) == 0 || stack[len(stack)-1].value != t.Value {
				return newError(name, t.Line, t.StartColumn, "lexer", UnbalancedTags,
					"section close %q has no matching open", t.Value)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return newError(name, top.line, top.col, "lexer", UnbalancedTags,
			"section %q has no matching close", top.value)
	}
	return nil
}

func (l *lexer) run() {
	for state := lexText; state != nil; {
		state = state(l)
	}
	close(l.tokens)
}

func (l *lexer) nextToken() *Token {
	t, ok := <-l.tokens
	if !ok {
		return &Token{Kind: EOF, Filename: l.name, Line: l.line}
	}
	return t
}

// advance moves pos forward by n bytes, tracking line/col as it goes.
func (l *lexer) advance(n int) {
	for i := 0; i < n; i++ {
		if l.input[l.pos+i] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
	}
	l.pos += n
}

func (l *lexer) hasPrefix(s string) bool {
	return strings.HasPrefix(l.input[l.pos:], s)
}

func (l *lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// value returns the raw substring of input covered by the token being built.
func (l *lexer) value() string {
	return l.input[l.start:l.pos]
}

// markStart records the current position as the start of the next token.
func (l *lexer) markStart() {
	l.start = l.pos
	l.startLine = l.line
	l.startCol = l.col
}

// emitRaw emits a token carrying the raw (unstripped) span from start to pos.
func (l *lexer) emitRaw(k Kind) {
	l.tokens <- &Token{
		Filename:    l.name,
		Kind:        k,
		Value:       l.value(),
		Line:        l.startLine,
		StartColumn: l.startCol,
		EndColumn:   l.col,
	}
	l.markStart()
}

// emitTag emits a tag-kind token with interior ASCII spaces/tabs stripped
// from its value, so "{{ name }}" and "{{name}}" are equivalent lookup keys.
func (l *lexer) emitTag(k Kind) {
	v := stripInteriorSpaces(l.value())
	l.tokens <- &Token{
		Filename:    l.name,
		Kind:        k,
		Value:       v,
		Line:        l.startLine,
		StartColumn: l.startCol,
		EndColumn:   l.col,
	}
	l.markStart()
}

func stripInteriorSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, s)
}

func (l *lexer) errorf(format string, args ...interface{}) stateFn {
	return l.errorfReason(UnclosedTag, format, args...)
}

func (l *lexer) errorfReason(reason Reason, format string, args ...interface{}) stateFn {
	l.tokens <- &Token{
		Kind:        Error,
		Filename:    l.name,
		Value:       fmt.Sprintf(format, args...),
		Line:        l.startLine,
		StartColumn: l.startCol,
	}
	l.errored = true
	l.errReason = reason
	return nil
}

// lexText is the top-level state: it looks for the next tag opener or a
// raw newline and dispatches accordingly, accumulating everything else as
// Text.
func lexText(l *lexer) stateFn {
	for {
		if l.atEOF() {
			if l.pos > l.start {
				l.emitRaw(Text)
			}
			l.emitRaw(EOF)
			return nil
		}

		if l.input[l.pos] == '\n' {
			if l.pos > l.start {
				l.emitRaw(Text)
			}
			l.advance(1)
			l.emitRaw(Newline)
			continue
		}

		if l.delims.OpenTriple != "" && l.hasPrefix(l.delims.OpenTriple) {
			if l.pos > l.start {
				l.emitRaw(Text)
			}
			return lexTripleTag
		}
		if l.delims.OpenComment != "" && l.hasPrefix(l.delims.OpenComment) {
			if l.pos > l.start {
				l.emitRaw(Text)
			}
			return lexComment
		}
		if l.hasPrefix(l.delims.OpenSection) {
			if l.pos > l.start {
				l.emitRaw(Text)
			}
			return lexNamedTag(l.delims.OpenSection, SectionOpen, "section")
		}
		if l.hasPrefix(l.delims.OpenInverted) {
			if l.pos > l.start {
				l.emitRaw(Text)
			}
			return lexNamedTag(l.delims.OpenInverted, SectionOpenInverted, "inverted section")
		}
		if l.hasPrefix(l.delims.CloseSection) {
			if l.pos > l.start {
				l.emitRaw(Text)
			}
			return lexNamedTag(l.delims.CloseSection, SectionClose, "section close")
		}
		if l.hasPrefix(l.delims.OpenUnescaped) {
			if l.pos > l.start {
				l.emitRaw(Text)
			}
			return lexNamedTag(l.delims.OpenUnescaped, TagLiteral, "unescaped variable")
		}
		if l.hasPrefix(l.delims.OpenPartial) {
			if l.pos > l.start {
				l.emitRaw(Text)
			}
			return lexNamedTag(l.delims.OpenPartial, Partial, "partial")
		}
		if l.hasPrefix(l.delims.OpenSetDelim) {
			if l.pos > l.start {
				l.emitRaw(Text)
			}
			return lexSetDelim
		}
		if l.hasPrefix(l.delims.Open) {
			if l.pos > l.start {
				l.emitRaw(Text)
			}
			return lexNamedTag(l.delims.Open, Tag, "variable")
		}

		l.advance(1)
	}
}

// lexTripleTag lexes {{{ name }}}, the unescaped-triple-mustache form.
func lexTripleTag(l *lexer) stateFn {
	l.advance(len(l.delims.OpenTriple))
	l.markStart()
	i := strings.Index(l.input[l.pos:], l.delims.CloseTriple)
	if i < 0 {
		return l.errorf("unclosed triple mustache tag")
	}
	l.advance(i)
	l.emitTag(TagLiteralTriple)
	l.advance(len(l.delims.CloseTriple))
	l.markStart()
	return lexText
}

// lexComment lexes {{! ... }}, which may itself span multiple lines; no
// Newline tokens are emitted for newlines embedded in a comment's body.
func lexComment(l *lexer) stateFn {
	l.advance(len(l.delims.OpenComment))
	l.markStart()
	i := strings.Index(l.input[l.pos:], l.delims.Close)
	if i < 0 {
		return l.errorf("unclosed comment tag")
	}
	l.advance(i)
	l.emitTag(Comment)
	l.advance(len(l.delims.Close))
	l.markStart()
	return lexText
}

// lexNamedTag returns a stateFn that lexes any tag of the form
// open name close, emitting a single token of kind k whose value is the
// (space-stripped) name.
func lexNamedTag(open string, k Kind, what string) stateFn {
	return func(l *lexer) stateFn {
		l.advance(len(open))
		l.markStart()
		i := strings.Index(l.input[l.pos:], l.delims.Close)
		if i < 0 {
			return l.errorf("unclosed %s tag", what)
		}
		l.advance(i)
		l.emitTag(k)
		l.advance(len(l.delims.Close))
		l.markStart()
		return lexText
	}
}

// lexSetDelim handles {{=newOpen newClose=}}. The new table is installed
// on the lexer itself so every subsequent dispatch in lexText uses it; no
// token is emitted for the set-delimiter tag itself (it's pure lexer
// state, invisible to the whitespace analyzer and interpreter).
func lexSetDelim(l *lexer) stateFn {
	l.advance(len(l.delims.OpenSetDelim))
	closeSig := l.delims.CloseSetDelim
	end := strings.Index(l.input[l.pos:], closeSig)
	if end < 0 {
		return l.errorf("unclosed set-delimiter tag")
	}
	body := strings.TrimSpace(l.input[l.pos : l.pos+end])
	fields := strings.Fields(body)
	if len(fields) != 2 {
		return l.errorfReason(MalformedSetDelim, "malformed set-delimiter tag %q: expected exactly two delimiters", body)
	}
	l.advance(end + len(closeSig))
	l.delims = newDelims(fields[0], fields[1])
	l.markStart()
	return lexText
}
