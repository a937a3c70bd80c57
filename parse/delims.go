// Copyright 2014 Joel Scoble (github:mohae). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

// Delims is the delimiter table the lexer is parameterized on. The
// default table carries the canonical Mustache sigils; a {{=...=}}
// set-delimiter tag produces a new table derived from a caller-supplied
// open/close pair (see newDelims).
type Delims struct {
	Open  string // {{
	Close string // }}

	OpenTriple  string // {{{
	CloseTriple string // }}}

	OpenSection   string // {{#
	OpenInverted  string // {{^
	CloseSection  string // {{/
	OpenUnescaped string // {{&
	OpenComment   string // {{!
	OpenPartial   string // {{>
	OpenSetDelim  string // {{=
	CloseSetDelim string // =}}
}

// DefaultDelims returns the fixed {{ / }} Mustache delimiter table.
func DefaultDelims() Delims {
	return newDelims("{{", "}}")
}

// NewDelims derives a full delimiter table from an open/close pair, for
// callers that want a Template to start under non-default delimiters.
func NewDelims(open, close string) Delims {
	return newDelims(open, close)
}

// newDelims derives a full sigil table from an open/close pair, as used
// both for the built-in defaults and for a {{=open close=}} delimiter
// change. Per the Mustache set-delimiter convention, triple-mustache
// unescaping is only available under the default {{ }} delimiters;
// under custom delimiters "&" is the only unescaped-variable spelling.
func newDelims(open, close string) Delims {
	d := Delims{
		Open:          open,
		Close:         close,
		OpenSection:   open + "#",
		OpenInverted:  open + "^",
		CloseSection:  open + "/",
		OpenUnescaped: open + "&",
		OpenComment:   open + "!",
		OpenPartial:   open + ">",
		OpenSetDelim:  open + "=",
		CloseSetDelim: "=" + close,
	}
	if open == "{{" && close == "}}" {
		d.OpenTriple = "{{{"
		d.CloseTriple = "}}}"
	}
	return d
}
