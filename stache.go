// Copyright 2014 Joel Scoble (github:mohae). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// This code is based on code originally written by The Go Authors.
// Their copyright notice immediately follows this one.

// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stache is a Mustache template renderer built around a flat,
// mutable token stream rather than a recursive parse tree: sections are
// rendered by rewinding the interpreter's cursor back over the already-
// lexed tokens instead of re-walking a tree, and partials are spliced
// into that same stream at interpretation time.
package stache

import (
	"context"
	"fmt"

	"github.com/mohae/stache/parse"
)

// Template is a parsed Mustache template ready to be rendered against
// arbitrary data. A Template is safe to Render repeatedly and
// concurrently: each Render re-lexes the source and interprets a fresh
// token copy, since interpretation mutates token state in place.
type Template struct {
	name   string
	source string
	delims parse.Delims

	partials map[string]string
}

// Option configures a Template at construction time.
type Option func(*Template)

// Name sets the template's name, used in error reports and log messages.
func Name(name string) Option {
	return func(t *Template) { t.name = name }
}

// Partial registers a named partial template, made available to
// {{>name}} tags during rendering.
func Partial(name, source string) Option {
	return func(t *Template) {
		if t.partials == nil {
			t.partials = make(map[string]string)
		}
		t.partials[name] = source
	}
}

// Partials registers a batch of named partials at once.
func Partials(m map[string]string) Option {
	return func(t *Template) {
		if t.partials == nil {
			t.partials = make(map[string]string, len(m))
		}
		for k, v := range m {
			t.partials[k] = v
		}
	}
}

// Delimiters overrides the default {{ }} delimiter pair the template
// starts with; a {{=...=}} tag in the source can still change it further.
func Delimiters(open, close string) Option {
	return func(t *Template) { t.delims = parse.NewDelims(open, close) }
}

// New constructs a Template from source, applying opts in order.
func New(source string, opts ...Option) *Template {
	t := &Template{
		name:   "template",
		source: source,
		delims: parse.DefaultDelims(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Parse is an alias for New, for callers who think of building a
// Template as a parse step; it does no eager lexing, since lexing
// happens fresh on every Render call.
func Parse(source string, opts ...Option) *Template {
	return New(source, opts...)
}

// AddPartial registers a single named partial on an existing Template.
func (t *Template) AddPartial(name, source string) {
	if t.partials == nil {
		t.partials = make(map[string]string)
	}
	t.partials[name] = source
}

// Render lexes, whitespace-analyzes, and interprets the template against
// data, returning the rendered output. It returns ctx.Err() if ctx is
// already done on entry; otherwise the only errors are a structural
// *parse.Error from lexing (UnbalancedTags, UnclosedTag, MalformedSetDelim)
// or from interpreting (FrameDepthExceeded); every other anomaly
// (missing names, missing partials, type mismatches) degrades silently
// to empty-string rendering of the offending tag, per design.
func (t *Template) Render(ctx context.Context, data interface{}) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	tokens, err := parse.Lex(t.name, t.source, t.delims)
	if err != nil {
		parse.Logger.Errorf("stache: %s: lex error: %v", t.name, err)
		return "", err
	}
	parse.AnalyzeWhitespace(tokens)

	lookup := parse.PartialLookup(nil)
	if t.partials != nil {
		lookup = func(name string) (string, bool) {
			s, ok := t.partials[name]
			return s, ok
		}
	}

	in := parse.NewInterpreter(tokens, data, t.delims, lookup)
	out, err := in.Run()
	if err != nil {
		parse.Logger.Errorf("stache: %s: render error: %v", t.name, err)
		return "", err
	}
	return out, nil
}

// Render is the package-level convenience entry point: it builds a
// one-shot Template from source and renders it against data.
func Render(ctx context.Context, source string, data interface{}, opts ...Option) (string, error) {
	return New(source, opts...).Render(ctx, data)
}

// MustRender is like Render but panics on any error Render returns. Useful
// for tests and static templates known to be well-formed.
func MustRender(ctx context.Context, source string, data interface{}, opts ...Option) string {
	out, err := Render(ctx, source, data, opts...)
	if err != nil {
		panic(fmt.Sprintf("stache: MustRender: %v", err))
	}
	return out
}
