// Copyright 2014 Joel Scoble (github:mohae). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import "testing"

// collect gathers every token the lexer emits for input, under the
// default delimiter table.
func collect(name, input string) []*Token {
	l := lex(name, input, DefaultDelims())
	var toks []*Token
	for {
		t := l.nextToken()
		toks = append(toks, t)
		if t.Kind == EOF || t.Kind == Error {
			break
		}
	}
	return toks
}

type kv struct {
	kind  Kind
	value string
}

func kinds(toks []*Token) []kv {
	out := make([]kv, len(toks))
	for i, t := range toks {
		out[i] = kv{t.Kind, t.Value}
	}
	return out
}

func equalKinds(a, b []kv) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

type lexTest struct {
	name  string
	input string
	want  []kv
}

var lexTests = []lexTest{
	{"empty", "", []kv{{EOF, ""}}},
	{"text only", "hello world", []kv{
		{Text, "hello world"},
		{EOF, ""},
	}},
	{"variable", "hi {{name}}!", []kv{
		{Text, "hi "},
		{Tag, "name"},
		{Text, "!"},
		{EOF, ""},
	}},
	{"variable with interior spaces", "{{ name }}", []kv{
		{Tag, "name"},
		{EOF, ""},
	}},
	{"unescaped ampersand", "{{& name }}", []kv{
		{TagLiteral, "name"},
		{EOF, ""},
	}},
	{"unescaped triple", "{{{ name }}}", []kv{
		{TagLiteralTriple, "name"},
		{EOF, ""},
	}},
	{"comment", "a{{! this is\na comment }}b", []kv{
		{Text, "a"},
		{Comment, "thisis\nacomment"},
		{Text, "b"},
		{EOF, ""},
	}},
	{"section", "{{#a}}x{{/a}}", []kv{
		{SectionOpen, "a"},
		{Text, "x"},
		{SectionClose, "a"},
		{EOF, ""},
	}},
	{"inverted section", "{{^a}}x{{/a}}", []kv{
		{SectionOpenInverted, "a"},
		{Text, "x"},
		{SectionClose, "a"},
		{EOF, ""},
	}},
	{"partial", "{{>header}}", []kv{
		{Partial, "header"},
		{EOF, ""},
	}},
	{"newline", "a\nb", []kv{
		{Text, "a"},
		{Newline, "\n"},
		{Text, "b"},
		{EOF, ""},
	}},
	{"set delimiter then use it", "{{=<% %>=}}<%name%>", []kv{
		{Tag, "name"},
		{EOF, ""},
	}},
}

func TestLex(t *testing.T) {
	for _, tt := range lexTests {
		got := kinds(collect(tt.name, tt.input))
		if !equalKinds(got, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestLexUnclosedTag(t *testing.T) {
	toks := collect("unclosed", "{{name")
	last := toks[len(toks)-1]
	if last.Kind != Error {
		t.Errorf("unclosed tag: got final kind %v, want Error", last.Kind)
	}
}

func TestLexUnbalancedSectionIsError(t *testing.T) {
	if _, err := Lex("unbalanced", "{{#a}}x{{/b}}", DefaultDelims()); err == nil {
		t.Error("expected an UnbalancedTags error for mismatched section names")
	}
	if _, err := Lex("unclosed-section", "{{#a}}x", DefaultDelims()); err == nil {
		t.Error("expected an UnbalancedTags error for a never-closed section")
	}
}
