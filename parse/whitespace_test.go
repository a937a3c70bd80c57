// Copyright 2014 Joel Scoble (github:mohae). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import "testing"

func lexAll(t *testing.T, input string) []*Token {
	toks, err := Lex("ws", input, DefaultDelims())
	if err != nil {
		t.Fatalf("lex %q: %v", input, err)
	}
	return toks
}

func render(tokens []*Token) string {
	var s string
	for _, t := range tokens {
		if t.Kind == Text || t.Kind == Newline {
			s += t.Value
		}
	}
	return s
}

func TestAnalyzeWhitespaceStandaloneSection(t *testing.T) {
	toks := lexAll(t, "{{#a}}\nx\n{{/a}}\n")
	AnalyzeWhitespace(toks)
	got := render(toks)
	if got != "x\n" {
		t.Errorf("got %q, want %q", got, "x\n")
	}
}

func TestAnalyzeWhitespaceStandaloneComment(t *testing.T) {
	toks := lexAll(t, "before\n{{! comment }}\nafter\n")
	AnalyzeWhitespace(toks)
	got := render(toks)
	if got != "before\nafter\n" {
		t.Errorf("got %q, want %q", got, "before\nafter\n")
	}
}

func TestAnalyzeWhitespaceKeepsInterpolationLine(t *testing.T) {
	toks := lexAll(t, "{{name}}\n")
	AnalyzeWhitespace(toks)
	for _, tok := range toks {
		if tok.Kind == Skip {
			t.Errorf("interpolation line should not be skipped, got Skip token %v", tok)
		}
	}
}

func TestAnalyzeWhitespaceIndentedStandalonePartial(t *testing.T) {
	toks := lexAll(t, "  {{>p}}\n")
	AnalyzeWhitespace(toks)
	if !IsStandalonePartial(toks, 1) {
		t.Fatalf("expected partial at index 1 to be standalone: %v", toks)
	}
	prefix := IndentPrefix(toks, 1)
	if prefix == nil || prefix.Value != "  " {
		t.Errorf("expected indent prefix \"  \", got %v", prefix)
	}
}

func TestAnalyzeWhitespaceBlankLineWithNoTagsIsUntouched(t *testing.T) {
	toks := lexAll(t, "a\n   \nb")
	AnalyzeWhitespace(toks)
	got := render(toks)
	want := "a\n   \nb"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
