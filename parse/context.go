// Copyright 2014 Joel Scoble (github:mohae). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"strings"

	"github.com/mohae/stache/access"
)

// Frame is one level of the interpreter's context stack. Label is a
// diagnostic marker only (e.g. "list[2]"); resolution never looks at it.
type Frame struct {
	Data  interface{}
	Label string
}

// Stack is an ordered list of frames, innermost first. Frame 0 is the
// current lookup scope; the last frame is the root, which is truthy by
// definition and never popped.
type Stack struct {
	frames []Frame
}

// NewStack returns a stack holding only the root frame.
func NewStack(root interface{}) *Stack {
	return &Stack{frames: []Frame{{Data: root, Label: "root"}}}
}

// Push adds a new innermost frame.
func (s *Stack) Push(f Frame) {
	s.frames = append([]Frame{f}, s.frames...)
}

// Pop removes the innermost frame. It is a no-op once only the root
// frame remains.
func (s *Stack) Pop() {
	if len(s.frames) <= 1 {
		return
	}
	s.frames = s.frames[1:]
}

// Depth reports how many frames (including root) are currently pushed.
func (s *Stack) Depth() int {
	return len(s.frames)
}

// Top returns the innermost frame's data.
func (s *Stack) Top() interface{} {
	return s.frames[0].Data
}

// IsRoot reports whether only the root frame remains.
func (s *Stack) IsRoot() bool {
	return len(s.frames) == 1
}

// Truthy reports whether the stack's top-of-stack frame should drive
// emission, per the rule in §4.4: Map/List/Struct with length > 0, a
// Value whose string form isn't in the falsey set, or the root frame
// (always truthy).
func (s *Stack) Truthy() bool {
	if s.IsRoot() {
		return true
	}
	return Truthy(s.Top())
}

var falsey = map[string]bool{"": true, "false": true, "null": true}

// Truthy reports whether v is truthy per the falsey-value rule in §4.4
// and the GLOSSARY's Falsey value definition.
func Truthy(v interface{}) bool {
	switch access.TypeOf(v) {
	case access.Nil:
		return false
	case access.Map, access.List, access.Struct:
		return access.LengthOf(v) > 0
	default:
		return !falsey[access.ToString(v)]
	}
}

// Resolve looks a dotted name up against the stack per §4.3: the head
// segment is resolved innermost-first, fixing the binding at the first
// frame that yields it; remaining segments are then resolved strictly
// against that intermediate value, with no re-walk of the stack.
func (s *Stack) Resolve(name string) interface{} {
	if name == "." {
		return s.Top()
	}
	parts := strings.Split(name, ".")
	head := parts[0]

	var v interface{}
	found := false
	for _, f := range s.frames {
		if cv, ok := resolveHead(f.Data, head); ok {
			v = cv
			found = true
			break
		}
	}
	if !found {
		return nil
	}
	for _, p := range parts[1:] {
		v, found = resolveHead(v, p)
		if !found {
			return nil
		}
	}
	return v
}

// resolveHead resolves a single non-dotted segment against one value, per
// §4.3 step 2: struct fields by name, map entries by key; Value/List/Nil
// never bind a name. Only a non-nil result fixes the binding (§4.3 step
// 3), so a present-but-nil field falls through to the next frame.
func resolveHead(v interface{}, name string) (interface{}, bool) {
	var cv interface{}
	switch access.TypeOf(v) {
	case access.Struct:
		if !access.HasKey(v, name) {
			return nil, false
		}
		cv = access.GetField(v, name)
	case access.Map:
		if !access.HasKey(v, name) {
			return nil, false
		}
		cv = access.GetKey(v, name)
	default:
		return nil, false
	}
	if access.IsNil(cv) {
		return nil, false
	}
	return cv, true
}
