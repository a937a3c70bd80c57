// Copyright 2014 Joel Scoble (github:mohae). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package access

import "testing"

type person struct {
	Name string `mustache:"full_name"`
	Age  int
}

func TestTypeOf(t *testing.T) {
	cases := []struct {
		v    interface{}
		want Kind
	}{
		{nil, Nil},
		{map[string]interface{}{}, Map},
		{person{}, Struct},
		{[]int{1, 2}, List},
		{[3]int{}, List},
		{"x", Value},
		{42, Value},
	}
	for _, c := range cases {
		if got := TypeOf(c.v); got != c.want {
			t.Errorf("TypeOf(%#v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestTypeOfUnwrapsPointer(t *testing.T) {
	p := &person{Name: "a"}
	if got := TypeOf(p); got != Struct {
		t.Errorf("TypeOf(ptr to struct) = %v, want Struct", got)
	}
}

func TestGetFieldPrefersTag(t *testing.T) {
	p := person{Name: "ada", Age: 30}
	if got := GetField(p, "full_name"); got != "ada" {
		t.Errorf("GetField via tag = %v, want ada", got)
	}
	if got := GetField(p, "Age"); got != 30 {
		t.Errorf("GetField by field name = %v, want 30", got)
	}
}

func TestGetKey(t *testing.T) {
	m := map[string]interface{}{"a": 1}
	if got := GetKey(m, "a"); got != 1 {
		t.Errorf("GetKey = %v, want 1", got)
	}
	if got := GetKey(m, "missing"); got != nil {
		t.Errorf("GetKey missing = %v, want nil", got)
	}
}

func TestHasKey(t *testing.T) {
	m := map[string]interface{}{"a": 1}
	if !HasKey(m, "a") || HasKey(m, "b") {
		t.Error("HasKey mismatch for map")
	}
	p := person{}
	if !HasKey(p, "full_name") || !HasKey(p, "Age") || HasKey(p, "nope") {
		t.Error("HasKey mismatch for struct")
	}
}

func TestIndexAt(t *testing.T) {
	xs := []int{10, 20, 30}
	if got := IndexAt(xs, 1); got != 20 {
		t.Errorf("IndexAt(1) = %v, want 20", got)
	}
	if got := IndexAt(xs, 99); got != nil {
		t.Errorf("IndexAt(99) = %v, want nil", got)
	}
}

func TestLengthOf(t *testing.T) {
	if LengthOf([]int{1, 2, 3}) != 3 {
		t.Error("LengthOf slice wrong")
	}
	if LengthOf(map[string]int{"a": 1}) != 1 {
		t.Error("LengthOf map wrong")
	}
	if LengthOf(nil) != 0 {
		t.Error("LengthOf nil wrong")
	}
	if LengthOf("abc") != 3 {
		t.Error("LengthOf string wrong")
	}
}

func TestIsNil(t *testing.T) {
	var p *person
	if !IsNil(p) {
		t.Error("typed nil pointer should be nil")
	}
	if IsNil(person{}) {
		t.Error("zero struct should not be nil")
	}
}

func TestToString(t *testing.T) {
	if ToString(42) != "42" {
		t.Error("ToString int wrong")
	}
	if ToString(true) != "true" {
		t.Error("ToString bool wrong")
	}
	if ToString(map[string]int{}) != "" {
		t.Error("ToString map should be empty")
	}
}
