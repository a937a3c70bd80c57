// Copyright 2014 Joel Scoble (github:mohae). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package access is the reflection-based data-access collaborator: it
// classifies arbitrary Go values into the Map/Struct/List/Value/Nil
// vocabulary the interpreter reasons about, and performs the field/key/
// index lookups the interpreter itself never does directly.
package access

import (
	"fmt"
	"reflect"
	"strconv"
	"unicode/utf8"
)

// Kind is the classification a value resolves to.
type Kind int

const (
	Nil Kind = iota
	Map
	Struct
	List
	Value
)

func (k Kind) String() string {
	switch k {
	case Nil:
		return "Nil"
	case Map:
		return "Map"
	case Struct:
		return "Struct"
	case List:
		return "List"
	case Value:
		return "Value"
	default:
		return "Unknown"
	}
}

// structTag is the struct-tag key consulted before falling back to the Go
// field name, e.g. `mustache:"full_name"`.
const structTag = "mustache"

// unwrap dereferences at most one level of pointer/interface indirection,
// the way a renderer's callers typically hand over &someStruct or an
// interface{} holding one.
func unwrap(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		return rv.Elem().Interface()
	}
	return v
}

// TypeOf classifies v per the collaborator's vocabulary.
func TypeOf(v interface{}) Kind {
	v = unwrap(v)
	if v == nil {
		return Nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		return Map
	case reflect.Struct:
		return Struct
	case reflect.Slice, reflect.Array:
		return List
	default:
		return Value
	}
}

// LengthOf reports fields for a struct, entries for a map, elements for a
// list, characters for a value's string form, and 0 for nil.
func LengthOf(v interface{}) int {
	v = unwrap(v)
	if v == nil {
		return 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		return rv.Len()
	case reflect.Struct:
		return rv.NumField()
	case reflect.Slice, reflect.Array:
		return rv.Len()
	default:
		return utf8.RuneCountInString(ToString(v))
	}
}

// GetField looks name up on a struct, preferring a `mustache:"name"` tag
// match over the literal Go field name. Returns nil if v isn't a struct or
// the field doesn't exist.
func GetField(v interface{}, name string) interface{} {
	v = unwrap(v)
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Struct {
		return nil
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.PkgPath != "" { // unexported
			continue
		}
		if tag := f.Tag.Get(structTag); tag == name {
			return rv.Field(i).Interface()
		}
	}
	if fv := rv.FieldByName(name); fv.IsValid() {
		return fv.Interface()
	}
	return nil
}

// GetKey looks name up as a string key on a map. Returns nil if v isn't a
// map, the key type isn't string-kind, or the key is absent.
func GetKey(v interface{}, name string) interface{} {
	v = unwrap(v)
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil
	}
	mv := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
	if !mv.IsValid() {
		return nil
	}
	return mv.Interface()
}

// HasKey reports whether name is a resolvable field (struct) or key (map)
// on v.
func HasKey(v interface{}, name string) bool {
	v = unwrap(v)
	if v == nil {
		return false
	}
	switch TypeOf(v) {
	case Struct:
		rv := reflect.ValueOf(v)
		rt := rv.Type()
		for i := 0; i < rt.NumField(); i++ {
			f := rt.Field(i)
			if f.PkgPath != "" {
				continue
			}
			if f.Tag.Get(structTag) == name || f.Name == name {
				return true
			}
		}
		return false
	case Map:
		rv := reflect.ValueOf(v)
		if rv.Type().Key().Kind() != reflect.String {
			return false
		}
		return rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key())).IsValid()
	default:
		return false
	}
}

// IndexAt returns the i-th element of a list. Returns nil if v isn't a
// list or i is out of range.
func IndexAt(v interface{}, i int) interface{} {
	v = unwrap(v)
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	if i < 0 || i >= rv.Len() {
		return nil
	}
	return rv.Index(i).Interface()
}

// IsNil reports whether v is nil, or a typed nil pointer/interface/map/
// slice underneath.
func IsNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// ToString renders a scalar value's string form. Maps/Structs/Lists
// render as "", so interpolating one of them emits nothing.
func ToString(v interface{}) string {
	v = unwrap(v)
	if v == nil {
		return ""
	}
	switch TypeOf(v) {
	case Map, Struct, List:
		return ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
