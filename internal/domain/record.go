package domain

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/spf13/cast"
)

// Record is a loosely typed user as received from a caller.
type Record map[string]any

// String returns the value stored under key as a string, or "" when absent.
func (r Record) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return s
}

// Blank reports whether key is absent or holds an empty value
// (null, "", false, numeric zero, empty list or object).
func (r Record) Blank(key string) bool {
	v, ok := r[key]
	if !ok {
		return true
	}
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case json.Number:
		f, err := t.Float64()
		return err == nil && f == 0
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return cast.ToFloat64(t) == 0
	default:
		return false
	}
}

// CoerceAge converts a numeric-like value to an integer age, truncating toward zero.
// Anything that does not parse as a finite number yields 0.
func CoerceAge(v any) int {
	if v == nil {
		return 0
	}
	switch t := v.(type) {
	case string:
		v = strings.TrimSpace(t)
	case json.Number:
		v = string(t)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	f = math.Trunc(f)
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0
	}
	return int(f)
}

// UserFromRecord normalizes a record into a User. Missing fields become empty values.
func UserFromRecord(r Record) User {
	return User{
		ID:        r.String(FieldID),
		FirstName: r.String(FieldFirstName),
		LastName:  r.String(FieldLastName),
		Email:     r.String(FieldEmail),
		Phone:     r.String(FieldPhone),
		Password:  r.String(FieldPassword),
		Age:       CoerceAge(r[FieldAge]),
	}
}

// PatchFromRecord builds a patch holding only the keys present in r.
// The identifier is never patched.
func PatchFromRecord(r Record) UserPatch {
	var p UserPatch
	str := func(key string) *string {
		if _, ok := r[key]; !ok {
			return nil
		}
		s := r.String(key)
		return &s
	}
	p.FirstName = str(FieldFirstName)
	p.LastName = str(FieldLastName)
	p.Email = str(FieldEmail)
	p.Phone = str(FieldPhone)
	p.Password = str(FieldPassword)
	if v, ok := r[FieldAge]; ok {
		age := CoerceAge(v)
		p.Age = &age
	}
	return p
}
