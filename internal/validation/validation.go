// Package validation checks request bodies, path parameters and query
// parameters against declared schemas, producing either a normalized
// value set or the full list of violated fields.
package validation

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"blog-service/internal/common"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
var numberPattern = regexp.MustCompile(`^\d+$`)

// Source says where a field is read from.
type Source int

const (
	Body Source = iota
	Param
	Query
)

// Type is the normalized type a field is coerced to.
type Type int

const (
	String Type = iota
	Int
	Bool
	StringSlice
)

// Field declares one named input with its constraints. Message overrides
// (MinMsg etc.) replace the generated text for that rule.
type Field struct {
	Name     string
	Source   Source
	Type     Type
	Required bool
	Trim     bool
	Email    bool

	// string constraints, 0 means unset
	MinLen int
	MaxLen int

	// integer constraints
	Min *int
	Max *int

	RequiredMsg string
	TypeMsg     string
	MinMsg      string
	MaxMsg      string
}

type Schema struct {
	Fields []Field
}

// Input bundles the three request surfaces a schema can read.
type Input struct {
	Body   map[string]any
	Params map[string]string
	Query  url.Values
}

// Values holds normalized, typed field values keyed by field name.
// Fields absent from the input are absent from the map.
type Values map[string]any

func (v Values) Has(name string) bool { _, ok := v[name]; return ok }

func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

func (v Values) Int(name string) int {
	n, _ := v[name].(int)
	return n
}

// IntOr returns the field value or def when the field is absent.
func (v Values) IntOr(name string, def int) int {
	if n, ok := v[name].(int); ok {
		return n
	}
	return def
}

func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

// OptString returns a pointer only when the field was present.
func (v Values) OptString(name string) *string {
	if s, ok := v[name].(string); ok {
		return &s
	}
	return nil
}

func (v Values) OptInt(name string) *int {
	if n, ok := v[name].(int); ok {
		return &n
	}
	return nil
}

func (v Values) OptBool(name string) *bool {
	if b, ok := v[name].(bool); ok {
		return &b
	}
	return nil
}

func (v Values) StringSlice(name string) []string {
	s, _ := v[name].([]string)
	return s
}

// Validate checks every declared field and collects every violation; it
// never stops at the first failure. It has no side effects.
func (s Schema) Validate(in Input) (Values, []common.FieldError) {
	values := Values{}
	var errs []common.FieldError

	fail := func(f Field, msg string) {
		errs = append(errs, common.FieldError{Field: f.Name, Message: msg})
	}

	for _, f := range s.Fields {
		raw, present := lookup(f, in)
		if !present {
			if f.Required {
				fail(f, defaultMsg(f.RequiredMsg, "%s is required", label(f)))
			}
			continue
		}

		switch f.Type {
		case String:
			str, ok := raw.(string)
			if !ok {
				fail(f, defaultMsg(f.TypeMsg, "%s must be a string", label(f)))
				continue
			}
			if f.Trim {
				str = strings.TrimSpace(str)
			}
			if f.Required && str == "" {
				fail(f, defaultMsg(f.RequiredMsg, "%s is required", label(f)))
				continue
			}
			if f.MinLen > 0 && len(str) < f.MinLen {
				fail(f, defaultMsgN(f.MinMsg, "%s must be at least %d characters", label(f), f.MinLen))
				continue
			}
			if f.MaxLen > 0 && len(str) > f.MaxLen {
				fail(f, defaultMsgN(f.MaxMsg, "%s must not exceed %d characters", label(f), f.MaxLen))
				continue
			}
			if f.Email && !emailPattern.MatchString(str) {
				fail(f, "Must be a valid email address")
				continue
			}
			if f.Email {
				str = strings.ToLower(str)
			}
			values[f.Name] = str

		case Int:
			n, ok, msg := toInt(f, raw)
			if !ok {
				fail(f, msg)
				continue
			}
			if f.Min != nil && n < *f.Min {
				fail(f, defaultMsgN(f.MinMsg, "%s must be at least %d", label(f), *f.Min))
				continue
			}
			if f.Max != nil && n > *f.Max {
				fail(f, defaultMsgN(f.MaxMsg, "%s must not exceed %d", label(f), *f.Max))
				continue
			}
			values[f.Name] = n

		case Bool:
			b, ok := toBool(f, raw)
			if !ok {
				fail(f, defaultMsg(f.TypeMsg, "%s must be true or false", f.Name))
				continue
			}
			values[f.Name] = b

		case StringSlice:
			items, ok := raw.([]any)
			if !ok {
				fail(f, defaultMsg(f.TypeMsg, "%s must be an array of strings", label(f)))
				continue
			}
			out := make([]string, 0, len(items))
			valid := true
			for _, item := range items {
				str, ok := item.(string)
				if !ok {
					fail(f, defaultMsg(f.TypeMsg, "%s must be an array of strings", label(f)))
					valid = false
					break
				}
				out = append(out, strings.TrimSpace(str))
			}
			if valid {
				values[f.Name] = out
			}
		}
	}

	return values, errs
}

func lookup(f Field, in Input) (any, bool) {
	switch f.Source {
	case Param:
		v, ok := in.Params[f.Name]
		return v, ok && v != ""
	case Query:
		if in.Query == nil || !in.Query.Has(f.Name) {
			return nil, false
		}
		return in.Query.Get(f.Name), true
	default:
		if in.Body == nil {
			return nil, false
		}
		v, ok := in.Body[f.Name]
		if !ok || v == nil {
			return nil, false
		}
		return v, true
	}
}

// toInt coerces body JSON numbers and param/query numeric strings.
// Identifier-style strings must match ^\d+$; anything else is a
// validation failure, never a runtime error.
func toInt(f Field, raw any) (int, bool, string) {
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, false, defaultMsg(f.TypeMsg, "%s must be an integer", label(f))
		}
		return int(v), true, ""
	case string:
		if !numberPattern.MatchString(v) {
			return 0, false, defaultMsg(f.TypeMsg, "%s must be a valid number", label(f))
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, false, defaultMsg(f.TypeMsg, "%s must be a valid number", label(f))
		}
		return n, true, ""
	default:
		return 0, false, defaultMsg(f.TypeMsg, "%s must be a number", label(f))
	}
}

// toBool accepts JSON booleans from bodies and only the literal strings
// "true"/"false" from queries.
func toBool(f Field, raw any) (bool, bool) {
	switch v := raw.(type) {
	case bool:
		return v, true
	case string:
		if v == "true" {
			return true, true
		}
		if v == "false" {
			return false, true
		}
	}
	return false, false
}

func label(f Field) string {
	return strings.ToUpper(f.Name[:1]) + f.Name[1:]
}

func defaultMsg(override, format, name string) string {
	if override != "" {
		return override
	}
	return fmt.Sprintf(format, name)
}

func defaultMsgN(override, format, name string, n int) string {
	if override != "" {
		return override
	}
	return fmt.Sprintf(format, name, n)
}
