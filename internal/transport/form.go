package transport

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// formReader pulls typed optional values out of multipart/urlencoded fields and
// collects every parse failure instead of stopping at the first.
type formReader struct {
	values map[string][]string
	errs   ValidationErrors
}

func newFormReader(values map[string][]string) *formReader {
	return &formReader{values: values}
}

func (f *formReader) has(name string) bool {
	_, ok := f.values[name]
	return ok
}

func (f *formReader) raw(name string) (string, bool) {
	vs, ok := f.values[name]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return strings.TrimSpace(vs[0]), true
}

func (f *formReader) fail(name, msg string) {
	f.errs = append(f.errs, FieldError{Field: name, Message: msg})
}

func (f *formReader) str(name string) *string {
	v, ok := f.raw(name)
	if !ok {
		return nil
	}
	return &v
}

func (f *formReader) int(name string) *int {
	v, ok := f.raw(name)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		f.fail(name, "must be an integer")
		return nil
	}
	return &n
}

func (f *formReader) float(name string) *float64 {
	v, ok := f.raw(name)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		f.fail(name, "must be a number")
		return nil
	}
	if math.IsInf(n, 0) || math.IsNaN(n) {
		f.fail(name, "must be a finite number")
		return nil
	}
	return &n
}

func (f *formReader) bool(name string) *bool {
	v, ok := f.raw(name)
	if !ok {
		return nil
	}
	switch strings.ToLower(v) {
	case "on", "yes":
		b := true
		return &b
	case "", "off", "no":
		b := false
		return &b
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		f.fail(name, "must be a boolean")
		return nil
	}
	return &b
}

func (f *formReader) id(name string) *uuid.UUID {
	v, ok := f.raw(name)
	if !ok || v == "" {
		return nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		f.fail(name, "must be a valid id")
		return nil
	}
	return &id
}

// list reads a repeated field. A single value holding a JSON array is expanded, and
// blank entries are dropped, so "name=" sent alone yields an empty, non-nil list.
func (f *formReader) list(name string) []string {
	vs, ok := f.values[name]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		v = strings.TrimSpace(v)
		if strings.HasPrefix(v, "[") {
			var arr []string
			if err := json.Unmarshal([]byte(v), &arr); err != nil {
				f.fail(name, "must be a list of strings")
				continue
			}
			for _, a := range arr {
				if a = strings.TrimSpace(a); a != "" {
					out = append(out, a)
				}
			}
			continue
		}
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (f *formReader) err() error {
	if len(f.errs) == 0 {
		return nil
	}
	return f.errs
}
