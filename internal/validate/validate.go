// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package validate holds the struct validator shared by tool arguments,
// search queries, and content options. Field names in reported errors follow
// the json tags, so a violation names the parameter the caller actually sent.
package validate

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}()

// Struct validates s against its validate tags.
func Struct(s any) error {
	return v.Struct(s)
}

// First returns the first field violation in err. ok is false when err
// carries no field violations.
func First(err error) (fe validator.FieldError, ok bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return nil, false
	}
	return verrs[0], true
}

// Param strips the element index from a field name, so "include[2]"
// becomes "include".
func Param(fe validator.FieldError) string {
	name, _, _ := strings.Cut(fe.Field(), "[")
	return name
}
