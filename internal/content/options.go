// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package content

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/patent-content/internal/extract"
	"github.com/pdiddy/patent-content/internal/validate"
)

// Field names one selectable part of a patent record.
type Field string

const (
	FieldClaims        Field = "claims"
	FieldDescription   Field = "description"
	FieldAbstract      Field = "abstract"
	FieldFamilyMembers Field = "family_members"
	FieldCitations     Field = "citations"
	FieldMetadata      Field = "metadata"
	FieldFullText      Field = "full_text"
)

// Fields lists every recognised include value.
var Fields = []Field{
	FieldClaims,
	FieldDescription,
	FieldAbstract,
	FieldFamilyMembers,
	FieldCitations,
	FieldMetadata,
	FieldFullText,
}

// DefaultFields apply when a request names no fields.
var DefaultFields = []Field{FieldMetadata, FieldAbstract}

// ErrInvalidOption is matched by every *InvalidOptionError via errors.Is.
var ErrInvalidOption = errors.New("invalid option")

// InvalidOptionError rejects an option value outside its recognised set.
type InvalidOptionError struct {
	Option string
	Value  string
	Valid  []string
}

func (e *InvalidOptionError) Error() string {
	if len(e.Valid) == 1 {
		return fmt.Sprintf("invalid %s value %q: must be %s", e.Option, e.Value, e.Valid[0])
	}
	return fmt.Sprintf("invalid %s value %q: must be one of %s", e.Option, e.Value, strings.Join(e.Valid, ", "))
}

// Is lets errors.Is(err, ErrInvalidOption) succeed.
func (e *InvalidOptionError) Is(target error) bool { return target == ErrInvalidOption }

// Options selects which fields a record carries and bounds their length.
type Options struct {
	Claims        bool
	Description   bool
	Abstract      bool
	FamilyMembers bool
	Citations     bool
	Metadata      bool
	FullText      bool

	// MaxLength is the per-field character budget. Zero means unbounded.
	MaxLength int
}

// DefaultOptions returns the options used when no fields are named.
func DefaultOptions() Options {
	var o Options
	for _, f := range DefaultFields {
		o.set(f)
	}
	return o
}

// optionInput carries raw option values through validation.
type optionInput struct {
	Include   []string `json:"include" validate:"dive,oneof=claims description abstract family_members citations metadata full_text"`
	MaxLength *int     `json:"max_length" validate:"omitempty,min=1"`
}

// ParseOptions builds Options from include values and an optional budget.
// Values are matched case-insensitively and blank values are ignored; a list
// with no remaining values selects DefaultFields. An unknown value or a
// non-positive budget yields *InvalidOptionError before anything is fetched.
func ParseOptions(include []string, maxLength *int) (Options, error) {
	in := optionInput{MaxLength: maxLength}
	for _, raw := range include {
		if v := strings.ToLower(strings.TrimSpace(raw)); v != "" {
			in.Include = append(in.Include, v)
		}
	}

	if err := validate.Struct(in); err != nil {
		return Options{}, in.invalid(err)
	}

	var o Options
	for _, v := range in.Include {
		o.set(Field(v))
	}
	if len(in.Include) == 0 {
		o = DefaultOptions()
	}
	if maxLength != nil {
		o.MaxLength = *maxLength
	}
	return o, nil
}

// invalid maps a validation failure onto *InvalidOptionError.
func (in optionInput) invalid(err error) error {
	fe, ok := validate.First(err)
	if !ok || (fe.Tag() != "oneof" && in.MaxLength == nil) {
		return fmt.Errorf("validating options: %w", err)
	}
	if fe.Tag() == "oneof" {
		return &InvalidOptionError{
			Option: validate.Param(fe),
			Value:  fmt.Sprint(fe.Value()),
			Valid:  strings.Fields(fe.Param()),
		}
	}
	return &InvalidOptionError{
		Option: validate.Param(fe),
		Value:  strconv.Itoa(*in.MaxLength),
		Valid:  []string{"a positive integer"},
	}
}

func (o *Options) set(f Field) {
	switch f {
	case FieldClaims:
		o.Claims = true
	case FieldDescription:
		o.Description = true
	case FieldAbstract:
		o.Abstract = true
	case FieldFamilyMembers:
		o.FamilyMembers = true
	case FieldCitations:
		o.Citations = true
	case FieldMetadata:
		o.Metadata = true
	case FieldFullText:
		o.FullText = true
	}
}

// Selected lists the enabled fields in canonical order.
func (o Options) Selected() []Field {
	flags := []bool{o.Claims, o.Description, o.Abstract, o.FamilyMembers, o.Citations, o.Metadata, o.FullText}
	var out []Field
	for i, on := range flags {
		if on {
			out = append(out, Fields[i])
		}
	}
	return out
}

// Need reports which document sections the options require.
func (o Options) Need() extract.Need {
	return extract.Need{Claims: o.Claims, Description: o.Description, FullText: o.FullText}
}

// NeedsDocument reports whether the document markup must be fetched.
func (o Options) NeedsDocument() bool {
	return o.Claims || o.Description || o.FullText
}
