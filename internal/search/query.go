// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/patent-content/internal/validate"
)

// Engine is the query-service engine that runs patent searches.
const Engine = "google_patents"

// DefaultDateType qualifies Before and After when DateType is unset.
const DefaultDateType = "priority"

// Query holds the search parameters. Field names in validation errors follow
// the json tags.
type Query struct {
	Text     string `json:"query" yaml:"query" validate:"required"`
	Page     int    `json:"page,omitempty" yaml:"page,omitempty" validate:"omitempty,min=1"`
	Num      int    `json:"num,omitempty" yaml:"num,omitempty" validate:"omitempty,min=10,max=100"`
	Sort     string `json:"sort,omitempty" yaml:"sort,omitempty" validate:"omitempty,oneof=new old"`
	Before   string `json:"before,omitempty" yaml:"before,omitempty" validate:"omitempty,datetime=2006-01-02"`
	After    string `json:"after,omitempty" yaml:"after,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DateType string `json:"date_type,omitempty" yaml:"date_type,omitempty" validate:"omitempty,oneof=priority filing publication"`
	Inventor string `json:"inventor,omitempty" yaml:"inventor,omitempty"`
	Assignee string `json:"assignee,omitempty" yaml:"assignee,omitempty"`

	// Country is a comma-separated list of jurisdiction codes (e.g. "US,WO").
	Country  string `json:"country,omitempty" yaml:"country,omitempty"`
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
	Status   string `json:"status,omitempty" yaml:"status,omitempty" validate:"omitempty,oneof=GRANT APPLICATION"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty" validate:"omitempty,oneof=PATENT DESIGN"`

	// IncludeContent attaches a description excerpt to every result.
	IncludeContent bool `json:"include_content,omitempty" yaml:"include_content,omitempty"`
}

// ErrInvalidParam is matched by every *InvalidParamError via errors.Is.
var ErrInvalidParam = errors.New("invalid search parameter")

// InvalidParamError rejects a search parameter before any request is made.
type InvalidParamError struct {
	Param string
	Value string
	Rule  string
}

func (e *InvalidParamError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid search parameter %s: %s", e.Param, e.Rule)
	}
	return fmt.Sprintf("invalid search parameter %s=%q: %s", e.Param, e.Value, e.Rule)
}

// Is lets errors.Is(err, ErrInvalidParam) succeed.
func (e *InvalidParamError) Is(target error) bool { return target == ErrInvalidParam }

// Validate checks q and reports the first violation as *InvalidParamError.
func (q Query) Validate() error {
	q.Text = strings.TrimSpace(q.Text)
	err := validate.Struct(q)
	if err == nil {
		return nil
	}
	fe, ok := validate.First(err)
	if !ok {
		return fmt.Errorf("validating search query: %w", err)
	}
	return &InvalidParamError{
		Param: fe.Field(),
		Value: fmt.Sprint(fe.Value()),
		Rule:  describeRule(fe.Tag(), fe.Param()),
	}
}

func describeRule(tag, param string) string {
	switch tag {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + param
	case "max":
		return "must be at most " + param
	case "oneof":
		return "must be one of " + strings.ReplaceAll(param, " ", ", ")
	case "datetime":
		return "must be a date in YYYY-MM-DD form"
	default:
		return "fails " + tag
	}
}

// Params encodes q as query-service parameters. Dates are sent as
// "<date_type>:YYYYMMDD". The API key is added by the caller.
func (q Query) Params() url.Values {
	v := url.Values{
		"engine": {Engine},
		"q":      {strings.TrimSpace(q.Text)},
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Num > 0 {
		v.Set("num", strconv.Itoa(q.Num))
	}

	dateType := q.DateType
	if dateType == "" {
		dateType = DefaultDateType
	}
	if q.Before != "" {
		v.Set("before", dateType+":"+strings.ReplaceAll(q.Before, "-", ""))
	}
	if q.After != "" {
		v.Set("after", dateType+":"+strings.ReplaceAll(q.After, "-", ""))
	}

	for name, value := range map[string]string{
		"sort":     q.Sort,
		"inventor": q.Inventor,
		"assignee": q.Assignee,
		"country":  q.Country,
		"language": q.Language,
		"status":   q.Status,
		"type":     q.Type,
	} {
		if value != "" {
			v.Set(name, value)
		}
	}
	return v
}
