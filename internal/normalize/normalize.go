// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize maps upstream patent metadata objects onto one canonical
// shape.
//
// Two upstream schemas are in circulation. The flat schema carries scalar
// assignee and inventor fields, a country_status map, and pre-computed
// citation counts. The nested schema carries assignee and inventor arrays,
// per-year worldwide_applications, and citation arrays whose lengths are the
// counts. Decode settles which schema an object uses once; Normalize never
// inspects field presence again.
//
// Only the identifying fields and dates are decoded strictly. Every other
// part is decoded on its own during Normalize; a part of the wrong type is
// left out of the result and reported in Metadata.Skipped.
package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/patent-content/pkg/types"
)

// Shape identifies an upstream schema.
type Shape int

const (
	ShapeFlat Shape = iota
	ShapeNested
)

func (s Shape) String() string {
	if s == ShapeNested {
		return "nested"
	}
	return "flat"
}

// Metadata is the metadata subset of a patent record.
type Metadata struct {
	Title             string
	PublicationNumber string
	Abstract          string

	Assignee string
	Inventor string

	PriorityDate    string
	FilingDate      string
	PublicationDate string
	GrantDate       string

	FamilyMembers []types.FamilyMember

	// Citations is nil when both counts are zero.
	Citations *types.CitationCounts

	// Skipped lists the optional parts that could not be decoded.
	Skipped []*FieldError
}

// HasIdentity reports whether the metadata names a document at all.
func (m Metadata) HasIdentity() bool {
	return m.Title != "" || m.Abstract != "" || m.PublicationNumber != ""
}

// FieldError reports an optional upstream field that was left out because
// its value had an unexpected type.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("metadata field %s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Upstream is a decoded metadata object of one known shape.
type Upstream interface {
	Shape() Shape
	normalize() Metadata
}

// common holds the fields both schemas share.
type common struct {
	Title             string `json:"title"`
	PublicationNumber string `json:"publication_number"`
	Abstract          string `json:"abstract"`
	PriorityDate      string `json:"priority_date"`
	FilingDate        string `json:"filing_date"`
	PublicationDate   string `json:"publication_date"`
	GrantDate         string `json:"grant_date"`
}

func (c common) metadata() Metadata {
	return Metadata{
		Title:             strings.TrimSpace(c.Title),
		PublicationNumber: strings.TrimSpace(c.PublicationNumber),
		Abstract:          strings.TrimSpace(c.Abstract),
		PriorityDate:      c.PriorityDate,
		FilingDate:        c.FilingDate,
		PublicationDate:   c.PublicationDate,
		GrantDate:         c.GrantDate,
	}
}

// shapeKeys detects the nested schema by its distinguishing keys.
type shapeKeys struct {
	Assignees             json.RawMessage `json:"assignees"`
	Inventors             json.RawMessage `json:"inventors"`
	WorldwideApplications json.RawMessage `json:"worldwide_applications"`
	CitedBy               json.RawMessage `json:"cited_by"`
	PatentCitations       json.RawMessage `json:"patent_citations"`
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}

// Decode parses raw into the variant matching its schema. It fails only when
// raw is not a JSON object or an identifying field has the wrong type.
func Decode(raw []byte) (Upstream, error) {
	var keys shapeKeys
	if err := json.Unmarshal(raw, &keys); err != nil {
		return nil, fmt.Errorf("decoding metadata: %w", err)
	}

	if present(keys.Assignees) || present(keys.Inventors) || present(keys.WorldwideApplications) ||
		present(keys.CitedBy) || present(keys.PatentCitations) {
		var n NestedMetadata
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, fmt.Errorf("decoding nested metadata: %w", err)
		}
		return &n, nil
	}

	var f FlatMetadata
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decoding flat metadata: %w", err)
	}
	return &f, nil
}

// Normalize maps a decoded upstream object onto Metadata.
func Normalize(u Upstream) Metadata {
	if u == nil {
		return Metadata{}
	}
	return u.normalize()
}

// Parse decodes and normalizes in one step.
func Parse(raw []byte) (Metadata, error) {
	u, err := Decode(raw)
	if err != nil {
		return Metadata{}, err
	}
	return Normalize(u), nil
}

// parts decodes optional fields one at a time and collects the failures.
type parts struct {
	skipped []*FieldError
}

// decode unmarshals raw into v. Absent and null values report false without
// a failure.
func (p *parts) decode(field string, raw json.RawMessage, v any) bool {
	if !present(raw) {
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		p.skipped = append(p.skipped, &FieldError{Field: field, Err: err})
		return false
	}
	return true
}

// count decodes a citation count, treating a skipped value as zero.
func (p *parts) count(field string, raw json.RawMessage) int {
	var n int
	if !p.decode(field, raw, &n) {
		return 0
	}
	return n
}

func citationCounts(forward, backward int) *types.CitationCounts {
	if forward == 0 && backward == 0 {
		return nil
	}
	return &types.CitationCounts{Forward: forward, Backward: backward}
}

// FlatMetadata is the scalar schema.
type FlatMetadata struct {
	common
	Assignee      json.RawMessage `json:"assignee"`
	Inventor      json.RawMessage `json:"inventor"`
	CountryStatus json.RawMessage `json:"country_status"`
	Citations     json.RawMessage `json:"citations"`
}

func (*FlatMetadata) Shape() Shape { return ShapeFlat }

func (f *FlatMetadata) normalize() Metadata {
	var p parts
	m := f.common.metadata()

	var name partyName
	if p.decode("assignee", f.Assignee, &name) {
		m.Assignee = string(name)
	}
	name = ""
	if p.decode("inventor", f.Inventor, &name) {
		m.Inventor = string(name)
	}

	var statuses map[string]json.RawMessage
	if p.decode("country_status", f.CountryStatus, &statuses) {
		regions := make([]string, 0, len(statuses))
		for region := range statuses {
			regions = append(regions, region)
		}
		sort.Strings(regions)
		for _, region := range regions {
			var status string
			if !p.decode("country_status."+region, statuses[region], &status) {
				continue
			}
			m.FamilyMembers = append(m.FamilyMembers, types.FamilyMember{Region: region, Status: status})
		}
	}

	var counts struct {
		Forward  json.RawMessage `json:"forward_citations"`
		Backward json.RawMessage `json:"backward_citations"`
	}
	if p.decode("citations", f.Citations, &counts) {
		m.Citations = citationCounts(
			p.count("citations.forward_citations", counts.Forward),
			p.count("citations.backward_citations", counts.Backward),
		)
	}

	m.Skipped = p.skipped
	return m
}

// NestedMetadata is the array schema.
type NestedMetadata struct {
	common
	Assignees             json.RawMessage `json:"assignees"`
	Inventors             json.RawMessage `json:"inventors"`
	WorldwideApplications json.RawMessage `json:"worldwide_applications"`
	CitedBy               json.RawMessage `json:"cited_by"`
	PatentCitations       json.RawMessage `json:"patent_citations"`
}

func (*NestedMetadata) Shape() Shape { return ShapeNested }

func (n *NestedMetadata) normalize() Metadata {
	var p parts
	m := n.common.metadata()
	m.Assignee = p.firstParty("assignees", n.Assignees)
	m.Inventor = p.firstParty("inventors", n.Inventors)

	var byYear map[string]json.RawMessage
	if p.decode("worldwide_applications", n.WorldwideApplications, &byYear) {
		years := make([]string, 0, len(byYear))
		for year := range byYear {
			years = append(years, year)
		}
		sort.Strings(years)
		for _, year := range years {
			var apps []application
			if !p.decode("worldwide_applications."+year, byYear[year], &apps) {
				continue
			}
			for _, app := range apps {
				if app.ThisApp {
					continue
				}
				id := app.DocumentID
				if id == "" {
					id = app.ApplicationNumber
				}
				m.FamilyMembers = append(m.FamilyMembers, types.FamilyMember{
					PatentID: id,
					Region:   app.CountryCode,
					Status:   app.LegalStatus,
				})
			}
		}
	}

	var forward, backward citationList
	p.decode("cited_by", n.CitedBy, &forward)
	p.decode("patent_citations", n.PatentCitations, &backward)
	m.Citations = citationCounts(int(forward), int(backward))

	m.Skipped = p.skipped
	return m
}

// firstParty returns the first name in a party array.
func (p *parts) firstParty(field string, raw json.RawMessage) string {
	var names []json.RawMessage
	if !p.decode(field, raw, &names) || len(names) == 0 {
		return ""
	}
	var name partyName
	if !p.decode(field+"[0]", names[0], &name) {
		return ""
	}
	return string(name)
}

// application is one worldwide_applications entry.
type application struct {
	ApplicationNumber string `json:"application_number"`
	DocumentID        string `json:"document_id"`
	CountryCode       string `json:"country_code"`
	LegalStatus       string `json:"legal_status"`
	ThisApp           bool   `json:"this_app"`
}

// partyName accepts either "Name" or {"name": "Name"}.
type partyName string

func (p *partyName) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = partyName(strings.TrimSpace(s))
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*p = partyName(strings.TrimSpace(obj.Name))
	return nil
}

// citationList counts citations given either as a bare array or as an object
// of arrays ({"original": [...], "family_to_family": [...]}). Object members
// that are not arrays, such as a "total" scalar, are not counted.
type citationList int

func (c *citationList) UnmarshalJSON(data []byte) error {
	var arr []json.RawMessage
	if err := json.Unmarshal(data, &arr); err == nil {
		*c = citationList(len(arr))
		return nil
	}
	var groups map[string]json.RawMessage
	if err := json.Unmarshal(data, &groups); err != nil {
		return err
	}
	total := 0
	for _, g := range groups {
		var members []json.RawMessage
		if json.Unmarshal(g, &members) == nil {
			total += len(members)
		}
	}
	*c = citationList(total)
	return nil
}
