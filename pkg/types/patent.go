// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for patent-content: the
// client-facing patent record, its nested family and citation records, and
// the configuration structs materialised by the CLI.
package types

// PatentRecord is the canonical result of a fetch-content call.
//
// Every field is optional and omitted from JSON and YAML output when unset.
// Inclusion is structural: the formatter only populates a field when its
// inclusion flag is true, so a disabled field never appears, not even as
// null or an empty string.
type PatentRecord struct {
	// PatentID is the canonical key (e.g. "patent/US1234567A/en").
	PatentID string `json:"patent_id,omitempty" yaml:"patent_id,omitempty"`

	// Title is the patent title.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// PublicationNumber is the published document number (e.g. "US1234567A").
	PublicationNumber string `json:"publication_number,omitempty" yaml:"publication_number,omitempty"`

	// Assignee is the first listed assignee.
	Assignee string `json:"assignee,omitempty" yaml:"assignee,omitempty"`

	// Inventor is the first listed inventor.
	Inventor string `json:"inventor,omitempty" yaml:"inventor,omitempty"`

	PriorityDate    string `json:"priority_date,omitempty" yaml:"priority_date,omitempty"`
	FilingDate      string `json:"filing_date,omitempty" yaml:"filing_date,omitempty"`
	PublicationDate string `json:"publication_date,omitempty" yaml:"publication_date,omitempty"`
	GrantDate       string `json:"grant_date,omitempty" yaml:"grant_date,omitempty"`

	Abstract    string `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Claims is empty but present when claims exist and none fit the budget.
	Claims ClaimList `json:"claims,omitzero" yaml:"claims,omitempty"`

	FamilyMembers []FamilyMember  `json:"family_members,omitempty" yaml:"family_members,omitempty"`
	Citations     *CitationCounts `json:"citations,omitempty" yaml:"citations,omitempty"`

	// FullText is the combined DESCRIPTION/CLAIMS view.
	FullText string `json:"full_text,omitempty" yaml:"full_text,omitempty"`
}

// ClaimList holds "<number>. <text>" claim strings. Only a nil list counts
// as unset, so an empty list still encodes as [].
type ClaimList []string

// IsZero reports whether the list was never set.
func (c ClaimList) IsZero() bool { return c == nil }

// FamilyMember is a related filing of the same invention in another jurisdiction.
type FamilyMember struct {
	PatentID string `json:"patent_id,omitempty" yaml:"patent_id,omitempty"`
	Region   string `json:"region,omitempty" yaml:"region,omitempty"`
	Status   string `json:"status,omitempty" yaml:"status,omitempty"`
}

// CitationCounts holds forward (cited-by) and backward (cites) citation totals.
type CitationCounts struct {
	Forward  int `json:"forward_citations" yaml:"forward_citations"`
	Backward int `json:"backward_citations" yaml:"backward_citations"`
}
