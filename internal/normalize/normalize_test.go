// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/patent-content/pkg/types"
)

const flatPayload = `{
  "title": "Widget assembly",
  "publication_number": "US1234567A",
  "abstract": "  A widget.  ",
  "assignee": "Acme Corp",
  "inventor": "Jane Doe",
  "priority_date": "2019-01-02",
  "filing_date": "2019-06-01",
  "publication_date": "2020-01-01",
  "grant_date": "2021-03-04",
  "country_status": {"US": "Active", "EP": "Pending", "CN": "Expired"},
  "citations": {"forward_citations": 3, "backward_citations": 7}
}`

const nestedPayload = `{
  "title": "Widget assembly",
  "publication_number": "US1234567A",
  "assignees": ["Acme Corp", "Other Inc"],
  "inventors": [{"name": "Jane Doe"}, {"name": "John Roe"}],
  "worldwide_applications": {
    "2020": [
      {"application_number": "EP20000001A", "country_code": "EP", "legal_status": "Pending"}
    ],
    "2019": [
      {"document_id": "patent/US1234567A/en", "country_code": "US", "legal_status": "Active", "this_app": true},
      {"document_id": "patent/CN111111A/en", "country_code": "CN", "legal_status": "Expired"}
    ]
  },
  "cited_by": {"original": [{}, {}], "family_to_family": [{}]},
  "patent_citations": {"original": [{}]}
}`

func TestDecode_DetectsShape(t *testing.T) {
	flat, err := Decode([]byte(flatPayload))
	require.NoError(t, err)
	assert.Equal(t, ShapeFlat, flat.Shape())

	nested, err := Decode([]byte(nestedPayload))
	require.NoError(t, err)
	assert.Equal(t, ShapeNested, nested.Shape())
}

func TestDecode_InvalidJSON(t *testing.T) {
	_, err := Decode([]byte(`{not json`))
	assert.Error(t, err)
}

func TestNormalize_Flat(t *testing.T) {
	m, err := Parse([]byte(flatPayload))
	require.NoError(t, err)

	assert.Equal(t, "Widget assembly", m.Title)
	assert.Equal(t, "US1234567A", m.PublicationNumber)
	assert.Equal(t, "A widget.", m.Abstract)
	assert.Equal(t, "Acme Corp", m.Assignee)
	assert.Equal(t, "Jane Doe", m.Inventor)
	assert.Equal(t, "2019-01-02", m.PriorityDate)
	assert.Equal(t, "2019-06-01", m.FilingDate)
	assert.Equal(t, "2020-01-01", m.PublicationDate)
	assert.Equal(t, "2021-03-04", m.GrantDate)

	assert.Equal(t, []types.FamilyMember{
		{Region: "CN", Status: "Expired"},
		{Region: "EP", Status: "Pending"},
		{Region: "US", Status: "Active"},
	}, m.FamilyMembers)

	require.NotNil(t, m.Citations)
	assert.Equal(t, 3, m.Citations.Forward)
	assert.Equal(t, 7, m.Citations.Backward)
}

func TestNormalize_NestedExcludesThisApplication(t *testing.T) {
	m, err := Parse([]byte(nestedPayload))
	require.NoError(t, err)

	assert.Equal(t, "Acme Corp", m.Assignee)
	assert.Equal(t, "Jane Doe", m.Inventor)

	require.Len(t, m.FamilyMembers, 2)
	assert.Equal(t, types.FamilyMember{PatentID: "patent/CN111111A/en", Region: "CN", Status: "Expired"}, m.FamilyMembers[0])
	assert.Equal(t, types.FamilyMember{PatentID: "EP20000001A", Region: "EP", Status: "Pending"}, m.FamilyMembers[1])

	require.NotNil(t, m.Citations)
	assert.Equal(t, 3, m.Citations.Forward)
	assert.Equal(t, 1, m.Citations.Backward)
}

func TestNormalize_NestedAcceptsStringInventorsAndArrayCitations(t *testing.T) {
	m, err := Parse([]byte(`{
	  "title": "T",
	  "inventors": ["Jane Doe"],
	  "cited_by": [{}, {}, {}, {}],
	  "patent_citations": []
	}`))
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", m.Inventor)
	assert.Empty(t, m.Assignee)
	require.NotNil(t, m.Citations)
	assert.Equal(t, 4, m.Citations.Forward)
	assert.Equal(t, 0, m.Citations.Backward)
}

func TestNormalize_ZeroCitationsAbsent(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"flat zero counts", `{"title": "T", "citations": {"forward_citations": 0, "backward_citations": 0}}`},
		{"flat missing counts", `{"title": "T"}`},
		{"nested empty arrays", `{"title": "T", "cited_by": {"original": []}, "patent_citations": {"original": []}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse([]byte(tt.payload))
			require.NoError(t, err)
			assert.Nil(t, m.Citations)
		})
	}
}

func TestMetadata_HasIdentity(t *testing.T) {
	assert.False(t, Metadata{}.HasIdentity())
	assert.False(t, Metadata{Assignee: "Acme"}.HasIdentity())
	assert.True(t, Metadata{Title: "T"}.HasIdentity())
	assert.True(t, Metadata{Abstract: "A"}.HasIdentity())
	assert.True(t, Metadata{PublicationNumber: "US1A"}.HasIdentity())
}

func TestNormalize_Nil(t *testing.T) {
	assert.Equal(t, Metadata{}, Normalize(nil))
}

func TestNormalize_MalformedOptionalFieldsSkipped(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		skipped   []string
		citations *types.CitationCounts
	}{
		{
			name:    "flat citation count as string",
			payload: `{"title": "x", "citations": {"forward_citations": "3"}}`,
			skipped: []string{"citations.forward_citations"},
		},
		{
			name:      "flat one good count kept",
			payload:   `{"title": "x", "citations": {"forward_citations": "3", "backward_citations": 2}}`,
			skipped:   []string{"citations.forward_citations"},
			citations: &types.CitationCounts{Backward: 2},
		},
		{
			name:    "flat citations not an object",
			payload: `{"title": "x", "citations": 12}`,
			skipped: []string{"citations"},
		},
		{
			name:    "nested citations of the wrong type",
			payload: `{"title": "x", "cited_by": "many", "patent_citations": 4}`,
			skipped: []string{"cited_by", "patent_citations"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse([]byte(tt.payload))
			require.NoError(t, err)
			assert.Equal(t, "x", m.Title)
			assert.Equal(t, tt.citations, m.Citations)

			var fields []string
			for _, fe := range m.Skipped {
				fields = append(fields, fe.Field)
			}
			assert.ElementsMatch(t, tt.skipped, fields)
		})
	}
}

func TestNormalize_GroupedCitationsIgnoreScalarMembers(t *testing.T) {
	m, err := Parse([]byte(`{"title": "x", "cited_by": {"original": [1], "total": 5}}`))
	require.NoError(t, err)

	assert.Empty(t, m.Skipped)
	require.NotNil(t, m.Citations)
	assert.Equal(t, 1, m.Citations.Forward)
	assert.Equal(t, 0, m.Citations.Backward)
}

func TestNormalize_NestedPartsDegradeIndependently(t *testing.T) {
	m, err := Parse([]byte(`{
	  "title": "T",
	  "assignees": ["Acme Corp"],
	  "inventors": [42],
	  "worldwide_applications": {
	    "2019": "unknown",
	    "2020": [{"document_id": "patent/EP1A/en", "country_code": "EP", "legal_status": "Pending"}]
	  },
	  "cited_by": [{}]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "Acme Corp", m.Assignee)
	assert.Empty(t, m.Inventor)
	assert.Equal(t, []types.FamilyMember{{PatentID: "patent/EP1A/en", Region: "EP", Status: "Pending"}}, m.FamilyMembers)
	require.NotNil(t, m.Citations)
	assert.Equal(t, 1, m.Citations.Forward)

	require.Len(t, m.Skipped, 2)
	assert.Equal(t, "inventors[0]", m.Skipped[0].Field)
	assert.Equal(t, "worldwide_applications.2019", m.Skipped[1].Field)
	assert.Contains(t, m.Skipped[1].Error(), "metadata field worldwide_applications.2019")
}

func TestNormalize_FlatCountryStatusEntrySkipped(t *testing.T) {
	m, err := Parse([]byte(`{"title": "T", "country_status": {"US": "Active", "EP": 3}}`))
	require.NoError(t, err)

	assert.Equal(t, []types.FamilyMember{{Region: "US", Status: "Active"}}, m.FamilyMembers)
	require.Len(t, m.Skipped, 1)
	assert.Equal(t, "country_status.EP", m.Skipped[0].Field)
}

func TestDecode_IdentityFieldOfWrongTypeFails(t *testing.T) {
	_, err := Parse([]byte(`{"title": 7}`))
	assert.Error(t, err)
}
