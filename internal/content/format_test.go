// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package content

import (
	"encoding/json"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/patent-content/internal/extract"
	"github.com/pdiddy/patent-content/internal/normalize"
	"github.com/pdiddy/patent-content/pkg/types"
)

const testKey = "patent/US1234567A/en"

func fullMetadata() normalize.Metadata {
	return normalize.Metadata{
		Title:             "Widget assembly",
		PublicationNumber: "US1234567A",
		Abstract:          "A compact widget.",
		Assignee:          "Acme Corp",
		Inventor:          "Jane Doe",
		PriorityDate:      "2019-01-02",
		FilingDate:        "2019-06-01",
		PublicationDate:   "2020-01-01",
		GrantDate:         "2021-03-04",
		FamilyMembers:     []types.FamilyMember{{PatentID: "patent/EP1A/en", Region: "EP", Status: "Pending"}},
		Citations:         &types.CitationCounts{Forward: 2, Backward: 5},
	}
}

func fullSections() extract.Sections {
	return extract.Sections{
		Claims:      []string{"1. A method.", "2. The method of claim 1."},
		Description: extract.Present("The widget is described here."),
		Abstract:    extract.Present("Document abstract."),
	}
}

// jsonKeys returns the sorted top-level keys of rec's JSON form.
func jsonKeys(t *testing.T, rec types.PatentRecord) []string {
	t.Helper()
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var metadataKeys = []string{
	"assignee", "filing_date", "grant_date", "inventor", "patent_id",
	"priority_date", "publication_date", "publication_number", "title",
}

func TestFormat_AbstractOnly(t *testing.T) {
	rec := Format(testKey, fullMetadata(), fullSections(), Options{Abstract: true})

	assert.Equal(t, types.PatentRecord{Abstract: "A compact widget."}, rec)
	assert.Equal(t, []string{"abstract"}, jsonKeys(t, rec))
}

func TestFormat_SelectiveInclusionEveryCombination(t *testing.T) {
	for mask := 0; mask < 1<<len(Fields); mask++ {
		var opts Options
		var want []string
		for i, f := range Fields {
			if mask&(1<<i) == 0 {
				continue
			}
			opts.set(f)
			if f == FieldMetadata {
				want = append(want, metadataKeys...)
			} else {
				want = append(want, string(f))
			}
		}
		sort.Strings(want)
		if want == nil {
			want = []string{}
		}

		rec := Format(testKey, fullMetadata(), fullSections(), opts)
		assert.Equal(t, want, jsonKeys(t, rec), "fields %v", opts.Selected())
	}
}

func TestFormat_AbstractFallsBackToDocument(t *testing.T) {
	meta := fullMetadata()
	meta.Abstract = ""

	rec := Format(testKey, meta, fullSections(), Options{Abstract: true})
	assert.Equal(t, "Document abstract.", rec.Abstract)

	rec = Format(testKey, meta, extract.Sections{}, Options{Abstract: true})
	assert.Empty(t, jsonKeys(t, rec))
}

func TestFormat_MissingDataLeavesFieldAbsent(t *testing.T) {
	meta := fullMetadata()
	meta.Citations = nil
	meta.FamilyMembers = nil

	opts := Options{Claims: true, Description: true, FullText: true, Citations: true, FamilyMembers: true}
	rec := Format(testKey, meta, extract.Sections{}, opts)
	assert.Empty(t, jsonKeys(t, rec))
}

func TestFormat_FullText(t *testing.T) {
	rec := Format(testKey, fullMetadata(), fullSections(), Options{FullText: true})

	assert.Equal(t,
		"DESCRIPTION:\nThe widget is described here.\n\nCLAIMS:\n1. A method.\n\n2. The method of claim 1.",
		rec.FullText)
	assert.Empty(t, rec.Claims)
	assert.Empty(t, rec.Description)
}

func TestFormat_BudgetAppliesPerField(t *testing.T) {
	sections := extract.Sections{
		Claims:      []string{"1. A method comprising a first step.", "2. The method of claim 1, comprising more."},
		Description: extract.Present(strings.Repeat("word ", 30) + "end."),
	}
	opts := Options{Claims: true, Description: true, FullText: true, MaxLength: 40}

	rec := Format(testKey, fullMetadata(), sections, opts)

	assert.Equal(t, types.ClaimList{"1. A method comprising a first step."}, rec.Claims)
	assert.Contains(t, rec.Description, "[Content truncated - ")
	assert.True(t, strings.HasPrefix(rec.FullText, "DESCRIPTION:\nword word"))
	assert.Contains(t, rec.FullText, "[Content truncated - ")
	assert.NotContains(t, rec.FullText, "CLAIMS:")

	// The untruncated sections are left alone.
	assert.Len(t, sections.Claims, 2)
}

func TestFormat_ClaimsOverBudgetStayPresent(t *testing.T) {
	sections := extract.Sections{Claims: []string{"1. A claim longer than the budget."}}
	rec := Format(testKey, normalize.Metadata{}, sections, Options{Claims: true, MaxLength: 10})

	require.NotNil(t, rec.Claims)
	assert.Empty(t, rec.Claims)

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"claims": []}`, string(data))

	out, err := yaml.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, "claims: []\n", string(out))

	none := Format(testKey, normalize.Metadata{}, extract.Sections{}, Options{Claims: true, MaxLength: 10})
	data, err = json.Marshal(none)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func TestBuildFullText(t *testing.T) {
	tests := []struct {
		name        string
		description string
		claims      []string
		want        string
	}{
		{"neither", "", nil, ""},
		{"description only", "Desc.", nil, "DESCRIPTION:\nDesc."},
		{"claims only", "", []string{"1. A.", "2. B."}, "CLAIMS:\n1. A.\n\n2. B."},
		{"both", "Desc.", []string{"1. A."}, "DESCRIPTION:\nDesc.\n\nCLAIMS:\n1. A."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildFullText(tt.description, tt.claims))
		})
	}
}
