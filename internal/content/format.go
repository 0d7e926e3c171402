// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package content

import (
	"strings"

	"github.com/pdiddy/patent-content/internal/extract"
	"github.com/pdiddy/patent-content/internal/normalize"
	"github.com/pdiddy/patent-content/internal/truncate"
	"github.com/pdiddy/patent-content/pkg/types"
)

// Format assembles a record for key from normalized metadata and extracted
// sections. A field is set only when its option is on and data exists for
// it. With a budget, each text field is truncated on its own; claims are
// cut to whole claims and the full-text view is cut as one document.
func Format(key string, meta normalize.Metadata, sections extract.Sections, opts Options) types.PatentRecord {
	var rec types.PatentRecord
	budget := opts.MaxLength

	if opts.Metadata {
		rec.PatentID = key
		rec.Title = meta.Title
		rec.PublicationNumber = meta.PublicationNumber
		rec.Assignee = meta.Assignee
		rec.Inventor = meta.Inventor
		rec.PriorityDate = meta.PriorityDate
		rec.FilingDate = meta.FilingDate
		rec.PublicationDate = meta.PublicationDate
		rec.GrantDate = meta.GrantDate
	}

	if opts.Abstract {
		abstract := meta.Abstract
		if abstract == "" {
			abstract, _ = sections.Abstract.Get()
		}
		rec.Abstract = truncate.Text(abstract, budget).Text
	}

	description, _ := sections.Description.Get()
	if opts.Description {
		rec.Description = truncate.Text(description, budget).Text
	}

	if opts.Claims && len(sections.Claims) > 0 {
		// An empty non-nil list tells the caller claims exist but none fit.
		rec.Claims = append(types.ClaimList{}, truncate.Claims(sections.Claims, budget)...)
	}

	if opts.FamilyMembers && len(meta.FamilyMembers) > 0 {
		rec.FamilyMembers = append([]types.FamilyMember(nil), meta.FamilyMembers...)
	}

	if opts.Citations && meta.Citations != nil {
		c := *meta.Citations
		rec.Citations = &c
	}

	if opts.FullText {
		if full := BuildFullText(description, sections.Claims); full != "" {
			rec.FullText = truncate.FullText(full, budget).Text
		}
	}

	return rec
}

// BuildFullText joins a labelled description block and a labelled claims
// block with a blank line. Missing parts are left out; with neither the
// result is empty.
func BuildFullText(description string, claims []string) string {
	var parts []string
	if description != "" {
		parts = append(parts, truncate.DescriptionLabel+description)
	}
	if len(claims) > 0 {
		parts = append(parts, truncate.ClaimsLabel+strings.Join(claims, truncate.BlockSeparator))
	}
	return strings.Join(parts, truncate.BlockSeparator)
}
