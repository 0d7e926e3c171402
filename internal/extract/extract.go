// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls the claims, description, and abstract sections out of
// patent document markup and returns them as cleaned plain text.
//
// Extraction never fails the caller. A section that cannot be located is
// reported as absent, and markup that cannot be parsed yields empty Sections
// after a warning is logged.
package extract

import (
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Region selectors. Combined selectors return matches in document order, so
// First() picks the outermost region when regions nest.
const (
	claimsSelector      = `section[itemprop="claims"], div.claims, claims`
	claimSelector       = `.claim, claim`
	descriptionSelector = `section[itemprop="description"], div.description, description`
	abstractSelector    = `section[itemprop="abstract"], div.abstract, abstract`
)

// AbstractPrefix marks a description that was substituted from the abstract.
const AbstractPrefix = "Abstract: "

// leadingNumberRe matches a claim number the document already printed at the
// start of the claim text ("1. A method", "1 . A method").
var leadingNumberRe = regexp.MustCompile(`^(\d+)\s*\.\s*`)

// Need selects which sections the caller wants. FullText implies both
// Claims and Description.
type Need struct {
	Claims      bool
	Description bool
	FullText    bool
}

func (n Need) claims() bool      { return n.Claims || n.FullText }
func (n Need) description() bool { return n.Description || n.FullText }

// Section is an optional block of cleaned text.
type Section struct {
	text    string
	present bool
}

// Present wraps located text.
func Present(text string) Section { return Section{text: text, present: true} }

// Get returns the text and whether the section was located.
func (s Section) Get() (string, bool) { return s.text, s.present }

// Sections is the extracted content of one document.
type Sections struct {
	// Claims holds "<number>. <text>" strings in document order.
	Claims []string

	// Description is the description text, or the abstract prefixed with
	// AbstractPrefix when the document has no description region.
	Description Section

	Abstract Section
}

// Extract locates the requested sections in markup. The abstract is
// extracted whenever it is present. A nil logger discards warnings.
func Extract(markup string, need Need, logger *slog.Logger) Sections {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		logger.Warn("document markup could not be parsed", "error", err)
		return Sections{}
	}

	var out Sections
	abstract := regionText(doc.Find(abstractSelector), logger)
	out.Abstract = abstract

	if need.claims() {
		out.Claims = extractClaims(doc, logger)
	}

	if need.description() {
		if desc := regionText(doc.Find(descriptionSelector), logger); desc.present {
			out.Description = desc
		} else if text, ok := abstract.Get(); ok {
			out.Description = Present(AbstractPrefix + text)
		}
	}

	return out
}

// extractClaims walks the claim units of the outermost claims region.
func extractClaims(doc *goquery.Document, logger *slog.Logger) []string {
	region := doc.Find(claimsSelector).First()
	if region.Length() == 0 {
		return nil
	}

	var claims []string
	region.Find(claimSelector).Each(func(i int, unit *goquery.Selection) {
		// Units nested inside another unit belong to their parent's text.
		if unit.ParentsUntilSelection(region).Filter(claimSelector).Length() > 0 {
			return
		}

		inner, err := unit.Html()
		if err != nil {
			logger.Warn("claim markup could not be rendered", "index", i, "error", err)
			return
		}
		text := CleanText(inner)

		number := claimNumber(unit, len(claims)+1)
		if m := leadingNumberRe.FindStringSubmatch(text); m != nil && m[1] == number {
			text = text[len(m[0]):]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		claims = append(claims, number+". "+text)
	})
	return claims
}

// claimNumber reads the unit's num attribute (e.g. "00003" -> "3"), then its
// id ("CLM-00003"), falling back to the ordinal position.
func claimNumber(unit *goquery.Selection, ordinal int) string {
	for _, attr := range []string{"num", "id"} {
		v, ok := unit.Attr(attr)
		if !ok {
			continue
		}
		digits := strings.TrimLeft(v, "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-_")
		if n, err := strconv.Atoi(digits); err == nil && n > 0 {
			return strconv.Itoa(n)
		}
	}
	return strconv.Itoa(ordinal)
}

// regionText cleans the first element of sel. Regions with no residual text
// count as absent.
func regionText(sel *goquery.Selection, logger *slog.Logger) Section {
	if sel.Length() == 0 {
		return Section{}
	}
	inner, err := sel.First().Html()
	if err != nil {
		logger.Warn("section markup could not be rendered", "error", err)
		return Section{}
	}
	text := CleanText(inner)
	if text == "" {
		return Section{}
	}
	return Present(text)
}
