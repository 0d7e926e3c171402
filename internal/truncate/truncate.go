// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package truncate shortens text and claim lists to a character budget
// without splitting a claim and, where possible, at a paragraph, line, or
// word boundary. Lengths are counted in runes.
package truncate

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Labels used by the combined full-text view.
const (
	DescriptionLabel = "DESCRIPTION:\n"
	ClaimsLabel      = "CLAIMS:\n"

	// BlockSeparator joins blocks and claims inside the full-text view.
	BlockSeparator = "\n\n"
)

// boundaryFloor is the fraction of the budget below which a boundary cut is
// rejected in favour of a hard cut.
const boundaryFloor = 0.8

// Result pairs content with whether it was shortened.
type Result struct {
	Text      string
	Truncated bool
}

// Indicator is appended to shortened text.
func Indicator(shown, total int) string {
	return fmt.Sprintf("\n\n[Content truncated - %d of %d characters shown]", shown, total)
}

// Text returns text unchanged when it fits in maxLen runes. Otherwise it cuts at
// the last paragraph break, else the last newline, else the last space within
// the budget, falling back to a hard cut at maxLen when the boundary sits before
// 80% of the budget or none exists. A non-positive maxLen disables truncation.
func Text(text string, maxLen int) Result {
	total := utf8.RuneCountInString(text)
	if maxLen <= 0 || total <= maxLen {
		return Result{Text: text}
	}

	runes := []rune(text)
	kept := string(runes[:cutPoint(runes[:maxLen], maxLen)])
	return Result{
		Text:      kept + Indicator(utf8.RuneCountInString(kept), total),
		Truncated: true,
	}
}

// cutPoint picks the rune offset at which window should be cut.
func cutPoint(window []rune, maxLen int) int {
	s := string(window)
	cut := strings.LastIndex(s, "\n\n")
	if cut < 0 {
		cut = strings.LastIndex(s, "\n")
	}
	if cut < 0 {
		cut = strings.LastIndex(s, " ")
	}
	if cut < 0 {
		return maxLen
	}

	at := utf8.RuneCountInString(s[:cut])
	if float64(at) < float64(maxLen)*boundaryFloor {
		return maxLen
	}
	return at
}

// Claims returns the longest prefix of claims whose lengths, each counted
// with a two-character separator, sum to at most maxLen. A claim is never
// shortened; if the first claim alone exceeds the budget the result is
// empty. A non-positive maxLen disables truncation.
func Claims(claims []string, maxLen int) []string {
	if maxLen <= 0 {
		return claims
	}

	used := 0
	for i, c := range claims {
		used += utf8.RuneCountInString(c) + len(BlockSeparator)
		if used > maxLen {
			return claims[:i]
		}
	}
	return claims
}

// FullText shortens a combined DESCRIPTION/CLAIMS view. The description
// block is kept whole when it fits, otherwise it is cut with the Text rule
// and the claims block is dropped. When the description fits, the remaining
// budget takes whole claims in order. Text without a claims block is cut
// with the Text rule.
func FullText(text string, maxLen int) Result {
	total := utf8.RuneCountInString(text)
	if maxLen <= 0 || total <= maxLen {
		return Result{Text: text}
	}

	head, claims, ok := splitClaims(text)
	if !ok {
		return Text(text, maxLen)
	}

	headLen := utf8.RuneCountInString(head)
	if headLen > maxLen {
		runes := []rune(head)
		kept := string(runes[:cutPoint(runes[:maxLen], maxLen)])
		return Result{
			Text:      kept + Indicator(utf8.RuneCountInString(kept), total),
			Truncated: true,
		}
	}

	header := ClaimsLabel
	if head != "" {
		header = BlockSeparator + ClaimsLabel
	}

	var b strings.Builder
	b.WriteString(head)
	used := headLen + utf8.RuneCountInString(header)
	n := 0
	for _, c := range claims {
		need := utf8.RuneCountInString(c)
		if n > 0 {
			need += len(BlockSeparator)
		}
		if used+need > maxLen {
			break
		}
		if n == 0 {
			b.WriteString(header)
		} else {
			b.WriteString(BlockSeparator)
		}
		b.WriteString(c)
		used += need
		n++
	}

	kept := b.String()
	return Result{
		Text:      kept + Indicator(utf8.RuneCountInString(kept), total),
		Truncated: true,
	}
}

// splitClaims separates the text before the claims block from the claims
// themselves. ok is false when the text has no claims block.
func splitClaims(text string) (head string, claims []string, ok bool) {
	var body string
	switch {
	case strings.HasPrefix(text, ClaimsLabel):
		body = text[len(ClaimsLabel):]
	default:
		i := strings.Index(text, BlockSeparator+ClaimsLabel)
		if i < 0 {
			return "", nil, false
		}
		head = text[:i]
		body = text[i+len(BlockSeparator)+len(ClaimsLabel):]
	}
	if body == "" {
		return head, nil, true
	}
	return head, strings.Split(body, BlockSeparator), true
}
