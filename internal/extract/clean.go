// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// embeddedBlockRe matches script and style elements including their bodies.
var embeddedBlockRe = regexp.MustCompile(`(?is)<(script|style)\b[^>]*>.*?</(script|style)\s*>`)

// stripPolicy removes every remaining tag and leaves a space where each tag
// stood so adjacent words never run together.
var stripPolicy = func() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	p.AddSpaceWhenStrippingTag(true)
	return p
}()

// entityDecoder decodes the fixed entity set. Numeric forms are included
// because the sanitizer re-escapes quotes that way.
var entityDecoder = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#34;", `"`,
	"&apos;", "'",
	"&#39;", "'",
)

// CleanText turns a markup fragment into a single line of plain text.
//
//	CleanText("Testing&nbsp;&amp;&nbsp;&lt;tags&gt;") // "Testing & <tags>"
func CleanText(markup string) string {
	text := embeddedBlockRe.ReplaceAllString(markup, " ")
	text = stripPolicy.Sanitize(text)
	text = entityDecoder.Replace(text)
	return strings.Join(strings.Fields(text), " ")
}
