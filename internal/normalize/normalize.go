// Package normalize converts raw post markup into clean plain text suitable
// for entity detection and LLM extraction.
package normalize

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// minCleanedLength is the absolute floor below which a stripped result is
// treated as "extraction destroyed the content".
const minCleanedLength = 10

// Stripper transforms raw HTML into plain text with block-level separators
// preserved as line breaks. Implementations decide which markup library backs
// the transformation.
type Stripper interface {
	Strip(rawHTML string) (string, error)

	// Name returns the stripper type for logging and health reporting.
	Name() string
}

// noiseSelectors lists the node categories removed before text serialization:
// social widgets, author chrome, advertisement markers, and generic
// non-content elements.
var noiseSelectors = []string{
	`[data-test-id="social-counts"]`,
	`[data-test-id="social-actions"]`,
	`[data-test-id="feed-shared-control-menu"]`,
	`.feed-shared-control-menu`,

	`[data-test-id="profile-photo"]`,
	`.feed-shared-actor__image`,
	`.feed-shared-actor__meta`,

	`.feed-shared-social-counts`,
	`.feed-shared-social-actions`,
	`.feed-shared-control-menu__trigger`,

	`.emoji-unicode`,

	`[data-test-id*="ad"]`,
	`.ad-banner`,

	`script`,
	`style`,
	`noscript`,
	`svg`,
	`button`,
	`form`,
}

// blockElements are serialized with a trailing line break so that text from
// adjacent blocks does not run together.
var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"section": true, "article": true, "header": true, "footer": true,
	"tr": true, "blockquote": true,
}

// GoqueryStripper implements Stripper on top of goquery selector matching.
type GoqueryStripper struct{}

// NewGoqueryStripper returns the default markup stripper.
func NewGoqueryStripper() *GoqueryStripper {
	return &GoqueryStripper{}
}

// Name returns the stripper type.
func (s *GoqueryStripper) Name() string {
	return "goquery"
}

// Strip parses the HTML, removes noise nodes by selector, and serializes the
// remaining text with block boundaries as line breaks.
func (s *GoqueryStripper) Strip(rawHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", err
	}

	for _, selector := range noiseSelectors {
		doc.Find(selector).Remove()
	}

	var sb strings.Builder
	for _, node := range doc.Selection.Nodes {
		writeText(&sb, node)
	}
	return sb.String(), nil
}

// writeText walks the node tree collecting text content, inserting line
// breaks at block element boundaries.
func writeText(sb *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		writeText(sb, child)
	}
	if n.Type == html.ElementNode && blockElements[n.Data] {
		sb.WriteString("\n")
	}
}

// cleanupRewrites is the fixed ordered sequence of text rewrites applied
// after markup stripping. Order matters: newline collapsing runs before
// general whitespace collapsing.
var cleanupRewrites = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`\n+`), "\n"},
	{regexp.MustCompile(`\s+`), " "},
	{regexp.MustCompile(`^\s+`), ""},
	{regexp.MustCompile(`\s+$`), ""},
	{regexp.MustCompile(`•`), "-"},
	{regexp.MustCompile(`…`), "..."},
}

// CleanText applies the fixed cleanup rewrite sequence to stripped text.
// It is a pure function of its input.
func CleanText(text string) string {
	for _, rw := range cleanupRewrites {
		text = rw.pattern.ReplaceAllString(text, rw.replacement)
	}
	return strings.TrimSpace(text)
}

// Normalizer converts a raw post into a single clean plain-text string.
// It never fails: when stripping destroys too much content or the markup
// cannot be parsed, the plain-text fallback is returned verbatim.
type Normalizer struct {
	stripper Stripper
}

// New creates a Normalizer backed by the given stripper. A nil stripper
// selects the goquery default.
func New(stripper Stripper) *Normalizer {
	if stripper == nil {
		stripper = NewGoqueryStripper()
	}
	return &Normalizer{stripper: stripper}
}

// Stripper returns the backing markup stripper.
func (n *Normalizer) Stripper() Stripper {
	return n.stripper
}

// Normalize converts raw HTML plus a plain-text fallback into normalized
// text. When HTML is empty the fallback is returned unchanged. When the
// cleaned result is shorter than half the fallback, or below the absolute
// minimum, the fallback wins: over-aggressive stripping is a failure of this
// stage, not of the pipeline.
func (n *Normalizer) Normalize(rawHTML, rawText string) string {
	if strings.TrimSpace(rawHTML) == "" {
		return rawText
	}

	stripped, err := n.stripper.Strip(rawHTML)
	if err != nil {
		if rawText != "" {
			return rawText
		}
		return rawHTML
	}

	cleaned := CleanText(stripped)
	if len(cleaned) < minCleanedLength || len(cleaned) < len(rawText)/2 {
		if rawText != "" {
			return rawText
		}
		return rawHTML
	}

	return cleaned
}
