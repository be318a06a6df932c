package normalize

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/hireoo/extraction-service/internal/jobinfo"
)

// ExtractMetadata reports media presence and text statistics for the raw
// HTML of a post. Parse failures yield zero-valued metadata.
func ExtractMetadata(rawHTML string) jobinfo.PostMetadata {
	var meta jobinfo.PostMetadata

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return meta
	}

	meta.HasImages = doc.Find("img, picture").Length() > 0
	meta.HasVideo = doc.Find("video, iframe").Length() > 0
	meta.HasLinks = doc.Find("a[href]").Length() > 0

	text := doc.Text()
	meta.CharacterCount = len(text)
	meta.WordCount = len(strings.Fields(text))

	return meta
}

// jobKeywords are phrases that signal hiring intent in a post.
var jobKeywords = []string{
	"hiring", "hiring now", "we're hiring", "we are hiring",
	"looking for", "seeking", "recruiting", "join our team",
	"open position", "career opportunity", "job opening",
	"vacancy", "positions available", "talent acquisition",
	"growing team", "expand",
}

// IsJobPost reports whether the cleaned text looks like a job posting.
func IsJobPost(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range jobKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
