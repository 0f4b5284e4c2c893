package news

import (
	"regexp"
	"strings"
)

// similarityThreshold is the Jaccard similarity at or above which two
// normalized titles are treated as the same story.
const similarityThreshold = 0.8

var nonAlphanumRe = regexp.MustCompile(`[^a-z0-9\s]`)

// Deduplicate returns the subsequence of articles that are not duplicates of
// an earlier entry, preserving first-seen order. Articles missing a title or
// URL are discarded. An article is a duplicate when its URL exactly matches
// an accepted article's URL, or when its normalized title's word set has
// Jaccard similarity >= 0.8 against any accepted title.
func Deduplicate(articles []Article) []Article {
	seenURLs := make(map[string]bool)
	var seenTitles []string
	var unique []Article

	for _, a := range articles {
		if a.Title == "" || a.URL == "" {
			continue
		}
		if seenURLs[a.URL] {
			continue
		}

		normalized := normalizeTitle(a.Title)
		duplicate := false
		for _, seen := range seenTitles {
			if titlesSimilar(normalized, seen) {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}

		seenURLs[a.URL] = true
		seenTitles = append(seenTitles, normalized)
		unique = append(unique, a)
	}

	return unique
}

// normalizeTitle lower-cases a title, strips everything except letters,
// digits, and whitespace, and collapses runs of whitespace.
func normalizeTitle(title string) string {
	t := nonAlphanumRe.ReplaceAllString(strings.ToLower(title), "")
	return strings.Join(strings.Fields(t), " ")
}

// titlesSimilar compares two normalized titles by word-set Jaccard
// similarity. Empty word sets never match.
func titlesSimilar(title1, title2 string) bool {
	words1 := wordSet(title1)
	words2 := wordSet(title2)

	if len(words1) == 0 || len(words2) == 0 {
		return false
	}

	intersection := 0
	for w := range words1 {
		if words2[w] {
			intersection++
		}
	}
	union := len(words1) + len(words2) - intersection

	return float64(intersection)/float64(union) >= similarityThreshold
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		set[w] = true
	}
	return set
}
