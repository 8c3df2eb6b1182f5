package extract

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidateDate accepts an empty string or a real calendar date in
// YYYY-MM-DD form.
func ValidateDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if !datePattern.MatchString(s) {
		return fmt.Errorf("invalid date format %q, use YYYY-MM-DD", s)
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		return fmt.Errorf("invalid date %q", s)
	}
	return nil
}

// ValidateDateRange validates both bounds and their ordering. Either bound
// may be empty.
func ValidateDateRange(from, to string) error {
	if err := ValidateDate(from); err != nil {
		return err
	}
	if err := ValidateDate(to); err != nil {
		return err
	}
	if from != "" && to != "" && from > to {
		return fmt.Errorf("from date %q is after to date %q", from, to)
	}
	return nil
}

// passesDateRange compares the YYYY-MM-DD prefix of an RFC 3339 publish
// time lexicographically against the bounds.
func passesDateRange(publishedAt, from, to string) bool {
	if from == "" && to == "" {
		return true
	}
	day := publishedAt
	if len(day) > 10 {
		day = day[:10]
	}
	if from != "" && day < from {
		return false
	}
	if to != "" && day > to {
		return false
	}
	return true
}

// ParseWords splits a comma-separated filter string into cleaned words.
func ParseWords(s string) []string {
	var words []string
	for _, w := range strings.Split(s, ",") {
		if w = strings.TrimSpace(w); w != "" {
			words = append(words, w)
		}
	}
	return words
}

// compileWords turns the filter words into whole-word case-insensitive
// matchers, compiled once per extraction rather than per comment.
func compileWords(words []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(words))
	for _, word := range words {
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}
		res = append(res, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(word)+`\b`))
	}
	return res
}

// matchesAnyWord is OR logic over the compiled matchers. An empty matcher
// list passes everything.
func matchesAnyWord(text string, res []*regexp.Regexp) bool {
	if len(res) == 0 {
		return true
	}
	for _, re := range res {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
