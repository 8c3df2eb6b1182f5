package spamcheck

import (
	"regexp"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Cyrillic and Greek letters that are visually identical to Latin ones.
// Mapping these before pattern matching is the critical first step: a
// keyword like "соntасt" written with Cyrillic о/с/а bypasses every literal
// matcher otherwise.
var homoglyphs = map[rune]rune{
	// Cyrillic lowercase
	'а': 'a', 'с': 'c', 'е': 'e', 'о': 'o', 'р': 'p',
	'х': 'x', 'у': 'y', 'і': 'i', 'ј': 'j', 'ѕ': 's',
	'һ': 'h', 'ԁ': 'd', 'ԛ': 'q', 'ԝ': 'w', 'ᴦ': 'r',
	// Cyrillic uppercase
	'А': 'A', 'В': 'B', 'С': 'C', 'Е': 'E', 'Н': 'H',
	'К': 'K', 'М': 'M', 'О': 'O', 'Р': 'P', 'Т': 'T',
	'Х': 'X', 'У': 'Y', 'І': 'I',
	// Greek
	'α': 'a', 'ο': 'o', 'ρ': 'p', 'τ': 't', 'υ': 'u',
	'ν': 'v', 'ω': 'w', 'χ': 'x',
}

// Leetspeak and symbol substitutions folded back to letters.
var leetMap = map[rune]rune{
	'@': 'a', '4': 'a', '^': 'a',
	'8': 'b',
	'(': 'c', '<': 'c', '{': 'c',
	'3': 'e', '€': 'e',
	'6': 'g', '9': 'g',
	'#': 'h',
	'1': 'i', '!': 'i', '|': 'i',
	'0': 'o', 'ø': 'o',
	'$': 's', '5': 's',
	'7': 't', '+': 't',
	'µ': 'u',
	'2': 'z',
}

// Invisible code points stripped before any other processing.
var zeroWidth = map[rune]struct{}{
	'​': {}, // zero-width space
	'‌': {}, // zero-width non-joiner
	'‍': {}, // zero-width joiner
	'⁠': {}, // word joiner
	'\uFEFF': {}, // BOM
	'­': {}, // soft hyphen
	'͏': {}, // combining grapheme joiner
	'⁡': {}, // function application
	'⁢': {}, // invisible times
	'⁣': {}, // invisible separator
	'⁤': {}, // invisible plus
}

// Glyphs used to fake a verification badge in display names.
var fakeBadges = map[rune]struct{}{
	'✓': {}, '✔': {}, '✅': {}, '☑': {}, '🔵': {},
	'⚪': {}, '🔘': {}, '🔷': {}, '💎': {}, '⭐': {},
}

var (
	urlSpanRe    = regexp.MustCompile(`https?://\S+|www\.\S+|t\.me/\S+|\S+\.ly/\S+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// NFKD decomposition plus combining-mark removal collapses accented,
// ligature and compatibility forms ("é" -> "e", "ﬁ" -> "fi") to base
// Latin letters. Chains are stateful, so they are pooled rather than shared.
var decomposePool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKD,
			runes.Remove(runes.In(unicode.Mn)),
		)
	},
}

// Normalize canonicalizes raw comment text so that pattern matching is
// obfuscation-resistant. Total over all inputs; the result is not meant to
// be human-readable.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	// 1. Strip invisible characters.
	s := strings.Map(func(r rune) rune {
		if _, ok := zeroWidth[r]; ok {
			return -1
		}
		return r
	}, text)

	// 2. Map homoglyphs to Latin. Runs unconditionally.
	s = strings.Map(func(r rune) rune {
		if latin, ok := homoglyphs[r]; ok {
			return latin
		}
		return r
	}, s)

	// 3. NFKD + drop combining marks.
	tr := decomposePool.Get().(transform.Transformer)
	decomposed, _, err := transform.String(tr, s)
	tr.Reset()
	decomposePool.Put(tr)
	if err == nil {
		s = decomposed
	}

	// 4. Undo spelled-out obfuscation (t.e.l.e.g.r.a.m -> telegram).
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = deobfuscateWord(w)
	}
	s = strings.Join(words, " ")

	// 5. Fold leetspeak, leaving URL-like spans untouched.
	s = foldLeet(s)

	// 6. Collapse whitespace.
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// HasHomoglyphs reports whether text contains any confusable Cyrillic or
// Greek letter, independent of normalization.
func HasHomoglyphs(text string) bool {
	for _, r := range text {
		if _, ok := homoglyphs[r]; ok {
			return true
		}
	}
	return false
}

// HasFakeBadge reports whether text contains a checkmark or badge glyph,
// used for impersonation detection on author display names.
func HasFakeBadge(text string) bool {
	for _, r := range text {
		if _, ok := fakeBadges[r]; ok {
			return true
		}
	}
	return false
}

const deobfuscatePunct = ".\"'-_`"

// deobfuscateWord strips separator punctuation from tokens that look
// deliberately spelled out. A token qualifies when it has at least five
// runes, at least two separator characters, and separators make up >= 40%
// of its alphanumeric length.
func deobfuscateWord(word string) string {
	rs := []rune(word)
	if len(rs) < 5 {
		return word
	}
	var punct, alnum int
	for _, r := range rs {
		switch {
		case strings.ContainsRune(deobfuscatePunct, r):
			punct++
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			alnum++
		}
	}
	if punct < 2 || float64(punct) < float64(alnum)*0.4 {
		return word
	}
	var b strings.Builder
	b.Grow(len(word))
	for _, r := range rs {
		if !strings.ContainsRune(deobfuscatePunct, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// foldLeet applies the leetspeak mapping everywhere except inside URL-like
// spans, which must survive verbatim for the URL matchers.
func foldLeet(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, span := range urlSpanRe.FindAllStringIndex(s, -1) {
		b.WriteString(foldSegment(s[last:span[0]]))
		b.WriteString(s[span[0]:span[1]])
		last = span[1]
	}
	b.WriteString(foldSegment(s[last:]))
	return b.String()
}

// foldSegment folds each whitespace-delimited token of a non-URL segment,
// preserving the whitespace between tokens.
func foldSegment(seg string) string {
	var b strings.Builder
	b.Grow(len(seg))
	start := -1
	flush := func(end int) {
		if start >= 0 {
			b.WriteString(foldToken(seg[start:end]))
			start = -1
		}
	}
	for i, r := range seg {
		if unicode.IsSpace(r) {
			flush(i)
			b.WriteRune(r)
			continue
		}
		if start < 0 {
			start = i
		}
	}
	flush(len(seg))
	return b.String()
}

func foldToken(tok string) string {
	// Paths and URL fragments are left alone; examples like wa.me/123 carry
	// digits the redirect matchers need intact.
	if strings.ContainsRune(tok, '/') {
		return tok
	}
	for _, prefix := range [...]string{"http", "www", "t.me", "bit.ly"} {
		if strings.HasPrefix(tok, prefix) {
			return tok
		}
	}
	// A leading @ is a mention marker; keep it and fold the rest so that
	// wh@ts@pp still folds but @handle stays addressable.
	if strings.HasPrefix(tok, "@") && len(tok) > 1 {
		return "@" + foldRunes(tok[1:])
	}
	return foldRunes(tok)
}

func foldRunes(s string) string {
	return strings.Map(func(r rune) rune {
		if folded, ok := leetMap[r]; ok {
			return folded
		}
		return r
	}, s)
}
