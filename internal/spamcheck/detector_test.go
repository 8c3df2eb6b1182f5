package spamcheck

import (
	"math"
	"strings"
	"testing"
)

func newTestDetector() *Detector {
	return New(Options{Threshold: ThresholdModerate})
}

//
// ---- SCORING PROPERTIES ----
//

func TestAnalyze_ScoreInRangeAndDeterministic(t *testing.T) {
	d := newTestDetector()
	texts := []string{
		"",
		"great video!",
		"Check out my crypto channel, DM me on telegram!",
		"at 3:45 this is exactly what I needed",
		"frее bitсоin guaranteed returns dm me",
		"📌 Pinned by creator, claim your prize at bit.ly/xyz123",
		strings.Repeat("a thoughtful sentence about the topic. ", 10),
	}
	for _, text := range texts {
		first := d.Analyze(text, "", 0)
		second := d.Analyze(text, "", 0)
		if first.Score < 0 || first.Score > 1 {
			t.Fatalf("score out of range for %q: %v", text, first.Score)
		}
		if first.Score != second.Score || first.IsSpam != second.IsSpam {
			t.Fatalf("re-analysis of %q not stable: %v/%v vs %v/%v",
				text, first.Score, first.IsSpam, second.Score, second.IsSpam)
		}
	}
}

func TestAnalyze_EmptyAndWhitespaceText(t *testing.T) {
	d := newTestDetector()
	for _, text := range []string{"", "   ", "\t\n  "} {
		res := d.Analyze(text, "", 0)
		if res.IsSpam || res.Score != 0 {
			t.Fatalf("expected empty input %q to be clean, got score %v spam %v", text, res.Score, res.IsSpam)
		}
		if len(res.Signals) != 0 {
			t.Fatalf("expected no signals for empty input, got %+v", res.Signals)
		}
	}
}

func TestCombineWeights_DiminishingReturns(t *testing.T) {
	// Two equal weights must combine to 1.5w, not 2w.
	signals := []Signal{{Weight: 0.3}, {Weight: 0.3}}
	got := combineWeights(signals)
	if math.Abs(got-0.45) > 1e-9 {
		t.Fatalf("expected 1.5w = 0.45, got %v", got)
	}
}

func TestAnalyze_DiminishingReturnsEndToEnd(t *testing.T) {
	d := newTestDetector()
	// Engagement bait (0.15) plus a generic URL (0.15): base 0.15 + 0.075.
	res := d.Analyze("like if you agree example.com/page", "", 0)
	if len(res.Signals) != 2 {
		t.Fatalf("expected exactly two signals, got %+v", res.Signals)
	}
	if math.Abs(res.Score-0.225) > 1e-9 {
		t.Fatalf("expected score 0.225, got %v", res.Score)
	}
}

func TestAnalyze_ThresholdClamped(t *testing.T) {
	if got := New(Options{Threshold: 1.7}).Threshold(); got != 1 {
		t.Fatalf("expected threshold clamped to 1, got %v", got)
	}
	if got := New(Options{Threshold: -0.3}).Threshold(); got != 0 {
		t.Fatalf("expected threshold clamped to 0, got %v", got)
	}
}

//
// ---- ALLOW / DENY LISTS ----
//

func TestAnalyze_BlacklistShortCircuit(t *testing.T) {
	d := New(Options{Threshold: ThresholdModerate, Blacklist: []string{"buy followers"}})
	res := d.Analyze("Buy Followers cheap today", "", 0)
	if !res.IsSpam || res.Score != 1.0 {
		t.Fatalf("expected blacklisted text to score 1.0 spam, got %v/%v", res.Score, res.IsSpam)
	}
	if len(res.Signals) != 1 || res.Signals[0].Category != CategoryBotPattern {
		t.Fatalf("expected single bot-pattern signal, got %+v", res.Signals)
	}
	if res.Signals[0].Matched != "Buy Followers" {
		t.Fatalf("expected matched fragment with original casing, got %q", res.Signals[0].Matched)
	}
}

func TestAnalyze_WhitelistBypassesDetection(t *testing.T) {
	d := New(Options{
		Threshold: ThresholdModerate,
		Blacklist: []string{"crypto"},
		Whitelist: []string{"my channel"},
	})
	// Whitelist is checked first: it wins even over blacklisted content.
	res := d.Analyze("crypto talk over on my channel, guaranteed profit!", "", 0)
	if res.IsSpam || res.Score != 0 {
		t.Fatalf("expected whitelisted text to be clean, got %v/%v", res.Score, res.IsSpam)
	}
	if len(res.Legitimacy) != 1 || res.Legitimacy[0].Label != "Matched whitelist pattern" {
		t.Fatalf("expected whitelist legitimacy signal, got %+v", res.Legitimacy)
	}
}

func TestNew_DropsInvalidPhrasesKeepsRest(t *testing.T) {
	d := New(Options{Threshold: ThresholdModerate, Blacklist: []string{"", "   ", "valid phrase"}})
	if got := len(d.patterns.blacklist); got != 1 {
		t.Fatalf("expected empty phrases dropped, got %d compiled", got)
	}
	if !d.IsSpam("this contains a VALID phrase indeed", "", 0) {
		t.Fatalf("expected surviving blacklist phrase to match")
	}
}

//
// ---- OBFUSCATION ----

func TestAnalyze_HomoglyphKeywordStillFires(t *testing.T) {
	d := newTestDetector()
	// "bitсоin" with Cyrillic с and о.
	res := d.Analyze("get frее bitсоin now", "", 0)
	if !res.HadObfuscation {
		t.Fatalf("expected had_obfuscation to be set")
	}
	var sawObfuscation, sawCrypto bool
	for _, c := range res.Categories {
		switch c {
		case CategoryObfuscation:
			sawObfuscation = true
		case CategoryCryptoScam:
			sawCrypto = true
		}
	}
	if !sawObfuscation || !sawCrypto {
		t.Fatalf("expected obfuscation and crypto categories, got %v", res.Categories)
	}
}

//
// ---- ENGAGEMENT CAPPING ----

func TestAnalyze_EngagementBonusCappedOnStrongSpam(t *testing.T) {
	d := newTestDetector()
	// Seed phrase scam alone gives base 0.75, over the cap line.
	res := d.Analyze("send me your seed phrase to claim rewards", "", 5000)
	eng := findLegitimacy(t, res, "engagement")
	if eng.Bonus != likesCappedBonus {
		t.Fatalf("expected engagement bonus capped to %v, got %v", likesCappedBonus, eng.Bonus)
	}
	if !strings.Contains(eng.Label, "[capped - high spam signals]") {
		t.Fatalf("expected capped label, got %q", eng.Label)
	}
	if !res.IsSpam {
		t.Fatalf("expected inflated engagement not to launder spam, score %v", res.Score)
	}
}

func TestAnalyze_EngagementBonusUncappedOnWeakSignals(t *testing.T) {
	d := newTestDetector()
	// One weak bot-phrase signal keeps the base score under the cap line.
	res := d.Analyze("this is exactly what i needed", "", 150)
	eng := findLegitimacy(t, res, "engagement")
	if eng.Bonus != likesHighBonus {
		t.Fatalf("expected full engagement bonus %v, got %v", likesHighBonus, eng.Bonus)
	}
	if strings.Contains(eng.Label, "capped") {
		t.Fatalf("expected uncapped label, got %q", eng.Label)
	}
}

func TestAnalyze_CommunityValidatedTier(t *testing.T) {
	d := newTestDetector()
	res := d.Analyze("this is exactly what i needed", "", 42)
	eng := findLegitimacy(t, res, "Community validated")
	if eng.Bonus != likesCommunityBonus {
		t.Fatalf("expected community bonus %v, got %v", likesCommunityBonus, eng.Bonus)
	}
	if eng.Matched != "42 likes" {
		t.Fatalf("expected matched text with like count, got %q", eng.Matched)
	}
}

func findLegitimacy(t *testing.T, res Result, labelPart string) LegitimacySignal {
	t.Helper()
	for _, ls := range res.Legitimacy {
		if strings.Contains(strings.ToLower(ls.Label), strings.ToLower(labelPart)) ||
			strings.Contains(ls.Label, labelPart) {
			return ls
		}
	}
	t.Fatalf("no legitimacy signal matching %q in %+v", labelPart, res.Legitimacy)
	return LegitimacySignal{}
}

//
// ---- AUTHOR SIGNALS ----

func TestAnalyze_FakeBadgeInAuthorName(t *testing.T) {
	d := newTestDetector()
	res := d.Analyze("nice video", "MrBeast ✅", 0)
	if !hasCategory(res, CategoryImpersonation) {
		t.Fatalf("expected impersonation signal for badge in author name, got %+v", res.Signals)
	}
}

func TestAnalyze_SuspiciousAuthorSuffix(t *testing.T) {
	d := newTestDetector()
	res := d.Analyze("nice video", "CreatorGiveaway", 0)
	if !hasCategory(res, CategoryImpersonation) {
		t.Fatalf("expected impersonation signal for suffix, got %+v", res.Signals)
	}
	clean := d.Analyze("nice video", "RegularViewer42", 0)
	if hasCategory(clean, CategoryImpersonation) {
		t.Fatalf("expected no impersonation signal for plain name, got %+v", clean.Signals)
	}
}

func hasCategory(res Result, c Category) bool {
	for _, got := range res.Categories {
		if got == c {
			return true
		}
	}
	return false
}

//
// ---- END-TO-END EXAMPLES ----

func TestAnalyze_SpamPromotion(t *testing.T) {
	d := newTestDetector()
	res := d.Analyze("Check out my crypto channel, DM me on telegram!", "", 0)
	if !res.IsSpam {
		t.Fatalf("expected spam verdict, got score %v", res.Score)
	}
	if len(res.Signals) < 2 {
		t.Fatalf("expected multiple spam signals, got %+v", res.Signals)
	}
	if !hasCategory(res, CategoryCryptoScam) || !hasCategory(res, CategoryContactSolicitation) {
		t.Fatalf("expected crypto and solicitation categories, got %v", res.Categories)
	}
}

func TestAnalyze_GenuinePraise(t *testing.T) {
	d := newTestDetector()
	res := d.Analyze("Great explanation, I learned a lot, thanks!", "", 0)
	if res.IsSpam {
		t.Fatalf("expected clean verdict, got score %v", res.Score)
	}
	if res.Score != 0 {
		t.Fatalf("expected score 0 after legitimacy bonuses, got %v", res.Score)
	}
	if len(res.Legitimacy) == 0 {
		t.Fatalf("expected genuine-discussion legitimacy signal")
	}
}

func TestAnalyze_TimestampOffsetsBotPhrase(t *testing.T) {
	d := newTestDetector()
	res := d.Analyze("at 3:45 this is exactly what I needed", "", 0)
	if res.IsSpam {
		t.Fatalf("expected clean verdict at moderate threshold, got score %v", res.Score)
	}
	if !hasCategory(res, CategoryBotPattern) {
		t.Fatalf("expected bot-phrase signal to fire before being offset, got %+v", res.Signals)
	}
	var sawTimestamp bool
	for _, ls := range res.Legitimacy {
		if ls.Label == "Video timestamp reference" {
			sawTimestamp = true
		}
	}
	if !sawTimestamp {
		t.Fatalf("expected timestamp legitimacy signal, got %+v", res.Legitimacy)
	}
}

//
// ---- DERIVED RESULT PROPERTIES ----

func TestResult_PrimaryCategoryTieBreak(t *testing.T) {
	d := newTestDetector()
	// URL (0.15, self-promotion) is discovered before engagement bait (0.15);
	// on a weight tie the first-discovered signal wins.
	res := d.Analyze("like if you agree example.com/page", "", 0)
	primary, ok := res.PrimaryCategory()
	if !ok {
		t.Fatalf("expected a primary category")
	}
	if primary != CategorySelfPromotion {
		t.Fatalf("expected tie broken by discovery order (self_promotion), got %v", primary)
	}
}

func TestResult_PrimaryCategoryAbsentWithoutSignals(t *testing.T) {
	d := newTestDetector()
	res := d.Analyze("nice one", "", 0)
	if _, ok := res.PrimaryCategory(); ok {
		t.Fatalf("expected no primary category for clean text")
	}
}

func TestResult_Reason(t *testing.T) {
	d := newTestDetector()
	clean := d.Analyze("nice one", "", 0)
	if clean.Reason() != "No spam signals detected" {
		t.Fatalf("unexpected clean reason %q", clean.Reason())
	}
	spam := d.Analyze("Check out my crypto channel, DM me on telegram!", "", 0)
	if !strings.Contains(spam.Reason(), "; ") {
		t.Fatalf("expected multiple reasons joined, got %q", spam.Reason())
	}
}
