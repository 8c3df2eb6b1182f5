// Package spamcheck classifies YouTube comments as spam or not spam.
//
// The detector scores promotional intent rather than writing style: text is
// normalized first to defeat homoglyph and leetspeak obfuscation, a registry
// of weighted category matchers collects spam evidence, a countervailing set
// of legitimacy matchers collects evidence of genuine engagement, and the
// two are combined with diminishing returns into a single score in [0,1]
// compared against a configurable threshold.
//
// A configured Detector is immutable and safe for concurrent use.
package spamcheck

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Preset thresholds. Lower threshold = more aggressive filtering.
const (
	ThresholdLight      = 0.65 // only obvious spam
	ThresholdModerate   = 0.50 // balanced default
	ThresholdAggressive = 0.40 // catches more, slight false-positive risk
	ThresholdStrict     = 0.30 // maximum filtering
)

// Hand-tuned scoring constants. These encode empirically tuned behavior;
// they are preserved as-is rather than derived from a formula.
const (
	obfuscationWeight = 0.3

	cryptoBaseWeight = 0.35
	cryptoPerMatch   = 0.08
	cryptoMaxWeight  = 0.65

	shortCommentLen     = 30
	shortCommentBonus   = -0.10
	longCommentLen      = 200
	longCommentBonus    = -0.15
	likesCommunityMin   = 10
	likesCommunityBonus = -0.10
	likesHighMin        = 100
	likesHighBonus      = -0.25
	likesCapScore       = 0.55
	likesCappedBonus    = -0.10
)

// Options configures a Detector.
type Options struct {
	// Threshold is the spam score cutoff, clamped to [0,1].
	Threshold float64
	// Blacklist phrases always flag a comment as spam. Matched
	// case-insensitively as literal substrings of the raw text.
	Blacklist []string
	// Whitelist phrases always allow a comment through, bypassing
	// detection entirely. Checked before the blacklist.
	Whitelist []string
}

// Detector is the configured classification engine. Create one with New and
// reuse it; construction compiles the full pattern registry.
type Detector struct {
	threshold float64
	patterns  *patternSet
}

// New builds a detector from opts. Invalid custom phrases are dropped with a
// logged warning; New itself never fails.
func New(opts Options) *Detector {
	return &Detector{
		threshold: math.Max(0, math.Min(1, opts.Threshold)),
		patterns:  newPatternSet(opts.Blacklist, opts.Whitelist),
	}
}

// Threshold returns the clamped spam threshold in use.
func (d *Detector) Threshold() float64 { return d.threshold }

// Analyze runs the full pipeline on one comment. authorName and likeCount
// are optional ("" and 0 mean unknown). It always returns a decision; there
// are no error conditions at analysis time.
func (d *Detector) Analyze(text, authorName string, likeCount int) Result {
	// Empty input: zero-score, not spam, no signals.
	if strings.TrimSpace(text) == "" {
		return Result{Threshold: d.threshold}
	}

	// Whitelist short-circuit: bypass detection entirely.
	if d.patterns.matchWhitelist(text) {
		return Result{
			Threshold: d.threshold,
			Legitimacy: []LegitimacySignal{{
				Label:   "Matched whitelist pattern",
				Bonus:   -1.0,
				Matched: "[whitelisted]",
			}},
			Normalized: text,
		}
	}

	// Blacklist short-circuit: immediate maximum-score spam verdict.
	if m := d.patterns.matchBlacklist(text); m != "" {
		return Result{
			IsSpam:    true,
			Score:     1.0,
			Threshold: d.threshold,
			Signals: []Signal{{
				Category: CategoryBotPattern,
				Label:    "Matched blacklist pattern",
				Weight:   1.0,
				Matched:  m,
			}},
			Categories: []Category{CategoryBotPattern},
			Normalized: text,
		}
	}

	// Obfuscation is checked before normalizing, since normalization
	// erases the very characters that prove it.
	hadObfuscation := HasHomoglyphs(text)
	normalized := Normalize(text)

	signals := d.collectSignals(text, normalized, authorName, hadObfuscation)
	baseScore := combineWeights(signals)
	legitimacy := d.collectLegitimacy(text, normalized, len(signals), baseScore, likeCount)

	adjustment := 0.0
	for _, ls := range legitimacy {
		adjustment += ls.Bonus
	}
	finalScore := math.Max(0, math.Min(1, baseScore+adjustment))
	finalScore = math.Round(finalScore*1000) / 1000

	return Result{
		IsSpam:         finalScore >= d.threshold,
		Score:          finalScore,
		Threshold:      d.threshold,
		Signals:        signals,
		Legitimacy:     legitimacy,
		Categories:     distinctCategories(signals),
		Normalized:     normalized,
		HadObfuscation: hadObfuscation,
	}
}

// IsSpam is a convenience wrapper returning only the verdict.
func (d *Detector) IsSpam(text, authorName string, likeCount int) bool {
	return d.Analyze(text, authorName, likeCount).IsSpam
}

// Score is a convenience wrapper returning only the final score.
func (d *Detector) Score(text, authorName string, likeCount int) float64 {
	return d.Analyze(text, authorName, likeCount).Score
}

// collectSignals runs every category matcher in its fixed order. Phone
// checks run against the original text because normalization destroys digit
// groupings; everything else runs against the normalized text.
func (d *Detector) collectSignals(original, normalized, authorName string, hadObfuscation bool) []Signal {
	p := d.patterns
	var signals []Signal

	if hadObfuscation {
		signals = append(signals, Signal{
			Category: CategoryObfuscation,
			Label:    "Homoglyph obfuscation detected",
			Weight:   obfuscationWeight,
			Matched:  "[cyrillic/greek characters]",
		})
	}

	// Crypto / financial scams (high weight).
	if m := p.seedPhraseScam.FindString(normalized); m != "" {
		signals = append(signals, Signal{
			Category: CategorySeedPhraseScam,
			Label:    "Seed phrase / wallet scam pattern",
			Weight:   0.75,
			Matched:  m,
		})
	}
	if m := p.cryptoKeywords.FindString(normalized); m != "" {
		// Repeated crypto terminology is a stronger signal than a single
		// mention; scale the weight by match count up to a fixed ceiling.
		count := len(p.cryptoKeywords.FindAllString(normalized, -1))
		weight := math.Min(cryptoBaseWeight+float64(count)*cryptoPerMatch, cryptoMaxWeight)
		signals = append(signals, Signal{
			Category: CategoryCryptoScam,
			Label:    fmt.Sprintf("Crypto/trading keywords (%dx)", count),
			Weight:   weight,
			Matched:  m,
		})
	}
	if m := p.financialPromises.FindString(normalized); m != "" {
		signals = append(signals, Signal{
			Category: CategoryFinancialScam,
			Label:    "Financial promises/guarantees",
			Weight:   0.6,
			Matched:  m,
		})
	}

	// Contact solicitation. A platform-redirect link supersedes the weaker
	// generic solicitation check so one behavior is not counted twice.
	if m := p.platformRedirect.FindString(normalized); m != "" {
		signals = append(signals, Signal{
			Category: CategoryPlatformRedirect,
			Label:    "Platform redirect link",
			Weight:   0.55,
			Matched:  m,
		})
	} else if m := p.contactSolicitation.FindString(normalized); m != "" {
		signals = append(signals, Signal{
			Category: CategoryContactSolicitation,
			Label:    "Contact solicitation",
			Weight:   0.45,
			Matched:  m,
		})
	}
	if p.phoneNumbers.MatchString(original) {
		signals = append(signals, Signal{
			Category: CategoryContactSolicitation,
			Label:    "Phone number detected",
			Weight:   0.4,
			Matched:  "[phone number]",
		})
	}
	if p.emailAddress.MatchString(normalized) {
		signals = append(signals, Signal{
			Category: CategoryContactSolicitation,
			Label:    "Email address detected",
			Weight:   0.2,
			Matched:  "[email]",
		})
	}

	// Impersonation / fake pinned.
	if m := p.fakePinned.FindString(normalized); m != "" {
		signals = append(signals, Signal{
			Category: CategoryFakePinned,
			Label:    "Fake pinned comment pattern",
			Weight:   0.65,
			Matched:  m,
		})
	}
	if authorName != "" {
		if HasFakeBadge(authorName) {
			signals = append(signals, Signal{
				Category: CategoryImpersonation,
				Label:    "Fake verification badge in username",
				Weight:   0.5,
				Matched:  "[badge character]",
			})
		}
		if m := p.impersonationSuffixes.FindString(authorName); m != "" {
			signals = append(signals, Signal{
				Category: CategoryImpersonation,
				Label:    "Suspicious username suffix",
				Weight:   0.25,
				Matched:  m,
			})
		}
	}

	// Self-promotion (medium weight).
	if m := p.channelPromotion.FindString(normalized); m != "" {
		signals = append(signals, Signal{
			Category: CategoryChannelPromotion,
			Label:    "Channel/profile promotion",
			Weight:   0.4,
			Matched:  m,
		})
	}
	if m := p.selfPromoPhrases.FindString(normalized); m != "" {
		signals = append(signals, Signal{
			Category: CategorySelfPromotion,
			Label:    "Self-promotion phrases",
			Weight:   0.3,
			Matched:  m,
		})
	}
	if m := p.bookPromotion.FindString(normalized); m != "" {
		signals = append(signals, Signal{
			Category: CategoryBookPromotion,
			Label:    "Book/product promotion",
			Weight:   0.45,
			Matched:  m,
		})
	}

	// URLs. A shortened-link service supersedes the generic URL check.
	if m := p.shortenedURL.FindString(normalized); m != "" {
		signals = append(signals, Signal{
			Category: CategoryPhishing,
			Label:    "Shortened URL (suspicious)",
			Weight:   0.4,
			Matched:  m,
		})
	} else if p.genericURL.MatchString(normalized) {
		signals = append(signals, Signal{
			Category: CategorySelfPromotion,
			Label:    "URL detected",
			Weight:   0.15,
			Matched:  "[url]",
		})
	}

	// Bot patterns. Template markers supersede the generic phrase check.
	if m := p.botTemplateMarkers.FindString(normalized); m != "" {
		signals = append(signals, Signal{
			Category: CategoryBotPattern,
			Label:    "Template markers detected",
			Weight:   0.7,
			Matched:  m,
		})
	} else if m := p.botGenericPhrases.FindString(normalized); m != "" {
		signals = append(signals, Signal{
			Category: CategoryBotPattern,
			Label:    "Generic bot-like phrase",
			Weight:   0.2, // could be genuine enthusiasm
			Matched:  m,
		})
	}

	if p.adultContent.MatchString(normalized) {
		signals = append(signals, Signal{
			Category: CategoryAdultContent,
			Label:    "Adult/inappropriate content",
			Weight:   0.6,
			Matched:  "[adult content]",
		})
	}

	if m := p.engagementBait.FindString(normalized); m != "" {
		signals = append(signals, Signal{
			Category: CategoryEngagementBait,
			Label:    "Engagement bait",
			Weight:   0.15, // annoying but not malicious
			Matched:  m,
		})
	}

	return signals
}

// collectLegitimacy evaluates the score-reducing signals. Timestamp and
// reply markers run against the original text; the rest use normalized text
// or derived length/engagement heuristics.
func (d *Detector) collectLegitimacy(original, normalized string, signalCount int, baseScore float64, likeCount int) []LegitimacySignal {
	p := d.patterns
	var legitimacy []LegitimacySignal

	if m := p.timestamp.FindString(original); m != "" {
		legitimacy = append(legitimacy, LegitimacySignal{
			Label:   "Video timestamp reference",
			Bonus:   -0.25,
			Matched: m,
		})
	}
	if p.replyMarker.MatchString(original) {
		legitimacy = append(legitimacy, LegitimacySignal{
			Label:   "Reply to specific user",
			Bonus:   -0.15,
			Matched: "[@username]",
		})
	}
	if p.question.MatchString(normalized) {
		legitimacy = append(legitimacy, LegitimacySignal{
			Label:   "Asks a question",
			Bonus:   -0.15,
			Matched: "[question]",
		})
	}
	if m := p.genuineDiscussion.FindString(normalized); m != "" {
		legitimacy = append(legitimacy, LegitimacySignal{
			Label:   "Genuine discussion",
			Bonus:   -0.2,
			Matched: m,
		})
	}
	if m := p.balancedFeedback.FindString(normalized); m != "" {
		legitimacy = append(legitimacy, LegitimacySignal{
			Label:   "Balanced feedback",
			Bonus:   -0.1,
			Matched: m,
		})
	}
	if m := p.educationalContext.FindString(normalized); m != "" {
		legitimacy = append(legitimacy, LegitimacySignal{
			Label:   "Educational context",
			Bonus:   -0.2,
			Matched: m,
		})
	}

	textLen := len([]rune(strings.TrimSpace(original)))
	if textLen < shortCommentLen && signalCount == 0 {
		legitimacy = append(legitimacy, LegitimacySignal{
			Label: "Short harmless comment",
			Bonus: shortCommentBonus,
		})
	}
	if textLen > longCommentLen && signalCount <= 1 {
		legitimacy = append(legitimacy, LegitimacySignal{
			Label: "Long thoughtful comment",
			Bonus: longCommentBonus,
		})
	}

	// Community-validated engagement reduces the score, but the bonus is
	// capped when the pre-bonus base score is already high: bot-inflated
	// like counts must not launder confident spam.
	if likeCount >= likesCommunityMin {
		rawBonus := likesCommunityBonus
		label := fmt.Sprintf("Community validated (%d likes)", likeCount)
		if likeCount >= likesHighMin {
			rawBonus = likesHighBonus
			label = fmt.Sprintf("High engagement (%d likes)", likeCount)
		}
		bonus := rawBonus
		if baseScore >= likesCapScore && bonus < likesCappedBonus {
			bonus = likesCappedBonus
			label += " [capped - high spam signals]"
		}
		legitimacy = append(legitimacy, LegitimacySignal{
			Label:   label,
			Bonus:   bonus,
			Matched: fmt.Sprintf("%d likes", likeCount),
		})
	}

	return legitimacy
}

// combineWeights merges signal weights with diminishing returns: the
// strongest signal counts fully and each additional one is halved again, so
// many weak signals cannot stack past one strong signal yet still register.
func combineWeights(signals []Signal) float64 {
	if len(signals) == 0 {
		return 0
	}
	weights := make([]float64, 0, len(signals))
	for _, s := range signals {
		weights = append(weights, s.Weight)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(weights)))

	score := weights[0]
	for i, w := range weights[1:] {
		score += w * math.Pow(0.5, float64(i+1))
	}
	return math.Min(score, 1.0)
}

func distinctCategories(signals []Signal) []Category {
	if len(signals) == 0 {
		return nil
	}
	seen := make(map[Category]struct{}, len(signals))
	var out []Category
	for _, s := range signals {
		if _, ok := seen[s.Category]; ok {
			continue
		}
		seen[s.Category] = struct{}{}
		out = append(out, s.Category)
	}
	return out
}
