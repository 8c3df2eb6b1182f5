package spamcheck

import "fmt"

// Category identifies the theme of a detected spam signal. Categories are
// tags for reporting, not a ranking.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryCryptoScam
	CategorySeedPhraseScam
	CategoryFinancialScam
	CategoryContactSolicitation
	CategoryPlatformRedirect
	CategorySelfPromotion
	CategoryBookPromotion
	CategoryChannelPromotion
	CategoryPhishing
	CategoryBotPattern
	CategoryImpersonation
	CategoryFakePinned
	CategoryAdultContent
	CategoryEngagementBait
	CategoryObfuscation
)

var categoryNames = map[Category]string{
	CategoryCryptoScam:          "crypto_scam",
	CategorySeedPhraseScam:      "seed_phrase_scam",
	CategoryFinancialScam:       "financial_scam",
	CategoryContactSolicitation: "contact_solicitation",
	CategoryPlatformRedirect:    "platform_redirect",
	CategorySelfPromotion:       "self_promotion",
	CategoryBookPromotion:       "book_promotion",
	CategoryChannelPromotion:    "channel_promotion",
	CategoryPhishing:            "phishing",
	CategoryBotPattern:          "bot_pattern",
	CategoryImpersonation:       "impersonation",
	CategoryFakePinned:          "fake_pinned",
	CategoryAdultContent:        "adult_content",
	CategoryEngagementBait:      "engagement_bait",
	CategoryObfuscation:         "obfuscation",
}

var categoryValues = func() map[string]Category {
	m := make(map[string]Category, len(categoryNames))
	for c, name := range categoryNames {
		m[name] = c
	}
	return m
}()

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseCategory maps a wire name back to its Category.
func ParseCategory(name string) (Category, error) {
	if c, ok := categoryValues[name]; ok {
		return c, nil
	}
	return CategoryUnknown, fmt.Errorf("unknown spam category %q", name)
}

// MarshalText encodes the category as its wire name for JSON/YAML output.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a wire name into the receiver.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
