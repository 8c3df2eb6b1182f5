package spamcheck

import "strings"

// Signal is a single piece of matched spam evidence contributing to the score.
type Signal struct {
	Category Category `json:"category"`
	Label    string   `json:"label"`
	Weight   float64  `json:"weight"`
	Matched  string   `json:"matched,omitempty"`
}

// LegitimacySignal is countervailing evidence. Bonus is always <= 0.
type LegitimacySignal struct {
	Label   string  `json:"label"`
	Bonus   float64 `json:"bonus"`
	Matched string  `json:"matched,omitempty"`
}

// Result is the decision record for one analyzed comment. It is created
// fresh per Analyze call and never mutated afterwards.
type Result struct {
	IsSpam         bool               `json:"is_spam"`
	Score          float64            `json:"score"`
	Threshold      float64            `json:"threshold"`
	Signals        []Signal           `json:"signals,omitempty"`
	Legitimacy     []LegitimacySignal `json:"legitimacy_signals,omitempty"`
	Categories     []Category         `json:"categories,omitempty"`
	Normalized     string             `json:"normalized_text,omitempty"`
	HadObfuscation bool               `json:"had_obfuscation"`
}

// Reason summarizes up to the first three spam signals. Derived on demand so
// it can never drift from the signal list.
func (r *Result) Reason() string {
	if len(r.Signals) == 0 {
		return "No spam signals detected"
	}
	n := len(r.Signals)
	if n > 3 {
		n = 3
	}
	labels := make([]string, 0, n)
	for _, s := range r.Signals[:n] {
		labels = append(labels, s.Label)
	}
	return strings.Join(labels, "; ")
}

// PrimaryCategory returns the category of the highest-weighted spam signal.
// Ties go to the signal discovered first. The second return is false when
// no spam signals are present.
func (r *Result) PrimaryCategory() (Category, bool) {
	if len(r.Signals) == 0 {
		return CategoryUnknown, false
	}
	best := r.Signals[0]
	for _, s := range r.Signals[1:] {
		if s.Weight > best.Weight {
			best = s
		}
	}
	return best.Category, true
}

// LegitimacyReason joins the legitimacy signal labels for display.
func (r *Result) LegitimacyReason() string {
	if len(r.Legitimacy) == 0 {
		return ""
	}
	labels := make([]string, 0, len(r.Legitimacy))
	for _, s := range r.Legitimacy {
		labels = append(labels, s.Label)
	}
	return strings.Join(labels, "; ")
}
