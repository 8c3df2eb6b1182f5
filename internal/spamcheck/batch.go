package spamcheck

// Message is the minimal comment view the batch helpers operate on.
type Message struct {
	Text   string
	Author string
	Likes  int
}

// ScoredMessage pairs a retained message with its analysis result.
type ScoredMessage struct {
	Message Message
	Result  Result
}

// FilterSpam returns the messages the detector does not classify as spam,
// preserving input order.
func (d *Detector) FilterSpam(msgs []Message) []Message {
	kept := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		if !d.IsSpam(m.Text, m.Author, m.Likes) {
			kept = append(kept, m)
		}
	}
	return kept
}

// FilterSpamScored is FilterSpam with the full Result attached to each
// retained message, for callers that want to surface scores downstream.
func (d *Detector) FilterSpamScored(msgs []Message) []ScoredMessage {
	kept := make([]ScoredMessage, 0, len(msgs))
	for _, m := range msgs {
		res := d.Analyze(m.Text, m.Author, m.Likes)
		if !res.IsSpam {
			kept = append(kept, ScoredMessage{Message: m, Result: res})
		}
	}
	return kept
}

// AnalyzeBatch analyzes bare comment texts with no author or engagement
// context. Results align index-for-index with texts.
func (d *Detector) AnalyzeBatch(texts []string) []Result {
	results := make([]Result, len(texts))
	for i, t := range texts {
		results[i] = d.Analyze(t, "", 0)
	}
	return results
}
