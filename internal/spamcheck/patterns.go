package spamcheck

import (
	"log"
	"regexp"
	"strings"
)

// patternSet holds every compiled matcher the evaluator runs. Built once per
// detector and never mutated afterwards, so a detector is safe for
// concurrent use without locking.
type patternSet struct {
	// Crypto / financial scams
	cryptoKeywords    *regexp.Regexp
	seedPhraseScam    *regexp.Regexp
	financialPromises *regexp.Regexp

	// Contact solicitation and platform redirects
	contactSolicitation *regexp.Regexp
	platformRedirect    *regexp.Regexp
	phoneNumbers        *regexp.Regexp
	emailAddress        *regexp.Regexp

	// Self / channel / book promotion
	channelPromotion *regexp.Regexp
	selfPromoPhrases *regexp.Regexp
	bookPromotion    *regexp.Regexp

	// URLs
	genericURL   *regexp.Regexp
	shortenedURL *regexp.Regexp

	// Bot / template patterns
	botGenericPhrases  *regexp.Regexp
	botTemplateMarkers *regexp.Regexp

	// Impersonation / fake pinned
	fakePinned            *regexp.Regexp
	impersonationSuffixes *regexp.Regexp

	// Adult content and engagement bait
	adultContent   *regexp.Regexp
	engagementBait *regexp.Regexp

	// Legitimacy matchers
	timestamp          *regexp.Regexp
	question           *regexp.Regexp
	genuineDiscussion  *regexp.Regexp
	replyMarker        *regexp.Regexp
	balancedFeedback   *regexp.Regexp
	educationalContext *regexp.Regexp

	// Caller-supplied literal phrases, compiled case-insensitively.
	blacklist []*regexp.Regexp
	whitelist []*regexp.Regexp
}

func newPatternSet(blacklist, whitelist []string) *patternSet {
	p := &patternSet{
		cryptoKeywords: regexp.MustCompile(`(?i)\b(crypto|bitcoin|btc|ethereum|eth|altcoin|blockchain|nft|` +
			`binance|coinbase|kraken|kucoin|bybit|okx|bitget|mexc|` +
			`usdt|usdc|tether|dogecoin|doge|shiba|pepe|` +
			`defi|yield\s*farm|staking|airdrop|whitelist|presale|` +
			`web3|metaverse|token|ico|ido|` +
			`forex|fx\s*trading|binary\s*option|` +
			`trading\s*(signal|bot|group)|` +
			`10x|100x|1000x|moon(ing)?|lambo|` +
			`hodl|wagmi|ngmi|fomo|fud)\b`),

		// Seed phrase / wallet-drain scams.
		seedPhraseScam: regexp.MustCompile(`(?i)\b(seed\s*phrase|recovery\s*phrase|mnemonic|` +
			`12\s*words?|24\s*words?|` +
			`multi.?sig(nature)?|` +
			`help\s*(me\s*)?(transfer|withdraw|access)|` +
			`share\s*\d+%|split\s*(the\s*)?(profit|funds)|` +
			`stuck\s*(in\s*)?(wallet|exchange)|` +
			`can't\s*(access|withdraw)|` +
			`need\s*(help|gas|fee)\s*to\s*(transfer|withdraw))\b`),

		financialPromises: regexp.MustCompile(`(?i)(\$\d{1,3}(,?\d{3})*(\.\d{2})?\s*(per|a|every|each)?\s*(day|week|month|hour)|` +
			`guaranteed\s*(returns?|profit|income)|` +
			`double\s*your\s*(money|investment)|` +
			`risk\s*free|no\s*risk|zero\s*risk|` +
			`\d+%\s*(daily|weekly|monthly|roi|return|profit)|` +
			`(turn|transform|convert)\s*\$?\d+\s*(into|to)\s*\$?\d+|` +
			`(make|earn)\s*\$?\d+[kK]?\+?\s*(daily|weekly|monthly|passive)|` +
			`passive\s*income|financial\s*freedom|` +
			`quit\s*(your\s*)?(job|9.?5)|` +
			`work\s*from\s*(home|anywhere).*\$)`),

		contactSolicitation: regexp.MustCompile(`(?i)\b(contact|message|text|chat\s*with|reach|dm|pm|inbox)\s*(me|us|him|her)?\s*` +
			`(on|at|via|through|@)?\s*` +
			`(whatsapp|telegram|signal|wechat|line|viber|discord|` +
			`instagram|ig|facebook|fb|twitter|x|tiktok|snapchat)?\b|` +
			`\b(whatsapp|telegram|signal|discord)\s*(me|us|now|today|asap)?\b|` +
			`\bsend\s*(a\s*)?(dm|pm|message)\b|` +
			`\b(hit|slide\s*into)\s*(my|the)?\s*(dm|inbox)\b|` +
			`\b(add|follow)\s*me\s*(on|@)\b`),

		platformRedirect: regexp.MustCompile(`(?i)(t\.me/[a-zA-Z0-9_]+|` +
			`wa\.me/\d+|` +
			`chat\.whatsapp\.com/[a-zA-Z0-9]+|` +
			`discord\.(gg|com/invite)/[a-zA-Z0-9]+|` +
			`@[a-zA-Z0-9_]+\s*(on\s*)?(telegram|whatsapp|insta|ig))`),

		phoneNumbers: regexp.MustCompile(`(\+\d{1,3}[-.\s]?\(?\d{1,4}\)?[-.\s]?\d{1,4}[-.\s]?\d{1,9})|` +
			`(\(\d{3}\)\s*\d{3}[-.\s]?\d{4})|` +
			`(\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b)|` +
			`(\+\d{10,15}\b)`),

		// Matches "at"/"dot" spelled out as words as well as literal @ and dots.
		emailAddress: regexp.MustCompile(`(?i)[a-zA-Z0-9._%+-]+\s*(?:@|\[at\]|\(at\))\s*[a-zA-Z0-9.-]+\s*` +
			`(?:\.|\[dot\]|\(dot\))\s*(com|org|net|io|co|info|biz|xyz)\b`),

		channelPromotion: regexp.MustCompile(`(?i)\b(check\s*(out)?|visit|see|view|watch|subscribe\s*(to)?|follow)\s*` +
			`(my|our|the)?\s*(channel|page|profile|account|video|content|link)\b|` +
			`\b(my|our)\s*(new\s*)?(channel|video|content|podcast)\b|` +
			`\bsub(scribe)?\s*(to\s*)?(my|our|the)\b|` +
			`\blink\s*(in|on)\s*(my\s*)?(bio|profile|description|about)\b|` +
			`\b(i\s*(also\s*)?(make|create|post)|check\s*my)\s*(similar\s*)?(content|videos?)\b`),

		selfPromoPhrases: regexp.MustCompile(`(?i)\b(check\s*this\s*out|must\s*watch|you\s*need\s*to\s*see|` +
			`click\s*(the\s*)?link|tap\s*(the\s*)?link|` +
			`link\s*below|see\s*link|bio\s*link|` +
			`support\s*(my|our)\s*(channel|content))\b`),

		bookPromotion: regexp.MustCompile(`(?i)\b(my\s*(new\s*)?(book|ebook|e-book|guide|course|program|masterclass)|` +
			`(book|ebook)\s*(available|out\s*now|on\s*amazon|link)|` +
			`get\s*(my|the|your)\s*(free\s*)?(copy|ebook|guide|book)|` +
			`download\s*(my|the|your)?\s*(free\s*)?(guide|ebook|book|pdf)|` +
			`(available|order|buy)\s*(now\s*)?(on\s*)?(amazon|kindle|audible)|` +
			`#ad\b|#sponsored\b|#affiliate\b)\b`),

		genericURL: regexp.MustCompile(`(?i)(https?://[^\s]+)|` +
			`(www\.[^\s]+)|` +
			`\b([a-zA-Z0-9-]+\.(com|org|net|io|co|info|biz|xyz|click|link|me)/[^\s]*)\b`),

		shortenedURL: regexp.MustCompile(`(?i)\b(bit\.ly|tinyurl|t\.co|goo\.gl|ow\.ly|buff\.ly|` +
			`rebrand\.ly|short\.link|linktr\.ee|` +
			`cutt\.ly|rb\.gy|is\.gd|v\.gd|shorte\.st|adf\.ly|` +
			`trib\.al|soo\.gd|s\.id)/[^\s]+\b`),

		botGenericPhrases: regexp.MustCompile(`(?i)\b(this\s*(video\s*)?changed\s*my\s*life|` +
			`i\s*was\s*struggling\s*until|` +
			`finally\s*found\s*(the\s*)?(solution|answer)|` +
			`best\s*decision\s*i\s*(ever\s*)?made|` +
			`wish\s*i\s*(had\s*)?(found|known)\s*(this|about\s*this)\s*sooner|` +
			`this\s*is\s*exactly\s*what\s*i\s*needed|` +
			`can't\s*believe\s*(this\s*)?(actually\s*)?works?|` +
			`life\s*changing|game\s*changer|` +
			`must\s*have|must\s*try|` +
			`i\s*started\s*(and|then)\s*never\s*looked\s*back)\b`),

		botTemplateMarkers: regexp.MustCompile(`(?i)(\[name\]|\[product\]|\[link\]|\[url\]|\{.*?\}|` +
			`<\s*insert\s*.*?\s*>|` +
			`\[\s*your\s*.*?\s*\])`),

		fakePinned: regexp.MustCompile(`(?i)(📌|🔴|⬆️|👆|👇)?\s*(pinned\s*(by|comment|message)|` +
			`official\s*(pinned|announcement|message)|` +
			`^\s*📌.*pinned|` +
			`read\s*my\s*pinned)`),

		impersonationSuffixes: regexp.MustCompile(`(?i)(official|giveaway|telegram|team|real|verified|` +
			`gaming|live|support|admin|help|bot|promo|` +
			`moderator|mod|staff|vip)\s*$`),

		adultContent: regexp.MustCompile(`(?i)\b(onlyfans|of\s*link|18\+|adult\s*content|` +
			`xxx|porn|nude|nudes|sexy\s*(pics?|photos?|videos?)|` +
			`dating\s*(site|app)|hookup|` +
			`s[e3]x(y|ting)?|h[o0]rny|` +
			`(check|see)\s*(my|the)\s*(profile|bio)\s*[;)😉🔥💋])\b`),

		engagementBait: regexp.MustCompile(`(?i)\b(like\s*if\s*you|comment\s*if\s*you|` +
			`who(\s*else)?\s*(is\s*)?(here|watching)\s*(in\s*)?20\d{2}|` +
			`like\s*this\s*comment\s*(if|so)|` +
			`anyone\s*(else\s*)?(here\s*)?(in|from)\s*20\d{2}|` +
			`^first[!\.\s]*$|^second[!\.\s]*$|^third[!\.\s]*$|` +
			`early\s*squad|notification\s*squad|` +
			`who'?s\s*(still\s*)?(watching|listening)\s*(this\s*)?(in\s*)?20\d{2})\b`),

		// Timestamps rely on literal colon-digit shapes, so this one runs
		// against the original text, case-sensitive like the digits it wants.
		timestamp: regexp.MustCompile(`\b(\d{1,2}:\d{2}(:\d{2})?)\b|` +
			`\bat\s*(\d{1,2}:\d{2})|` +
			`timestamp|timecode`),

		question: regexp.MustCompile(`(?i)\?\s*$|` +
			`\b(how|what|why|when|where|who|which|whose|whom|` +
			`can\s*(you|i|we|someone)|could\s*(you|i|we)|` +
			`would\s*(you|i|we)|should\s*(i|we)|` +
			`does\s*(anyone|somebody|this)|` +
			`has\s*(anyone|somebody)|` +
			`is\s*(there|this|it)|are\s*(there|these)|` +
			`what'?s|where'?s|who'?s|how'?s)\b`),

		genuineDiscussion: regexp.MustCompile(`(?i)\b(i\s*think|in\s*my\s*opinion|imo|imho|` +
			`i\s*(agree|disagree)|` +
			`great\s*(point|video|content|explanation|tutorial)|` +
			`thanks?\s*(for|so\s*much)|thank\s*you|` +
			`this\s*(helped|explains|clarifies)|` +
			`i\s*(learned|understood|finally\s*(get|understand))|` +
			`good\s*(job|work|explanation)|` +
			`well\s*(explained|done|said)|` +
			`helpful|informative|insightful|` +
			`i'?ve\s*been\s*(struggling|trying|working)|` +
			`as\s*a\s*(beginner|student|developer|teacher|parent))\b`),

		replyMarker: regexp.MustCompile(`^@[a-zA-Z0-9_]+\s`),

		balancedFeedback: regexp.MustCompile(`(?i)\b(but\s*(i\s*think|maybe|however)|` +
			`one\s*(thing|suggestion|critique)|` +
			`could\s*(be|have\s*been)\s*(better|improved)|` +
			`i\s*(would\s*)?(suggest|recommend)|` +
			`(slight|minor|small)\s*(issue|problem|critique)|` +
			`not\s*sure\s*(about|if)|` +
			`on\s*the\s*other\s*hand)\b`),

		educationalContext: regexp.MustCompile(`(?i)\b(what\s*is|how\s*(does|do|to)|explain|learn(ing)?\s*about|` +
			`understand(ing)?|teach|tutorial|guide|` +
			`beginner|newbie|noob|started\s*learning|` +
			`can\s*someone\s*explain|eli5|` +
			`difference\s*between|compared\s*to|` +
			`pros?\s*and\s*cons?|advantages?\s*and\s*disadvantages?)\b`),
	}

	p.blacklist = compilePhrases(blacklist, "blacklist")
	p.whitelist = compilePhrases(whitelist, "whitelist")
	return p
}

// compilePhrases turns caller-supplied phrases into case-insensitive literal
// substring matchers. The phrase text is quoted verbatim, never interpreted
// as a pattern language. A phrase that is empty after trimming or fails to
// compile is dropped with a warning; one bad phrase must not take down the
// rest of the list.
func compilePhrases(phrases []string, kind string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(phrases))
	for _, phrase := range phrases {
		phrase = strings.TrimSpace(phrase)
		if phrase == "" {
			continue
		}
		re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(phrase))
		if err != nil {
			log.Printf("[spamcheck] dropping invalid %s phrase %q: %v", kind, phrase, err)
			continue
		}
		out = append(out, re)
	}
	return out
}

func (p *patternSet) matchWhitelist(text string) bool {
	for _, re := range p.whitelist {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// matchBlacklist returns the matched fragment or "" when nothing matched.
func (p *patternSet) matchBlacklist(text string) string {
	for _, re := range p.blacklist {
		if m := re.FindString(text); m != "" {
			return m
		}
	}
	return ""
}
