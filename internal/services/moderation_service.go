package services

import (
	"regexp"
	"strings"
)

const (
	RejectInappropriate = "inappropriate_language"
	RejectURL           = "url_not_allowed"
	RejectContactInfo   = "contact_info_not_allowed"
	RejectSpam          = "spam_detected"
	RejectExcessiveCaps = "excessive_caps"
)

var DefaultBannedWords = []string{
	"fuck", "fucking", "shit", "bullshit", "bitch", "asshole", "bastard", "cunt",
	"porn", "porno", "nude", "nudes",
	"scam", "scammer", "phishing", "malware", "casino", "viagra",
}

var rejectionMessages = map[string]string{
	RejectInappropriate: "Your comment contains inappropriate language.",
	RejectURL:           "Links are not allowed in comments.",
	RejectContactInfo:   "Please do not share contact information in comments.",
	RejectSpam:          "Your comment looks like spam.",
	RejectExcessiveCaps: "Please avoid using excessive capital letters.",
}

type filterRule struct {
	reason  string
	pattern *regexp.Regexp
}

// ContentFilter screens user-submitted text such as event comments. It is
// immutable after construction and safe for concurrent use.
type ContentFilter struct {
	rules   []filterRule
	allCaps *regexp.Regexp
}

func NewContentFilter(bannedWords []string) *ContentFilter {
	f := &ContentFilter{allCaps: regexp.MustCompile(`[A-Z]{5,}`)}

	if len(bannedWords) > 0 {
		quoted := make([]string, len(bannedWords))
		for i, w := range bannedWords {
			quoted[i] = regexp.QuoteMeta(w)
		}
		f.rules = append(f.rules, filterRule{
			RejectInappropriate,
			regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`),
		})
	}

	// RE2 has no backreferences, so runs of one character are spelled out.
	runs := make([]string, 0, 29)
	for c := 'a'; c <= 'z'; c++ {
		runs = append(runs, string(c)+"{4,}")
	}
	runs = append(runs, `!{4,}`, `\?{4,}`, `\.{4,}`)

	f.rules = append(f.rules,
		filterRule{RejectURL, regexp.MustCompile(`(?i)(https?://\S+|www\.\S+\.\S+)`)},
		filterRule{RejectContactInfo, regexp.MustCompile(`(?i)\b[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}\b`)},
		filterRule{RejectContactInfo, regexp.MustCompile(`\d{3}[-.\s]?\d{3}[-.\s]?\d{4}|\(\d{3}\)\s*\d{3}[-.\s]?\d{4}`)},
		filterRule{RejectSpam, regexp.MustCompile(`(?i)(` + strings.Join(runs, "|") + `)`)},
	)
	return f
}

// Check returns ok=false and a reason code when text breaks a rule.
func (f *ContentFilter) Check(text string) (ok bool, reason string) {
	if text == "" {
		return true, ""
	}
	for _, r := range f.rules {
		if r.pattern.MatchString(text) {
			return false, r.reason
		}
	}
	if len(f.allCaps.FindAllString(text, -1)) > 2 {
		return false, RejectExcessiveCaps
	}
	return true, ""
}

func RejectionMessage(reason string) string {
	if msg, ok := rejectionMessages[reason]; ok {
		return msg
	}
	return "Your comment does not meet our community guidelines."
}
