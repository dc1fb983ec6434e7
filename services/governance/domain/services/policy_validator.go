// Package services contains stateless domain services for the governance
// bounded context. Everything here is deterministic and free of I/O.
package services

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tocampus/governance/services/governance/domain/models"
)

// DefaultProhibitedTerms are matched case-insensitively as substrings, so
// "discriminat" catches both "discrimination" and "discriminatory".
var DefaultProhibitedTerms = []string{
	"hate", "discriminat", "racist", "sexist", "harass",
	"illegal", "drug", "alcohol", "violence",
}

// PolicyRules holds the limits and penalties of the university content policy.
type PolicyRules struct {
	MinTitleLength    int
	MaxTitleLength    int
	MinBodyLength     int
	MaxBodyLength     int
	MinLocationLength int
	MaxLocationLength int
	ProhibitedTerms   []string

	// Spam heuristics. A warning fires when the observed count exceeds the limit.
	MaxRepeatedLines   int
	MaxCapsRatio       float64
	MaxPunctuationRuns int
	MaxLinks           int
}

// DefaultPolicyRules returns the standard university policy.
func DefaultPolicyRules() PolicyRules {
	return PolicyRules{
		MinTitleLength:     5,
		MaxTitleLength:     200,
		MinBodyLength:      20,
		MaxBodyLength:      5000,
		MinLocationLength:  3,
		MaxLocationLength:  100,
		ProhibitedTerms:    append([]string{}, DefaultProhibitedTerms...),
		MaxRepeatedLines:   3,
		MaxCapsRatio:       0.5,
		MaxPunctuationRuns: 3,
		MaxLinks:           5,
	}
}

const (
	penaltyTitleLength     = 10
	penaltyBodyMissing     = 15
	penaltyBodyLength      = 10
	penaltyLocationMissing = 15
	penaltyLocationLength  = 5
	penaltyProhibitedTerms = 25
	penaltyRepetition      = 5
	penaltyCapitalization  = 3
	penaltyPunctuation     = 3
	penaltyLinks           = 5
)

var (
	punctuationRun = regexp.MustCompile(`[!?]{2,}`)
	linkPattern    = regexp.MustCompile(`(?i)https?://\S+`)
)

// PolicyValidator scores content against PolicyRules. It holds no mutable
// state and is safe for concurrent use.
type PolicyValidator struct {
	rules PolicyRules
	terms []string // lower-cased ProhibitedTerms, empty entries dropped
}

// NewPolicyValidator builds a validator for the given rules.
func NewPolicyValidator(rules PolicyRules) *PolicyValidator {
	terms := make([]string, 0, len(rules.ProhibitedTerms))
	for _, t := range rules.ProhibitedTerms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			terms = append(terms, t)
		}
	}
	return &PolicyValidator{rules: rules, terms: terms}
}

// Rules returns the rules the validator was built with.
func (v *PolicyValidator) Rules() PolicyRules {
	return v.rules
}

// Evaluate scores the fields and returns a fresh verdict. Penalties are
// additive; only the final score is clamped.
func (v *PolicyValidator) Evaluate(f models.ContentFields) models.ValidationVerdict {
	r := v.rules
	score := models.MaxComplianceScore
	var violations, warnings []string

	violate := func(penalty int, msg string) {
		score -= penalty
		violations = append(violations, msg)
	}
	warn := func(penalty int, msg string) {
		score -= penalty
		warnings = append(warnings, msg)
	}

	titleLen := utf8.RuneCountInString(f.Title)
	if titleLen < r.MinTitleLength {
		violate(penaltyTitleLength, fmt.Sprintf("Title is too short (minimum %d characters)", r.MinTitleLength))
	}
	if titleLen > r.MaxTitleLength {
		violate(penaltyTitleLength, fmt.Sprintf("Title is too long (maximum %d characters)", r.MaxTitleLength))
	}

	bodyLen := utf8.RuneCountInString(f.Body)
	if bodyLen == 0 {
		violate(penaltyBodyMissing, "Description is required")
	} else {
		if bodyLen < r.MinBodyLength {
			violate(penaltyBodyLength, fmt.Sprintf("Description is too short (minimum %d characters)", r.MinBodyLength))
		}
		if bodyLen > r.MaxBodyLength {
			violate(penaltyBodyLength, fmt.Sprintf("Description is too long (maximum %d characters)", r.MaxBodyLength))
		}
	}

	if f.Kind == models.KindEvent {
		locLen := utf8.RuneCountInString(f.Location)
		switch {
		case locLen == 0:
			violate(penaltyLocationMissing, "Location is required for events")
		case locLen < r.MinLocationLength:
			violate(penaltyLocationLength, fmt.Sprintf("Location is too short (minimum %d characters)", r.MinLocationLength))
		case locLen > r.MaxLocationLength:
			violate(penaltyLocationLength, fmt.Sprintf("Location is too long (maximum %d characters)", r.MaxLocationLength))
		}
	}

	text := f.Title + " " + f.Body
	if found := v.prohibitedTermsIn(text); len(found) > 0 {
		violate(penaltyProhibitedTerms, fmt.Sprintf(
			"Content contains prohibited terms: %s. Please revise to ensure compliance with university community standards.",
			strings.Join(found, ", ")))
	}

	if repeatedLines(f.Body) > r.MaxRepeatedLines {
		warn(penaltyRepetition, "Content contains excessive repetition")
	}
	if capsRatio(f.Body) > r.MaxCapsRatio {
		warn(penaltyCapitalization, "Excessive use of capital letters detected")
	}
	if len(punctuationRun.FindAllStringIndex(f.Body, -1)) > r.MaxPunctuationRuns {
		warn(penaltyPunctuation, "Excessive use of punctuation detected")
	}
	if len(linkPattern.FindAllStringIndex(text, -1)) > r.MaxLinks {
		warn(penaltyLinks, "Unusually high number of links detected")
	}

	return models.NewValidationVerdict(score, violations, warnings)
}

// prohibitedTermsIn lists matched terms in configured order.
func (v *PolicyValidator) prohibitedTermsIn(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, t := range v.terms {
		if strings.Contains(lower, t) {
			found = append(found, t)
		}
	}
	return found
}

// repeatedLines counts lines identical to the line right before them.
func repeatedLines(body string) int {
	lines := strings.Split(body, "\n")
	n := 0
	for i := 1; i < len(lines); i++ {
		if lines[i] == lines[i-1] {
			n++
		}
	}
	return n
}

func capsRatio(body string) float64 {
	total := utf8.RuneCountInString(body)
	if total == 0 {
		return 0
	}
	upper := 0
	for _, r := range body {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	return float64(upper) / float64(total)
}

// ReasonFor renders a rejection reason for a non-compliant verdict.
// It returns "" for compliant verdicts.
func ReasonFor(verdict models.ValidationVerdict) string {
	if verdict.IsCompliant {
		return ""
	}
	switch n := len(verdict.Violations); n {
	case 0:
		return "Content quality score is below acceptable threshold."
	case 1:
		return verdict.Violations[0]
	default:
		var b strings.Builder
		fmt.Fprintf(&b, "%s (Plus %d additional issue(s) - see details below)\n\n", verdict.Violations[0], n-1)
		for i, msg := range verdict.Violations {
			if i > 0 {
				b.WriteByte('\n')
			}
			fmt.Fprintf(&b, "%d. %s", i+1, msg)
		}
		return b.String()
	}
}

// Recommendation is the reviewer-facing outcome of a policy check.
type Recommendation string

const (
	RecommendApprove Recommendation = "APPROVE"
	RecommendReject  Recommendation = "REJECT"
)

// SuggestedAction tells a reviewer whether human sign-off is needed.
type SuggestedAction string

const (
	ActionAutoApprove  SuggestedAction = "AUTO_APPROVE"
	ActionManualReview SuggestedAction = "MANUAL_REVIEW"
)

// ApprovalChecks are the per-area outcomes shown on the admin review screen.
type ApprovalChecks struct {
	ContentLength       bool `json:"content_length"`
	NoProhibitedContent bool `json:"no_prohibited_content"`
	NoSpamPatterns      bool `json:"no_spam_patterns"`
	LocationProvided    bool `json:"location_provided"`
}

// ApprovalSummary condenses a verdict for an admin reviewer.
type ApprovalSummary struct {
	PolicyCompliance bool            `json:"policy_compliance"`
	OverallScore     int             `json:"overall_score"`
	Checks           ApprovalChecks  `json:"checks"`
	Recommendation   Recommendation  `json:"recommendation"`
	SuggestedAction  SuggestedAction `json:"suggested_action"`
	ReviewNotes      []string        `json:"review_notes"`
}

// spamWarningLimit is the warning count at which content reads as spam.
const spamWarningLimit = 3

// Summarize builds the reviewer summary for a verdict computed from fields.
func Summarize(verdict models.ValidationVerdict, f models.ContentFields) ApprovalSummary {
	s := ApprovalSummary{
		PolicyCompliance: verdict.IsCompliant,
		OverallScore:     verdict.Score,
		Checks: ApprovalChecks{
			ContentLength:       true,
			NoProhibitedContent: true,
			NoSpamPatterns:      len(verdict.Warnings) < spamWarningLimit,
			LocationProvided:    f.Kind != models.KindEvent || f.Location != "",
		},
		Recommendation:  RecommendReject,
		SuggestedAction: ActionManualReview,
		ReviewNotes:     make([]string, 0, len(verdict.Violations)+len(verdict.Warnings)),
	}
	for _, msg := range verdict.Violations {
		if strings.Contains(msg, "too short") || strings.Contains(msg, "too long") {
			s.Checks.ContentLength = false
		}
		if strings.Contains(msg, "prohibited terms") {
			s.Checks.NoProhibitedContent = false
		}
		s.ReviewNotes = append(s.ReviewNotes, "violation: "+msg)
	}
	for _, msg := range verdict.Warnings {
		s.ReviewNotes = append(s.ReviewNotes, "warning: "+msg)
	}
	if verdict.IsCompliant {
		s.Recommendation = RecommendApprove
	}
	if verdict.CanAutoApprove() {
		s.SuggestedAction = ActionAutoApprove
	}
	return s
}
