package models

const (
	// MaxComplianceScore is the starting score of every evaluation.
	MaxComplianceScore = 100

	// ComplianceThreshold is the minimum score for a compliant verdict.
	ComplianceThreshold = 60

	// AutoApproveThreshold is the minimum score for auto-approval eligibility.
	AutoApproveThreshold = 85
)

// ValidationVerdict is the output of one policy evaluation. It is built only
// through NewValidationVerdict and is never mutated afterwards.
type ValidationVerdict struct {
	IsCompliant bool     `json:"is_compliant"`
	Score       int      `json:"score"`
	Violations  []string `json:"violations"`
	Warnings    []string `json:"warnings"`
}

// NewValidationVerdict clamps score to [0, 100] and applies the decision rule:
// compliant only when there are no violations and the score reaches the threshold.
func NewValidationVerdict(score int, violations, warnings []string) ValidationVerdict {
	score = max(0, min(MaxComplianceScore, score))
	v := ValidationVerdict{
		Score:      score,
		Violations: append([]string{}, violations...),
		Warnings:   append([]string{}, warnings...),
	}
	v.IsCompliant = len(v.Violations) == 0 && score >= ComplianceThreshold
	return v
}

// CanAutoApprove reports eligibility for skipping human review.
// Strictly stronger than IsCompliant.
func (v ValidationVerdict) CanAutoApprove() bool {
	return v.IsCompliant && v.Score >= AutoApproveThreshold
}
