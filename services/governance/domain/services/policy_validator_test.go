package services

import (
	"strings"
	"testing"

	"github.com/tocampus/governance/services/governance/domain/models"
)

const benignParagraph = "Join us on the main campus quad for the annual welcome fair. " +
	"Meet student clubs, grab free snacks, and discover volunteer programs across the country."

func newValidator() *PolicyValidator {
	return NewPolicyValidator(DefaultPolicyRules())
}

func cleanEvent() models.ContentFields {
	return models.ContentFields{
		Kind:     models.KindEvent,
		Title:    "Welcome Fair 2025",
		Body:     benignParagraph,
		Location: "Campus Quad",
	}
}

func hasViolation(v models.ValidationVerdict, substr string) bool {
	for _, msg := range v.Violations {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

func TestEvaluate_Scenarios(t *testing.T) {
	v := newValidator()

	t.Run("short title and body", func(t *testing.T) {
		got := v.Evaluate(models.ContentFields{Kind: models.KindEvent, Title: "Hi", Body: "short"})
		if !hasViolation(got, "Title is too short") {
			t.Errorf("missing title violation: %v", got.Violations)
		}
		if !hasViolation(got, "Description is too short") {
			t.Errorf("missing body violation: %v", got.Violations)
		}
		if got.Score > 75 {
			t.Errorf("score %d should be <= 75", got.Score)
		}
		if got.Score != 65 {
			t.Errorf("score = %d, want 65 (title -10, body -10, location -15)", got.Score)
		}
		if got.IsCompliant {
			t.Error("expected non-compliant")
		}
	})

	t.Run("benign event", func(t *testing.T) {
		if n := len([]rune(benignParagraph)); n != 150 {
			t.Fatalf("fixture paragraph has %d characters, want 150", n)
		}
		got := v.Evaluate(cleanEvent())
		if len(got.Violations) != 0 || len(got.Warnings) != 0 {
			t.Fatalf("unexpected findings: %v %v", got.Violations, got.Warnings)
		}
		if got.Score != 100 || !got.IsCompliant || !got.CanAutoApprove() {
			t.Fatalf("got score=%d compliant=%v auto=%v", got.Score, got.IsCompliant, got.CanAutoApprove())
		}
	})

	t.Run("prohibited term", func(t *testing.T) {
		f := cleanEvent()
		f.Body = benignParagraph + " No drug use allowed."
		got := v.Evaluate(f)
		if !hasViolation(got, "prohibited terms: drug.") {
			t.Fatalf("expected drug to be listed: %v", got.Violations)
		}
		if got.Score != 75 {
			t.Errorf("score = %d, want 75", got.Score)
		}
		if got.IsCompliant {
			t.Error("prohibited terms must block compliance")
		}
	})
}

func TestEvaluate_ShortTitleNeverCompliant(t *testing.T) {
	v := newValidator()
	bodies := []string{"", "short", benignParagraph, strings.Repeat("a", 6000)}
	titles := []string{"", "a", "Hi!", "four"}
	for _, kind := range []models.Kind{models.KindEvent, models.KindAnnouncement} {
		for _, title := range titles {
			for _, body := range bodies {
				got := v.Evaluate(models.ContentFields{Kind: kind, Title: title, Body: body, Location: "Campus Quad"})
				if got.IsCompliant || !hasViolation(got, "Title is too short") {
					t.Fatalf("kind=%s title=%q: expected title violation, got %+v", kind, title, got)
				}
			}
		}
	}
}

func TestEvaluate_Rules(t *testing.T) {
	v := newValidator()
	tests := []struct {
		name          string
		mutate        func(*models.ContentFields)
		wantScore     int
		wantViolation string
		wantWarning   string
	}{
		{
			name:          "long title",
			mutate:        func(f *models.ContentFields) { f.Title = strings.Repeat("t", 201) },
			wantScore:     90,
			wantViolation: "Title is too long (maximum 200 characters)",
		},
		{
			name:          "missing body",
			mutate:        func(f *models.ContentFields) { f.Body = "" },
			wantScore:     85,
			wantViolation: "Description is required",
		},
		{
			name:          "long body",
			mutate:        func(f *models.ContentFields) { f.Body = strings.Repeat("word ", 1001) },
			wantScore:     90,
			wantViolation: "Description is too long (maximum 5000 characters)",
		},
		{
			name:          "missing location",
			mutate:        func(f *models.ContentFields) { f.Location = "" },
			wantScore:     85,
			wantViolation: "Location is required for events",
		},
		{
			name:          "short location",
			mutate:        func(f *models.ContentFields) { f.Location = "Qd" },
			wantScore:     95,
			wantViolation: "Location is too short (minimum 3 characters)",
		},
		{
			name:          "long location",
			mutate:        func(f *models.ContentFields) { f.Location = strings.Repeat("l", 101) },
			wantScore:     95,
			wantViolation: "Location is too long (maximum 100 characters)",
		},
		{
			name:      "announcement needs no location",
			mutate:    func(f *models.ContentFields) { f.Kind = models.KindAnnouncement; f.Location = "" },
			wantScore: 100,
		},
		{
			name:          "prohibited term in title is case-insensitive",
			mutate:        func(f *models.ContentFields) { f.Title = "Alcohol Awareness Week" },
			wantScore:     75,
			wantViolation: "prohibited terms: alcohol.",
		},
		{
			name:          "multiple prohibited terms listed in configured order",
			mutate:        func(f *models.ContentFields) { f.Body = benignParagraph + " violence and harassment" },
			wantScore:     75,
			wantViolation: "prohibited terms: harass, violence.",
		},
		{
			name: "repetition",
			mutate: func(f *models.ContentFields) {
				f.Body = benignParagraph + strings.Repeat("\nbuy now", 5)
			},
			wantScore:   95,
			wantWarning: "Content contains excessive repetition",
		},
		{
			name:        "capitalization",
			mutate:      func(f *models.ContentFields) { f.Body = strings.ToUpper(benignParagraph) },
			wantScore:   97,
			wantWarning: "Excessive use of capital letters detected",
		},
		{
			name:        "punctuation",
			mutate:      func(f *models.ContentFields) { f.Body = benignParagraph + " Wow!! Really?? Yes!? Now!!!" },
			wantScore:   97,
			wantWarning: "Excessive use of punctuation detected",
		},
		{
			name: "links",
			mutate: func(f *models.ContentFields) {
				f.Body = benignParagraph + strings.Repeat(" https://example.edu/x", 6)
			},
			wantScore:   95,
			wantWarning: "Unusually high number of links detected",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := cleanEvent()
			tt.mutate(&f)
			got := v.Evaluate(f)
			if got.Score != tt.wantScore {
				t.Errorf("score = %d, want %d (violations=%v warnings=%v)", got.Score, tt.wantScore, got.Violations, got.Warnings)
			}
			if tt.wantViolation != "" && !hasViolation(got, tt.wantViolation) {
				t.Errorf("missing violation %q in %v", tt.wantViolation, got.Violations)
			}
			if tt.wantViolation == "" && len(got.Violations) != 0 {
				t.Errorf("unexpected violations %v", got.Violations)
			}
			if tt.wantWarning != "" {
				if len(got.Warnings) != 1 || got.Warnings[0] != tt.wantWarning {
					t.Errorf("warnings = %v, want [%q]", got.Warnings, tt.wantWarning)
				}
				if !got.IsCompliant {
					t.Error("warnings alone must not block compliance")
				}
			}
		})
	}
}

func TestEvaluate_ThresholdsAreExclusive(t *testing.T) {
	v := newValidator()

	f := cleanEvent()
	f.Body = benignParagraph + strings.Repeat("\nsame", 4) // 3 repeats
	if got := v.Evaluate(f); len(got.Warnings) != 0 {
		t.Errorf("three repeated lines should not warn: %v", got.Warnings)
	}

	f = cleanEvent()
	f.Body = benignParagraph + strings.Repeat(" https://example.edu", 5)
	if got := v.Evaluate(f); len(got.Warnings) != 0 {
		t.Errorf("five links should not warn: %v", got.Warnings)
	}

	f = cleanEvent()
	f.Title = "Hello"
	f.Body = strings.Repeat("a", 20)
	f.Location = "Hal"
	if got := v.Evaluate(f); got.Score != 100 {
		t.Errorf("minimum lengths should pass, got %d %v", got.Score, got.Violations)
	}
}

func TestEvaluate_LengthsCountCharacters(t *testing.T) {
	v := newValidator()
	f := cleanEvent()
	f.Title = "Café" // 4 runes, 5 bytes
	got := v.Evaluate(f)
	if !hasViolation(got, "Title is too short") {
		t.Fatalf("expected rune-based length check: %v", got.Violations)
	}
}

func TestEvaluate_ScoreClampedAtZero(t *testing.T) {
	v := newValidator()
	body := strings.ToUpper(strings.Repeat("DRUG!!\n", 10)) + strings.Repeat(" http://x.io", 6)
	got := v.Evaluate(models.ContentFields{Kind: models.KindEvent, Title: "", Body: body, Location: "x"})
	if got.Score < 0 || got.Score > 100 {
		t.Fatalf("score out of range: %d", got.Score)
	}
	if got.IsCompliant {
		t.Fatal("expected non-compliant")
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	v := newValidator()
	f := cleanEvent()
	f.Body = "Hate speech is not tolerated!! Really?? " + benignParagraph
	a := v.Evaluate(f)
	b := v.Evaluate(f)
	if a.Score != b.Score || strings.Join(a.Violations, "|") != strings.Join(b.Violations, "|") {
		t.Fatalf("evaluations differ: %+v vs %+v", a, b)
	}
	a.Violations[0] = "mutated"
	if c := v.Evaluate(f); c.Violations[0] == "mutated" {
		t.Fatal("verdicts must not share state")
	}
}

// With the default table the warnings alone cost at most 16 points, so a
// verdict without violations always scores at least 84. The compliant but
// below-threshold case is therefore unreachable through Evaluate and is
// covered by the decision rule tests on NewValidationVerdict instead.
func TestEvaluate_ZeroViolationsImpliesHighScore(t *testing.T) {
	v := newValidator()
	spam := strings.ToUpper(strings.Repeat("AGAIN!! AGAIN?? AGAIN!?\n", 6) + strings.Repeat(" https://spam.example", 8))
	bodies := []string{benignParagraph, spam, benignParagraph + spam}
	for _, body := range bodies {
		got := v.Evaluate(models.ContentFields{Kind: models.KindAnnouncement, Title: "Weekly digest", Body: body})
		if len(got.Violations) != 0 {
			t.Fatalf("fixture must not violate: %v", got.Violations)
		}
		if got.Score < 84 {
			t.Fatalf("score %d below 84 without violations", got.Score)
		}
		if !got.IsCompliant {
			t.Fatal("zero violations at or above the threshold must be compliant")
		}
	}
	worst := v.Evaluate(models.ContentFields{Kind: models.KindAnnouncement, Title: "Weekly digest", Body: spam})
	if worst.Score != 84 || len(worst.Warnings) != 4 {
		t.Fatalf("expected all four warnings at score 84, got %d %v", worst.Score, worst.Warnings)
	}
	if worst.CanAutoApprove() {
		t.Fatal("score 84 is compliant but not auto-approvable")
	}
}

func TestNewPolicyValidator_CustomTerms(t *testing.T) {
	rules := DefaultPolicyRules()
	rules.ProhibitedTerms = []string{" Casino ", ""}
	v := NewPolicyValidator(rules)

	f := cleanEvent()
	f.Body = benignParagraph + " casino night"
	if got := v.Evaluate(f); !hasViolation(got, "prohibited terms: casino.") {
		t.Fatalf("expected custom term: %v", got.Violations)
	}

	f.Body = benignParagraph + " drug awareness"
	if got := v.Evaluate(f); len(got.Violations) != 0 {
		t.Fatalf("default terms should be replaced: %v", got.Violations)
	}
}

func TestReasonFor(t *testing.T) {
	tests := []struct {
		name    string
		verdict models.ValidationVerdict
		want    string
	}{
		{"compliant", models.NewValidationVerdict(100, nil, nil), ""},
		{"low score only", models.NewValidationVerdict(40, nil, nil), "Content quality score is below acceptable threshold."},
		{"single", models.NewValidationVerdict(90, []string{"Description is required"}, nil), "Description is required"},
		{
			"many",
			models.NewValidationVerdict(65, []string{"Title is too short (minimum 5 characters)", "Description is required"}, nil),
			"Title is too short (minimum 5 characters) (Plus 1 additional issue(s) - see details below)\n\n" +
				"1. Title is too short (minimum 5 characters)\n2. Description is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReasonFor(tt.verdict); got != tt.want {
				t.Fatalf("ReasonFor = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	v := newValidator()

	t.Run("clean event", func(t *testing.T) {
		f := cleanEvent()
		s := Summarize(v.Evaluate(f), f)
		if s.Recommendation != RecommendApprove || s.SuggestedAction != ActionAutoApprove {
			t.Fatalf("got %s/%s", s.Recommendation, s.SuggestedAction)
		}
		want := ApprovalChecks{ContentLength: true, NoProhibitedContent: true, NoSpamPatterns: true, LocationProvided: true}
		if s.Checks != want {
			t.Fatalf("checks = %+v", s.Checks)
		}
		if len(s.ReviewNotes) != 0 {
			t.Fatalf("unexpected notes %v", s.ReviewNotes)
		}
	})

	t.Run("failing event", func(t *testing.T) {
		f := models.ContentFields{Kind: models.KindEvent, Title: "Hi", Body: "drug drug drug drug"}
		verdict := v.Evaluate(f)
		s := Summarize(verdict, f)
		if s.Recommendation != RecommendReject || s.SuggestedAction != ActionManualReview {
			t.Fatalf("got %s/%s", s.Recommendation, s.SuggestedAction)
		}
		if s.Checks.ContentLength || s.Checks.NoProhibitedContent || s.Checks.LocationProvided {
			t.Fatalf("checks = %+v", s.Checks)
		}
		if len(s.ReviewNotes) != len(verdict.Violations)+len(verdict.Warnings) {
			t.Fatalf("notes %v", s.ReviewNotes)
		}
		if !strings.HasPrefix(s.ReviewNotes[0], "violation: ") {
			t.Fatalf("first note %q", s.ReviewNotes[0])
		}
	})
}
