package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/model"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/valueobject"
)

// BaseScore is the score of a posting that trips no rule.
const BaseScore = 90

// Red flag texts, in rule order.
const (
	FlagVagueWorkFromHomeTitle = "Vague job title that primarily emphasizes 'work from home'"
	FlagVagueTitle             = "Extremely vague job title with no information about the role"
	FlagUnrealisticSalary      = "Unrealistic salary claims or promises of unlimited earnings"
	FlagEntryLevelHighSalary   = "Unusually high salary for an entry-level position"
	FlagRequestsPersonalInfo   = "Requests for payment, financial information, or personal details"
	FlagExcessiveUrgency       = "Excessive urgency to pressure applicants"
	FlagUrgencyTactics         = "Uses urgency tactics"
	FlagPoorGrammar            = "Poor grammar or unprofessional wording"
	FlagExcessiveCaps          = "Excessive use of ALL CAPS"
	FlagMissingCompany         = "Missing or vague company information"
	FlagGenericCompany         = "Generic company name with no specific identity"
	FlagBriefDescription       = "Extremely brief job description with minimal details"
	FlagNoRequirements         = "No specific skills or experience requirements"
)

var (
	unrealisticSalaryTerms = []string{"unlimited", "six figure", "$$$", "earn up to", "huge earning"}
	entryLevelTitleTerms   = []string{"entry", "junior"}
	entryLevelHighSalaries = []string{"200,000", "300,000"}
	personalInfoTerms      = []string{"payment required", "registration fee", "bank account", "bank details", "ssn", "social security"}
	urgencyTerms           = []string{"urgent", "immediate start", "apply now", "don't wait"}
	poorGrammarTerms       = []string{"ur company", "ur resume", "ur experience", "plz send", "send cv to email", "send ur cv", "100% legit", "100% legitimate"}
	noExperienceTerms      = []string{"no experience needed", "no experience required"}
	vagueTitles            = map[string]bool{"online job": true, "remote position": true}
	genericCompanyNames    = map[string]bool{"solutions": true, "global": true, "international": true, "worldwide": true, "enterprises": true}
)

// RiskScorer is a domain service that scores a posting with fixed heuristic
// rules. It holds no state and is safe for concurrent use.
type RiskScorer struct{}

// NewRiskScorer creates a new RiskScorer instance.
func NewRiskScorer() *RiskScorer {
	return &RiskScorer{}
}

// Strategy identifies the rule-based strategy.
func (s *RiskScorer) Strategy() valueobject.Strategy {
	return valueobject.StrategyRules
}

// Score implements Scorer. It never fails.
func (s *RiskScorer) Score(_ context.Context, posting model.JobPosting) (model.ScoreReport, error) {
	return s.Evaluate(posting).WithStrategy(valueobject.StrategyRules), nil
}

// Evaluate starts at BaseScore and subtracts the penalty of every rule that
// fires, in a fixed order, recording one red flag per rule. Text matching is
// case-insensitive except for the ALL CAPS rule.
func (s *RiskScorer) Evaluate(posting model.JobPosting) model.ScoreReport {
	lowered := posting.Lowered()
	title := lowered.Title
	company := lowered.Company
	desc := lowered.Description

	score := BaseScore
	flags := make([]string, 0)
	penalize := func(points int, flag string) {
		score -= points
		flags = append(flags, flag)
	}

	// Rule: short title that leans on work-from-home.
	if strings.Contains(title, "work from home") && utf8.RuneCountInString(posting.Title) < 25 {
		penalize(15, FlagVagueWorkFromHomeTitle)
	}

	// Rule: title says nothing about the role.
	if utf8.RuneCountInString(title) < 10 || vagueTitles[title] {
		penalize(10, FlagVagueTitle)
	}

	if lowered.HasSalary() {
		salary := lowered.SalaryText()

		// Rule: unlimited-earnings claims.
		if containsAny(salary, unrealisticSalaryTerms) {
			penalize(20, FlagUnrealisticSalary)
		}

		// Rule: entry-level role with a senior salary.
		if containsAny(title, entryLevelTitleTerms) && containsAny(salary, entryLevelHighSalaries) {
			penalize(15, FlagEntryLevelHighSalary)
		}
	}

	// Rule: asks for money, bank or identity details.
	if containsAny(desc, personalInfoTerms) {
		penalize(25, FlagRequestsPersonalInfo)
	}

	// Rule: pressure to act now. Fires once, at one of two strengths.
	if containsAny(desc, urgencyTerms) {
		if strings.Count(desc, "urgent") > 1 || strings.Contains(desc, "!!!") {
			penalize(15, FlagExcessiveUrgency)
		} else {
			penalize(5, FlagUrgencyTactics)
		}
	}

	// Rule: unprofessional wording.
	if containsAny(desc, poorGrammarTerms) {
		penalize(15, FlagPoorGrammar)
	}

	// Rule: shouting. Counted on the original text.
	if countShoutedWords(posting.Description) > 5 {
		penalize(10, FlagExcessiveCaps)
	}

	// Rule: no real company name.
	if utf8.RuneCountInString(strings.TrimSpace(company)) < 2 {
		penalize(15, FlagMissingCompany)
	}

	// Rule: generic company name.
	if genericCompanyNames[company] {
		penalize(10, FlagGenericCompany)
	}

	// Rule: description too short to be real.
	if utf8.RuneCountInString(posting.Description) < 150 {
		penalize(15, FlagBriefDescription)
	}

	// Rule: no requirements.
	if !strings.Contains(desc, "experience") || !strings.Contains(desc, "skill") || containsAny(desc, noExperienceTerms) {
		penalize(10, FlagNoRequirements)
	}

	return model.NewScoreReport(score, flags, "")
}

// countShoutedWords counts space-separated tokens longer than three
// characters that are unchanged by upper-casing.
func countShoutedWords(text string) int {
	n := 0
	for _, token := range strings.Split(text, " ") {
		if utf8.RuneCountInString(token) > 3 && token == strings.ToUpper(token) {
			n++
		}
	}
	return n
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
