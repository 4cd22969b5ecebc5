package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/model"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/service"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/valueobject"
	"github.com/Adis-git/job-sentinel-ai-check/pkg/testutil"
)

func cleanPosting() model.JobPosting {
	return model.NewJobPosting(
		"Software Engineer",
		"Acme Corp",
		testutil.CleanDescription,
		"Berlin",
		model.StringPtr("$120,000 - $150,000"),
	)
}

func TestRiskScorer_CleanPosting(t *testing.T) {
	scorer := service.NewRiskScorer()

	report := scorer.Evaluate(cleanPosting())

	assert.Equal(t, 90, report.Score)
	assert.Empty(t, report.RedFlags)
	assert.NotNil(t, report.RedFlags)
	assert.Equal(t, valueobject.VerdictLegitimate, report.Verdict)
	assert.Equal(t, valueobject.VerdictLegitimate.Description(), report.Summary)
}

func TestRiskScorer_SingleRules(t *testing.T) {
	longDesc := testutil.CleanDescription

	tests := []struct {
		name    string
		mutate  func(p *model.JobPosting)
		penalty int
		flag    string
	}{
		{
			name:    "short work from home title",
			mutate:  func(p *model.JobPosting) { p.Title = "Work From Home Agent" },
			penalty: 15,
			flag:    service.FlagVagueWorkFromHomeTitle,
		},
		{
			name:    "title shorter than ten characters",
			mutate:  func(p *model.JobPosting) { p.Title = "Engineer" },
			penalty: 10,
			flag:    service.FlagVagueTitle,
		},
		{
			name:    "online job title",
			mutate:  func(p *model.JobPosting) { p.Title = "Online Job" },
			penalty: 10,
			flag:    service.FlagVagueTitle,
		},
		{
			name:    "remote position title",
			mutate:  func(p *model.JobPosting) { p.Title = "REMOTE POSITION" },
			penalty: 10,
			flag:    service.FlagVagueTitle,
		},
		{
			name:    "unlimited salary",
			mutate:  func(p *model.JobPosting) { p.Salary = model.StringPtr("Unlimited commission") },
			penalty: 20,
			flag:    service.FlagUnrealisticSalary,
		},
		{
			name:    "six figure salary",
			mutate:  func(p *model.JobPosting) { p.Salary = model.StringPtr("Six Figure income") },
			penalty: 20,
			flag:    service.FlagUnrealisticSalary,
		},
		{
			name: "junior role with senior salary",
			mutate: func(p *model.JobPosting) {
				p.Title = "Junior Data Analyst"
				p.Salary = model.StringPtr("$200,000 per year")
			},
			penalty: 15,
			flag:    service.FlagEntryLevelHighSalary,
		},
		{
			name: "entry level role with senior salary",
			mutate: func(p *model.JobPosting) {
				p.Title = "Entry Level Support Analyst"
				p.Salary = model.StringPtr("$300,000")
			},
			penalty: 15,
			flag:    service.FlagEntryLevelHighSalary,
		},
		{
			name:    "dollar signs salary",
			mutate:  func(p *model.JobPosting) { p.Salary = model.StringPtr("$$$ every week") },
			penalty: 20,
			flag:    service.FlagUnrealisticSalary,
		},
		{
			name:    "earn up to salary",
			mutate:  func(p *model.JobPosting) { p.Salary = model.StringPtr("Earn up to $9,000 a month") },
			penalty: 20,
			flag:    service.FlagUnrealisticSalary,
		},
		{
			name:    "huge earning salary",
			mutate:  func(p *model.JobPosting) { p.Salary = model.StringPtr("HUGE EARNING potential") },
			penalty: 20,
			flag:    service.FlagUnrealisticSalary,
		},
		{
			name:    "bank account request",
			mutate:  func(p *model.JobPosting) { p.Description = longDesc + " Provide your bank account for payroll." },
			penalty: 25,
			flag:    service.FlagRequestsPersonalInfo,
		},
		{
			name:    "social security request",
			mutate:  func(p *model.JobPosting) { p.Description = longDesc + " Include your Social Security number." },
			penalty: 25,
			flag:    service.FlagRequestsPersonalInfo,
		},
		{
			name:    "mild urgency",
			mutate:  func(p *model.JobPosting) { p.Description = longDesc + " Apply now." },
			penalty: 5,
			flag:    service.FlagUrgencyTactics,
		},
		{
			name:    "single urgent",
			mutate:  func(p *model.JobPosting) { p.Description = longDesc + " This is an urgent opening." },
			penalty: 5,
			flag:    service.FlagUrgencyTactics,
		},
		{
			name:    "repeated urgent",
			mutate:  func(p *model.JobPosting) { p.Description = longDesc + " Urgent role, urgent start." },
			penalty: 15,
			flag:    service.FlagExcessiveUrgency,
		},
		{
			name:    "urgency with triple exclamation",
			mutate:  func(p *model.JobPosting) { p.Description = longDesc + " Don't wait!!!" },
			penalty: 15,
			flag:    service.FlagExcessiveUrgency,
		},
		{
			name:    "poor grammar",
			mutate:  func(p *model.JobPosting) { p.Description = longDesc + " Plz send ur resume." },
			penalty: 15,
			flag:    service.FlagPoorGrammar,
		},
		{
			name:    "excessive caps",
			mutate:  func(p *model.JobPosting) { p.Description = longDesc + " GREAT TEAM GREAT PERKS GREAT BENEFITS" },
			penalty: 10,
			flag:    service.FlagExcessiveCaps,
		},
		{
			name:    "missing company",
			mutate:  func(p *model.JobPosting) { p.Company = "  " },
			penalty: 15,
			flag:    service.FlagMissingCompany,
		},
		{
			name:    "single letter company",
			mutate:  func(p *model.JobPosting) { p.Company = "X" },
			penalty: 15,
			flag:    service.FlagMissingCompany,
		},
		{
			name:    "generic company",
			mutate:  func(p *model.JobPosting) { p.Company = "Worldwide" },
			penalty: 10,
			flag:    service.FlagGenericCompany,
		},
		{
			name: "brief description",
			mutate: func(p *model.JobPosting) {
				p.Description = "Requires experience and skills."
			},
			penalty: 15,
			flag:    service.FlagBriefDescription,
		},
		{
			name: "no skills mentioned",
			mutate: func(p *model.JobPosting) {
				p.Description = strings.ReplaceAll(longDesc, "skills", "tools")
			},
			penalty: 10,
			flag:    service.FlagNoRequirements,
		},
		{
			name:    "no experience needed",
			mutate:  func(p *model.JobPosting) { p.Description = longDesc + " No experience needed for the onboarding track." },
			penalty: 10,
			flag:    service.FlagNoRequirements,
		},
	}

	scorer := service.NewRiskScorer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posting := cleanPosting()
			tt.mutate(&posting)

			report := scorer.Evaluate(posting)

			assert.Equal(t, 90-tt.penalty, report.Score)
			assert.Equal(t, []string{tt.flag}, report.RedFlags)
		})
	}
}

func TestRiskScorer_RuleIndependence(t *testing.T) {
	posting := cleanPosting()
	posting.Description = testutil.CleanDescription + " Payroll goes straight to your bank account."

	report := service.NewRiskScorer().Evaluate(posting)

	assert.Equal(t, 65, report.Score)
	assert.Len(t, report.RedFlags, 1)
	assert.Equal(t, valueobject.VerdictCaution, report.Verdict)
}

func TestRiskScorer_LongWorkFromHomeTitleNotFlagged(t *testing.T) {
	posting := cleanPosting()
	posting.Title = "Senior Platform Engineer (work from home)"

	report := service.NewRiskScorer().Evaluate(posting)

	assert.Equal(t, 90, report.Score)
}

func TestRiskScorer_AbsentSalarySkipsSalaryRules(t *testing.T) {
	posting := cleanPosting()
	posting.Title = "Entry Level Support Analyst"
	posting.Salary = nil

	report := service.NewRiskScorer().Evaluate(posting)

	assert.Equal(t, 90, report.Score)
	assert.Empty(t, report.RedFlags)
}

func TestRiskScorer_GenericCompanyIsExactMatch(t *testing.T) {
	posting := cleanPosting()
	posting.Company = "Global Logistics GmbH"

	report := service.NewRiskScorer().Evaluate(posting)

	assert.Equal(t, 90, report.Score)
}

func TestRiskScorer_GrammarRuleFiresOnce(t *testing.T) {
	posting := cleanPosting()
	posting.Description = testutil.CleanDescription + " Plz send ur resume, 100% legit."

	report := service.NewRiskScorer().Evaluate(posting)

	assert.Equal(t, 75, report.Score)
	assert.Equal(t, []string{service.FlagPoorGrammar}, report.RedFlags)
}

func TestRiskScorer_CapsCountUsesOriginalCase(t *testing.T) {
	posting := cleanPosting()
	posting.Description = testutil.CleanDescription + " great team great perks great benefits"

	report := service.NewRiskScorer().Evaluate(posting)

	assert.Equal(t, 90, report.Score)
}

func TestRiskScorer_ScenarioWorkFromHomeScam(t *testing.T) {
	posting := model.NewJobPosting(
		"Work From Home",
		"",
		"URGENT!!! Earn fast. Send your bank details to start today.",
		"",
		model.StringPtr("unlimited earning potential"),
	)

	report := service.NewRiskScorer().Evaluate(posting)

	assert.Equal(t, 0, report.Score)
	assert.Equal(t, valueobject.VerdictHighlyFraudulent, report.Verdict)
	assert.Equal(t, []string{
		service.FlagVagueWorkFromHomeTitle,
		service.FlagUnrealisticSalary,
		service.FlagRequestsPersonalInfo,
		service.FlagExcessiveUrgency,
		service.FlagMissingCompany,
		service.FlagBriefDescription,
		service.FlagNoRequirements,
	}, report.RedFlags)
}

func TestRiskScorer_ScenarioGenericCompany(t *testing.T) {
	posting := cleanPosting()
	posting.Company = "Global"

	report := service.NewRiskScorer().Evaluate(posting)

	assert.Equal(t, 80, report.Score)
	assert.Equal(t, []string{service.FlagGenericCompany}, report.RedFlags)
	assert.Equal(t, valueobject.VerdictLegitimate, report.Verdict)
}

func TestRiskScorer_ScamDescriptionFlagOrder(t *testing.T) {
	posting := cleanPosting()
	posting.Description = testutil.ScamDescription

	report := service.NewRiskScorer().Evaluate(posting)

	assert.Equal(t, 0, report.Score)
	assert.Equal(t, []string{
		service.FlagRequestsPersonalInfo,
		service.FlagExcessiveUrgency,
		service.FlagPoorGrammar,
		service.FlagExcessiveCaps,
		service.FlagBriefDescription,
		service.FlagNoRequirements,
	}, report.RedFlags)
}

func TestRiskScorer_Deterministic(t *testing.T) {
	scorer := service.NewRiskScorer()
	posting := cleanPosting()
	posting.Description = testutil.ScamDescription

	first := scorer.Evaluate(posting)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, scorer.Evaluate(posting))
	}
}

func TestRiskScorer_ScoreStaysInBounds(t *testing.T) {
	scorer := service.NewRiskScorer()
	postings := []model.JobPosting{
		{},
		cleanPosting(),
		model.NewJobPosting("Work From Home", "", testutil.ScamDescription, "", model.StringPtr("$$$ unlimited")),
		model.NewJobPosting("Junior Entry Work From Home", "global", "", "", model.StringPtr("earn up to 300,000")),
	}

	for _, p := range postings {
		report := scorer.Evaluate(p)
		assert.GreaterOrEqual(t, report.Score, 0)
		assert.LessOrEqual(t, report.Score, 100)
		assert.Equal(t, valueobject.VerdictFromScore(report.Score), report.Verdict)
	}
}

func TestRiskScorer_ScoreImplementsScorer(t *testing.T) {
	var scorer service.Scorer = service.NewRiskScorer()

	report, err := scorer.Score(context.Background(), cleanPosting())
	require.NoError(t, err)

	assert.Equal(t, 90, report.Score)
	assert.Equal(t, valueobject.StrategyRules, report.Strategy)
	assert.Equal(t, valueobject.StrategyRules, scorer.Strategy())
}
