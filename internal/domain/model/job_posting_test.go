package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/model"
)

func TestNewJobPosting_CopiesSalary(t *testing.T) {
	salary := "$90,000"
	p := model.NewJobPosting("Engineer", "Acme", "desc", "Remote", &salary)
	salary = "changed"

	assert.True(t, p.HasSalary())
	assert.Equal(t, "$90,000", p.SalaryText())
}

func TestJobPosting_AbsentSalary(t *testing.T) {
	p := model.NewJobPosting("Engineer", "Acme", "desc", "", nil)

	assert.False(t, p.HasSalary())
	assert.Empty(t, p.SalaryText())
}

func TestJobPosting_HasEssentials(t *testing.T) {
	tests := []struct {
		name     string
		posting  model.JobPosting
		expected bool
	}{
		{"all present", model.NewJobPosting("t", "c", "d", "", nil), true},
		{"missing title", model.NewJobPosting("", "c", "d", "", nil), false},
		{"missing company", model.NewJobPosting("t", "", "d", "", nil), false},
		{"missing description", model.NewJobPosting("t", "c", "", "loc", nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.posting.HasEssentials())
		})
	}
}

func TestJobPosting_Fingerprint(t *testing.T) {
	a := model.NewJobPosting("Engineer", "Acme", "desc", "Berlin", nil)
	b := model.NewJobPosting("Engineer", "Acme", "desc", "Berlin", nil)
	empty := model.NewJobPosting("Engineer", "Acme", "desc", "Berlin", model.StringPtr(""))
	shifted := model.NewJobPosting("EngineerAcme", "", "desc", "Berlin", nil)

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Len(t, a.Fingerprint(), 64)
	assert.NotEqual(t, a.Fingerprint(), empty.Fingerprint(), "absent and empty salary must differ")
	assert.NotEqual(t, a.Fingerprint(), shifted.Fingerprint(), "field boundaries must matter")
}

func TestJobPosting_Lowered(t *testing.T) {
	p := model.NewJobPosting("Work From HOME", "ACME", "Apply NOW", "New York", model.StringPtr("Earn UP TO $5k"))

	lowered := p.Lowered()

	assert.Equal(t, "work from home", lowered.Title)
	assert.Equal(t, "acme", lowered.Company)
	assert.Equal(t, "apply now", lowered.Description)
	assert.Equal(t, "New York", lowered.Location)
	assert.Equal(t, "earn up to $5k", lowered.SalaryText())
	assert.Equal(t, "Earn UP TO $5k", p.SalaryText(), "original must be untouched")
}
