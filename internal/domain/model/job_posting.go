package model

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// JobPosting is the normalized text of a job advertisement. It is a value:
// nothing mutates it after construction.
type JobPosting struct {
	Salary      *string
	Title       string
	Company     string
	Description string
	Location    string
}

// NewJobPosting builds a JobPosting. A nil salary means the posting does not
// state one.
func NewJobPosting(title, company, description, location string, salary *string) JobPosting {
	p := JobPosting{
		Title:       title,
		Company:     company,
		Description: description,
		Location:    location,
	}
	if salary != nil {
		s := *salary
		p.Salary = &s
	}
	return p
}

// HasSalary reports whether the posting states a salary, even an empty one.
func (p JobPosting) HasSalary() bool {
	return p.Salary != nil
}

// SalaryText returns the salary statement, or "" when absent.
func (p JobPosting) SalaryText() string {
	if p.Salary == nil {
		return ""
	}
	return *p.Salary
}

// HasEssentials reports whether title, company and description are all set.
func (p JobPosting) HasEssentials() bool {
	return p.Title != "" && p.Company != "" && p.Description != ""
}

// Fingerprint is a stable hex SHA-256 digest of every field. Absent and
// empty salaries hash differently.
func (p JobPosting) Fingerprint() string {
	h := sha256.New()
	for _, field := range []string{p.Title, p.Company, p.Description, p.Location} {
		h.Write([]byte(field))
		h.Write([]byte{0x1f})
	}
	if p.Salary == nil {
		h.Write([]byte{0x00})
	} else {
		h.Write([]byte{0x01})
		h.Write([]byte(*p.Salary))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Lowered returns a copy with title, company, description and salary
// lower-cased. Location is left untouched.
func (p JobPosting) Lowered() JobPosting {
	lowered := JobPosting{
		Title:       strings.ToLower(p.Title),
		Company:     strings.ToLower(p.Company),
		Description: strings.ToLower(p.Description),
		Location:    p.Location,
	}
	if p.Salary != nil {
		s := strings.ToLower(*p.Salary)
		lowered.Salary = &s
	}
	return lowered
}

// StringPtr is a convenience for optional salary literals.
func StringPtr(s string) *string {
	return &s
}
