package extractor

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/valueobject"
)

// Selectors are the CSS selectors that locate each posting field on a page.
type Selectors struct {
	Title       string `yaml:"title"`
	Company     string `yaml:"company"`
	Description string `yaml:"description"`
	Location    string `yaml:"location"`
	Salary      string `yaml:"salary"`
}

// SelectorTable maps a site name (valueobject.JobSite.String()) to its selectors.
type SelectorTable map[string]Selectors

// DefaultSelectors returns the built-in table. Callers may modify the result.
func DefaultSelectors() SelectorTable {
	return SelectorTable{
		valueobject.JobSiteLinkedIn.String(): {
			Title:       ".job-details-jobs-unified-top-card__job-title",
			Company:     ".job-details-jobs-unified-top-card__company-name",
			Description: ".jobs-description",
			Location:    ".job-details-jobs-unified-top-card__bullet",
			Salary:      ".job-details-jobs-unified-top-card__salary-info",
		},
		valueobject.JobSiteIndeed.String(): {
			Title:       ".jobsearch-JobInfoHeader-title",
			Company:     ".jobsearch-InlineCompanyRating-companyName",
			Description: "#jobDescriptionText",
			Location:    ".jobsearch-JobInfoHeader-subtitle .jobsearch-JobInfoHeader-text",
			Salary:      ".jobsearch-JobMetadataHeader-item",
		},
		valueobject.JobSiteMonster.String(): {
			Title:       ".job-title",
			Company:     ".company",
			Description: ".job-description",
			Location:    ".location",
			Salary:      ".mux-job-cards-salary",
		},
		valueobject.JobSiteGlassdoor.String(): {
			Title:       ".job-title",
			Company:     ".employer-name",
			Description: ".jobDescriptionContent",
			Location:    ".location",
			Salary:      ".salary-estimate",
		},
	}
}

type overrideFile struct {
	Sites map[string]Selectors `yaml:"sites"`
}

// LoadSelectors returns the default table with the overrides in path
// applied. Only non-empty fields override; unknown sites are rejected.
// An empty path yields the defaults.
func LoadSelectors(path string) (SelectorTable, error) {
	table := DefaultSelectors()
	if path == "" {
		return table, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read selectors file: %w", err)
	}

	var file overrideFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse selectors file: %w", err)
	}

	for site, override := range file.Sites {
		current, ok := table[site]
		if !ok {
			return nil, fmt.Errorf("selectors file: %w: %q", valueobject.ErrUnsupportedSite, site)
		}
		table[site] = current.merge(override)
	}

	return table, nil
}

func (s Selectors) merge(o Selectors) Selectors {
	if o.Title != "" {
		s.Title = o.Title
	}
	if o.Company != "" {
		s.Company = o.Company
	}
	if o.Description != "" {
		s.Description = o.Description
	}
	if o.Location != "" {
		s.Location = o.Location
	}
	if o.Salary != "" {
		s.Salary = o.Salary
	}
	return s
}
