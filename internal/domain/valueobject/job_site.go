package valueobject

import (
	"errors"
	"net/url"
	"strings"
)

// ErrUnsupportedSite is returned for URLs outside the supported job boards.
var ErrUnsupportedSite = errors.New("unsupported job site")

// JobSite identifies a supported job board.
type JobSite struct {
	value  string
	domain string
}

var (
	JobSiteLinkedIn  = JobSite{value: "linkedin", domain: "linkedin.com"}
	JobSiteIndeed    = JobSite{value: "indeed", domain: "indeed.com"}
	JobSiteMonster   = JobSite{value: "monster", domain: "monster.com"}
	JobSiteGlassdoor = JobSite{value: "glassdoor", domain: "glassdoor.com"}
)

// JobSites lists every supported board in lookup order.
func JobSites() []JobSite {
	return []JobSite{JobSiteLinkedIn, JobSiteIndeed, JobSiteMonster, JobSiteGlassdoor}
}

// JobSiteFromURL matches the host of raw against the known board domains.
// The host must equal a board domain or be a subdomain of one. Nothing
// outside the host is consulted.
func JobSiteFromURL(raw string) (JobSite, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return JobSite{}, ErrUnsupportedSite
	}
	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	if host == "" {
		return JobSite{}, ErrUnsupportedSite
	}
	for _, site := range JobSites() {
		if host == site.domain || strings.HasSuffix(host, "."+site.domain) {
			return site, nil
		}
	}
	return JobSite{}, ErrUnsupportedSite
}

// JobSiteFromString reconstructs a JobSite from its string representation.
func JobSiteFromString(s string) (JobSite, error) {
	for _, site := range JobSites() {
		if site.value == s {
			return site, nil
		}
	}
	return JobSite{}, ErrUnsupportedSite
}

func (j JobSite) String() string          { return j.value }
func (j JobSite) Domain() string          { return j.domain }
func (j JobSite) IsZero() bool            { return j.value == "" }
func (j JobSite) Equal(other JobSite) bool { return j.value == other.value }

// IsValidURL reports whether raw is an absolute http or https URL with a host.
func IsValidURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || !u.IsAbs() || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

var jobPathMarkers = []string{"/job", "/jobs", "/career", "/careers", "/viewjob", "/position"}

// IsJobPostingURL reports whether raw looks like a single job posting: a
// valid URL on a known board, or one whose path mentions a job page.
func IsJobPostingURL(raw string) bool {
	if !IsValidURL(raw) {
		return false
	}
	if _, err := JobSiteFromURL(raw); err == nil {
		return true
	}
	u, _ := url.Parse(strings.TrimSpace(raw))
	path := strings.ToLower(u.Path)
	for _, marker := range jobPathMarkers {
		if strings.Contains(path, marker) {
			return true
		}
	}
	return false
}
