package testutil

import (
	"time"

	"github.com/google/uuid"
)

// Fixed identifiers for deterministic tests.
var (
	AssessmentID1 = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	AssessmentID2 = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	ReportID1     = uuid.MustParse("00000000-0000-0000-0000-000000000010")
)

// FixedTime is a stable UTC instant for timestamp assertions.
var FixedTime = time.Date(2025, time.March, 14, 9, 26, 53, 0, time.UTC)

// CleanDescription is a posting body that trips none of the risk rules.
const CleanDescription = "We are seeking a backend engineer with 5+ years of experience in Go " +
	"and distributed systems. Required skills include SQL, Kubernetes, and strong " +
	"communication. You will design services and mentor junior teammates."

// ScamDescription trips every description-based risk rule.
const ScamDescription = "URGENT!!! urgent hiring. Registration fee required. " +
	"Send ur resume now. MAKE MONEY FAST FROM HOME TODAY"

// LinkedInPostingHTML is a trimmed LinkedIn job page used by extractor tests.
const LinkedInPostingHTML = `<html><body>
<h1 class="job-details-jobs-unified-top-card__job-title">  Senior Go
  Engineer </h1>
<div class="job-details-jobs-unified-top-card__company-name"><a>Acme Analytics</a></div>
<span class="job-details-jobs-unified-top-card__bullet">Berlin, Germany</span>
<span class="job-details-jobs-unified-top-card__bullet">Hybrid</span>
<div class="jobs-description"><p>Build ingestion pipelines.</p>
<p>Requires experience with Kafka and strong Go skills.</p></div>
<div class="job-details-jobs-unified-top-card__salary-info">$120,000 - $150,000</div>
</body></html>`

// IndeedPostingHTML is an Indeed job page without a salary block.
const IndeedPostingHTML = `<html><body>
<h1 class="jobsearch-JobInfoHeader-title">Data Entry Clerk</h1>
<div class="jobsearch-InlineCompanyRating-companyName">Global</div>
<div class="jobsearch-JobInfoHeader-subtitle"><div class="jobsearch-JobInfoHeader-text">Remote</div></div>
<div id="jobDescriptionText">Type records from home.</div>
</body></html>`
