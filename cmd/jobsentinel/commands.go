package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/Adis-git/job-sentinel-ai-check/internal/application/dto"
	"github.com/Adis-git/job-sentinel-ai-check/internal/application/usecase"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/model"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/port"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/service"
	"github.com/Adis-git/job-sentinel-ai-check/internal/infrastructure/extractor"
	"github.com/Adis-git/job-sentinel-ai-check/internal/infrastructure/messaging"
	"github.com/Adis-git/job-sentinel-ai-check/internal/infrastructure/metrics"
	"github.com/Adis-git/job-sentinel-ai-check/internal/infrastructure/notify"
	"github.com/Adis-git/job-sentinel-ai-check/internal/infrastructure/sqlite"
	"github.com/Adis-git/job-sentinel-ai-check/pkg/observability"
)

const defaultDBPath = "jobsentinel.db"

// postingFlags binds the posting fields shared by score and report.
type postingFlags struct {
	title       string
	company     string
	description string
	location    string
	salary      string
}

func (p *postingFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&p.title, "title", "", "posting title")
	fs.StringVar(&p.company, "company", "", "company name")
	fs.StringVar(&p.description, "description", "", "posting description")
	fs.StringVar(&p.location, "location", "", "posting location")
	fs.StringVar(&p.salary, "salary", "", "salary text as shown on the page")
}

func (p *postingFlags) empty() bool {
	return p.title == "" && p.company == "" && p.description == ""
}

func (p *postingFlags) request() dto.AssessPostingRequest {
	req := dto.AssessPostingRequest{
		Title:       p.title,
		Company:     p.company,
		Description: p.description,
		Location:    p.location,
	}
	if p.salary != "" {
		req.Salary = model.StringPtr(p.salary)
	}
	return req
}

func newFlagSet(name string, e env) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	return fs
}

// parseFlags turns flag parsing failures into usage errors.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return usageErrorf("%s: help requested", fs.Name())
		}
		return usageErrorf("%s: %v", fs.Name(), err)
	}
	if fs.NArg() > 0 {
		return usageErrorf("%s: unexpected arguments %v", fs.Name(), fs.Args())
	}
	return nil
}

func checkFormat(format string) error {
	if format != formatText && format != formatJSON {
		return usageErrorf("-format must be %q or %q", formatText, formatJSON)
	}
	return nil
}

func runScore(ctx context.Context, args []string, e env) error {
	fs := newFlagSet("score", e)
	var (
		fields   postingFlags
		jsonPath string
		format   string
	)
	fields.register(fs)
	fs.StringVar(&jsonPath, "json", "", "read the posting as JSON from a file, or - for stdin")
	fs.StringVar(&format, "format", formatText, "output format: text or json")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := checkFormat(format); err != nil {
		return err
	}

	var req dto.AssessPostingRequest
	switch {
	case jsonPath != "":
		if !fields.empty() {
			return usageErrorf("score: -json cannot be combined with field flags")
		}
		r, err := readPostingJSON(jsonPath, e.stdin)
		if err != nil {
			return err
		}
		req = r
	case fields.empty():
		return usageErrorf("score: provide -json or at least one of -title, -company, -description")
	default:
		req = fields.request()
	}

	report, err := service.NewRiskScorer().Score(ctx, req.Posting())
	if err != nil {
		return fmt.Errorf("failed to score posting: %w", err)
	}
	return writeScore(e.stdout, format, report)
}

func readPostingJSON(path string, stdin io.Reader) (dto.AssessPostingRequest, error) {
	var r io.Reader
	if path == "-" {
		r = stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return dto.AssessPostingRequest{}, fmt.Errorf("failed to open posting: %w", err)
		}
		defer f.Close()
		r = f
	}

	var req dto.AssessPostingRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return dto.AssessPostingRequest{}, fmt.Errorf("failed to decode posting: %w", err)
	}
	return req, nil
}

func runExtract(ctx context.Context, args []string, e env) error {
	fs := newFlagSet("extract", e)
	var (
		rawURL    string
		htmlPath  string
		selectors string
		format    string
		score     bool
	)
	fs.StringVar(&rawURL, "url", "", "job page URL (required)")
	fs.StringVar(&htmlPath, "html", "", "read the page from this file instead of fetching it")
	fs.StringVar(&selectors, "selectors", "", "YAML file with selector overrides")
	fs.StringVar(&format, "format", formatText, "output format: text or json")
	fs.BoolVar(&score, "score", false, "also score the extracted posting")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := checkFormat(format); err != nil {
		return err
	}
	if rawURL == "" {
		return usageErrorf("extract: -url is required")
	}

	table, err := extractor.LoadSelectors(selectors)
	if err != nil {
		return err
	}
	ex := extractor.New(extractor.NewHTTPFetcher(nil, "", 0, nil), table)

	var extraction port.Extraction
	if htmlPath != "" {
		page, readErr := os.ReadFile(htmlPath)
		if readErr != nil {
			return fmt.Errorf("failed to read page: %w", readErr)
		}
		extraction, err = ex.ExtractHTML(rawURL, string(page))
	} else {
		extraction, err = ex.Extract(ctx, rawURL)
	}
	if err != nil {
		if errors.Is(err, port.ErrIncompleteExtraction) {
			_ = writeExtraction(e.stdout, format, extraction, nil)
		}
		return err
	}

	var report *model.ScoreReport
	if score {
		r, err := service.NewRiskScorer().Score(ctx, extraction.Posting)
		if err != nil {
			return fmt.Errorf("failed to score posting: %w", err)
		}
		report = &r
	}
	return writeExtraction(e.stdout, format, extraction, report)
}

// openAuditLog wires ReportPosting and ListReports over the SQLite store.
func openAuditLog(ctx context.Context, path string, e env) (*sqlite.ReportStore, *usecase.ReportPosting, *usecase.ListReports, error) {
	store, err := sqlite.Open(ctx, path)
	if err != nil {
		return nil, nil, nil, err
	}

	logger := observability.InitLogger(observability.LogConfig{
		Output:  e.stderr,
		Level:   "warn",
		Format:  "text",
		Service: "jobsentinel",
	})
	report := usecase.NewReportPosting(store, nil, messaging.NewLogPublisher(logger), notify.Nop{}, metrics.Nop{}, logger)
	return store, report, usecase.NewListReports(store), nil
}

func runReport(ctx context.Context, args []string, e env) error {
	fs := newFlagSet("report", e)
	var (
		fields       postingFlags
		dbPath       string
		rawURL       string
		reason       string
		assessmentID string
		format       string
	)
	fields.register(fs)
	fs.StringVar(&dbPath, "db", defaultDBPath, "SQLite audit log path")
	fs.StringVar(&rawURL, "url", "", "URL of the reported posting (required)")
	fs.StringVar(&reason, "reason", "", "why the posting is being reported")
	fs.StringVar(&assessmentID, "assessment-id", "", "id of an earlier assessment")
	fs.StringVar(&format, "format", formatText, "output format: text or json")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := checkFormat(format); err != nil {
		return err
	}
	if strings.TrimSpace(rawURL) == "" {
		return usageErrorf("report: -url is required")
	}

	posting := fields.request()
	req := dto.ReportPostingRequest{
		Title:       posting.Title,
		Company:     posting.Company,
		Description: posting.Description,
		Location:    posting.Location,
		Salary:      posting.Salary,
		URL:         rawURL,
		Reason:      reason,
	}
	if assessmentID != "" {
		id, err := uuid.Parse(assessmentID)
		if err != nil {
			return usageErrorf("report: invalid -assessment-id: %v", err)
		}
		req.AssessmentID = &id
	}

	store, reportPosting, _, err := openAuditLog(ctx, dbPath, e)
	if err != nil {
		return err
	}
	defer store.Close()

	resp, err := reportPosting.Execute(ctx, req)
	if err != nil {
		return err
	}
	return writeReport(e.stdout, format, resp)
}

func runReports(ctx context.Context, args []string, e env) error {
	fs := newFlagSet("reports", e)
	var (
		dbPath string
		format string
		limit  int
		offset int
	)
	fs.StringVar(&dbPath, "db", defaultDBPath, "SQLite audit log path")
	fs.IntVar(&limit, "limit", 20, "maximum number of reports")
	fs.IntVar(&offset, "offset", 0, "number of reports to skip")
	fs.StringVar(&format, "format", formatText, "output format: text or json")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := checkFormat(format); err != nil {
		return err
	}
	if limit < 1 || offset < 0 {
		return usageErrorf("reports: -limit must be positive and -offset non-negative")
	}

	store, _, listReports, err := openAuditLog(ctx, dbPath, e)
	if err != nil {
		return err
	}
	defer store.Close()

	resp, err := listReports.Execute(ctx, dto.ListRequest{Limit: limit, Offset: offset})
	if err != nil {
		return err
	}
	return writeReports(e.stdout, format, resp)
}
