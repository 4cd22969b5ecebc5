package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Adis-git/job-sentinel-ai-check/internal/application/dto"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/model"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/port"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/valueobject"
)

const (
	formatText = "text"
	formatJSON = "json"
)

type scoreOutput struct {
	Badge        valueobject.Badge `json:"badge"`
	Verdict      string            `json:"verdict"`
	VerdictLabel string            `json:"verdict_label"`
	Summary      string            `json:"summary"`
	Strategy     string            `json:"strategy"`
	RedFlags     []string          `json:"red_flags"`
	Score        int               `json:"score"`

	CorrectJobTitle string `json:"correct_job_title,omitempty"`
}

func toScoreOutput(r model.ScoreReport) scoreOutput {
	flags := r.RedFlags
	if flags == nil {
		flags = []string{}
	}
	return scoreOutput{
		Score:        r.Score,
		Verdict:      r.Verdict.String(),
		VerdictLabel: r.Verdict.Label(),
		Summary:      r.Summary,
		Strategy:     r.Strategy.String(),
		RedFlags:     flags,
		Badge:        valueobject.BadgeFromScore(r.Score),

		CorrectJobTitle: r.CorrectJobTitle,
	}
}

type extractOutput struct {
	Report  *scoreOutput   `json:"report,omitempty"`
	Site    string         `json:"site"`
	URL     string         `json:"url"`
	Posting dto.PostingDTO `json:"posting"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeScore(w io.Writer, format string, r model.ScoreReport) error {
	if format == formatJSON {
		return writeJSON(w, toScoreOutput(r))
	}
	printScore(w, r)
	return nil
}

func printScore(w io.Writer, r model.ScoreReport) {
	fmt.Fprintf(w, "Score:    %d/100\n", r.Score)
	fmt.Fprintf(w, "Verdict:  %s (%s)\n", r.Verdict.Label(), r.Verdict)
	fmt.Fprintf(w, "Summary:  %s\n", r.Summary)
	if r.CorrectJobTitle != "" {
		fmt.Fprintf(w, "Likely title: %s\n", r.CorrectJobTitle)
	}
	if len(r.RedFlags) == 0 {
		fmt.Fprintln(w, "Red flags: none")
		return
	}
	fmt.Fprintln(w, "Red flags:")
	for _, f := range r.RedFlags {
		fmt.Fprintf(w, "  - %s\n", f)
	}
}

func writeExtraction(w io.Writer, format string, x port.Extraction, r *model.ScoreReport) error {
	if format == formatJSON {
		out := extractOutput{Site: x.Site.String(), URL: x.URL, Posting: dto.FromPosting(x.Posting)}
		if r != nil {
			so := toScoreOutput(*r)
			out.Report = &so
		}
		return writeJSON(w, out)
	}

	fmt.Fprintf(w, "Site:        %s\n", x.Site)
	printPosting(w, dto.FromPosting(x.Posting))
	if r != nil {
		fmt.Fprintln(w)
		printScore(w, *r)
	}
	return nil
}

func printPosting(w io.Writer, p dto.PostingDTO) {
	fmt.Fprintf(w, "Title:       %s\n", p.Title)
	fmt.Fprintf(w, "Company:     %s\n", p.Company)
	fmt.Fprintf(w, "Location:    %s\n", p.Location)
	if p.Salary != nil {
		fmt.Fprintf(w, "Salary:      %s\n", *p.Salary)
	}
	fmt.Fprintf(w, "Description: %s\n", p.Description)
}

func writeReport(w io.Writer, format string, r dto.ReportResponse) error {
	if format == formatJSON {
		return writeJSON(w, r)
	}
	fmt.Fprintf(w, "Reported %s at %s (id %s)\n", r.URL, r.ReportedAt, r.ID)
	if r.TimesSeen > 1 {
		fmt.Fprintf(w, "This URL has been reported %d times.\n", r.TimesSeen)
	}
	return nil
}

func writeReports(w io.Writer, format string, resp dto.ReportListResponse) error {
	if format == formatJSON {
		return writeJSON(w, resp)
	}
	if len(resp.Reports) == 0 {
		fmt.Fprintln(w, "No reports.")
		return nil
	}
	for _, r := range resp.Reports {
		title := strings.TrimSpace(r.Posting.Title)
		if title == "" {
			title = "(untitled)"
		}
		line := fmt.Sprintf("%s  %s  %s", r.ReportedAt, title, r.URL)
		if r.Reason != "" {
			line += "  reason: " + r.Reason
		}
		fmt.Fprintln(w, line)
	}
	return nil
}
