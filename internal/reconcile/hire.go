package reconcile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/nimbushr/syncengine/internal/domain"
	"github.com/nimbushr/syncengine/internal/httpx"
)

// Hire implements §4.3.7: turn a "hired" ATS application into an HRIS
// import row, generating a unique work email and optionally upserting the
// planner person. Unlike the other Kind handlers this one is invoked
// directly by the ATS webhook handler after HMAC verification rather than
// through the task queue — "hire" does not appear in the §6 task payload
// kind enum, since the webhook handler processes it synchronously and
// always returns 200 regardless of outcome (see DESIGN.md).
func (h *Handlers) Hire(ctx context.Context, applicationID string) (Result, error) {
	event, err := h.ATS.GetApplication(ctx, applicationID)
	if errors.Is(err, httpx.ErrNotFound) {
		return Result{Status: StatusSkipped, Reason: "application not found"}, nil
	}
	if err != nil {
		return Result{Status: StatusError, Reason: err.Error()}, err
	}

	if !event.IsHired() {
		return Result{Status: StatusSkipped, Reason: "application status is not hired"}, nil
	}

	startDate, ok := event.StartDate()
	if !ok {
		return Result{Status: StatusSkipped, Reason: "no start date on offer, attribute, or hired-at"}, nil
	}

	workEmail, err := h.generateWorkEmail(ctx, event.CandidateFirst, event.CandidateLast)
	if err != nil {
		return Result{Status: StatusError, Reason: err.Error()}, err
	}

	csvBody, err := hireImportCSV(event, workEmail, startDate.Format("2006-01-02"))
	if err != nil {
		return Result{Status: StatusError, Reason: err.Error()}, err
	}
	if err := h.HRIS.SubmitCSVImport(ctx, csvBody); err != nil {
		return Result{Status: StatusError, Reason: err.Error()}, err
	}

	if h.CreatePlannerOnHire {
		name := strings.TrimSpace(event.CandidateFirst + " " + event.CandidateLast)
		if _, err := h.Planner.UpsertPerson(ctx, name, workEmail, "", startDate.Format("2006-01-02")); err != nil {
			return Result{Status: StatusError, Reason: "HRIS import succeeded but planner upsert failed: " + err.Error()}, err
		}
	}

	return Result{Status: StatusSynced, DownstreamID: workEmail}, nil
}

// generateWorkEmail builds "first.last@domain", stripping diacritics and
// non-alphanumeric characters, then probes HRIS for a collision and
// appends 2..999 until unique (§4.3.7).
func (h *Handlers) generateWorkEmail(ctx context.Context, first, last string) (string, error) {
	local := slugify(first) + "." + slugify(last)
	if local == "." {
		return "", fmt.Errorf("reconcile: hire: candidate has no usable name for an email")
	}

	candidate := local + "@" + h.CorpEmailDomain
	for suffix := 2; suffix < 1000; suffix++ {
		taken, err := h.HRIS.EmailExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = local + strconv.Itoa(suffix) + "@" + h.CorpEmailDomain
	}
	return "", fmt.Errorf("reconcile: hire: exhausted email suffixes for %s", local)
}

// slugify strips diacritics (NFD-decompose, drop combining marks) and any
// non-alphanumeric rune, then lowercases what remains.
func slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	decomposed, _, err := transform.String(t, s)
	if err != nil {
		decomposed = s
	}

	var b strings.Builder
	for _, r := range decomposed {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// hireImportCSV builds the single-row HRIS import CSV in the snapshot's
// canonical header order (§4.3.7: "canonical header order").
func hireImportCSV(event domain.HireEvent, workEmail, startDate string) (string, error) {
	row := domain.SnapshotRow{
		Email:     workEmail,
		Name:      strings.TrimSpace(event.CandidateFirst + " " + event.CandidateLast),
		JobTitle:  event.JobTitle,
		StartDate: startDate,
	}

	var buf strings.Builder
	w := csv.NewWriter(&buf)
	w.UseCRLF = false
	if err := w.Write(domain.SnapshotColumns); err != nil {
		return "", fmt.Errorf("reconcile: hire: write csv header: %w", err)
	}
	if err := w.Write(row.Fields()); err != nil {
		return "", fmt.Errorf("reconcile: hire: write csv row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("reconcile: hire: flush csv: %w", err)
	}
	return buf.String(), nil
}
