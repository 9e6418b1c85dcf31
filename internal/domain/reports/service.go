package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"roster/internal/domain/coverage"
	"roster/internal/domain/org"
	"roster/internal/domain/schedule"
)

type RequestSource interface {
	List(ctx context.Context, filter coverage.ListFilter, limit, offset int) ([]coverage.CoverageRequest, int, error)
}

type NameSource interface {
	ListActiveEmployees(ctx context.Context) ([]org.Employee, error)
}

type Service struct {
	Requests RequestSource
	Names    NameSource
}

func NewService(requests RequestSource, names NameSource) *Service {
	return &Service{Requests: requests, Names: names}
}

// Entry is one line of the coverage log export.
type Entry struct {
	Date         string `json:"date"`
	ShiftName    string `json:"shiftName"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	StoreID      string `json:"storeId"`
	ReportedBy   string `json:"reportedBy"`
	CoveredBy    string `json:"coveredBy"`
	Status       string `json:"status"`
	Compensation string `json:"compensation"`
}

func (s *Service) CoverageLog(ctx context.Context, filter coverage.ListFilter) ([]Entry, error) {
	requests, _, err := s.Requests.List(ctx, filter, 0, 0)
	if err != nil {
		return nil, err
	}

	names := map[string]string{}
	if s.Names != nil {
		employees, err := s.Names.ListActiveEmployees(ctx)
		if err != nil {
			return nil, err
		}
		for _, e := range employees {
			names[e.ID] = e.FirstName + " " + e.LastName
		}
	}
	displayName := func(id string) string {
		if id == "" {
			return ""
		}
		if name, ok := names[id]; ok {
			return name
		}
		return id
	}

	entries := make([]Entry, 0, len(requests))
	for _, req := range requests {
		entries = append(entries, Entry{
			Date:         req.OriginalShift.DayDate.Format(schedule.DateLayout),
			ShiftName:    req.OriginalShift.ShiftName,
			StartTime:    req.OriginalShift.StartTime,
			EndTime:      req.OriginalShift.EndTime,
			StoreID:      req.OriginalShift.StoreID,
			ReportedBy:   displayName(req.OriginalEmployeeID),
			CoveredBy:    displayName(req.AcceptedBy),
			Status:       req.Status,
			Compensation: req.CompensationType,
		})
	}
	return entries, nil
}

var logHeader = []string{"Date", "Shift", "Start", "End", "Store", "Reported By", "Covered By", "Status", "Compensation"}

func (e Entry) row() []string {
	return []string{e.Date, e.ShiftName, e.StartTime, e.EndTime, e.StoreID, e.ReportedBy, e.CoveredBy, e.Status, e.Compensation}
}

func (s *Service) CoverageLogCSV(ctx context.Context, filter coverage.ListFilter) ([]byte, error) {
	entries, err := s.CoverageLog(ctx, filter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(logHeader); err != nil {
		return nil, err
	}
	for _, e := range entries {
		if err := w.Write(e.row()); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Service) CoverageLogPDF(ctx context.Context, filter coverage.ListFilter) ([]byte, error) {
	entries, err := s.CoverageLog(ctx, filter)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Shift Coverage Log", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Shift Coverage Log")
	pdf.Ln(12)

	widths := []float64{24, 36, 18, 18, 30, 42, 42, 34, 30}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range logHeader {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, e := range entries {
		for i, cell := range e.row() {
			pdf.CellFormat(widths[i], 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Arial", "I", 8)
	pdf.Ln(4)
	pdf.Cell(0, 6, fmt.Sprintf("%d requests", len(entries)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render coverage log PDF: %w", err)
	}
	return buf.Bytes(), nil
}
