package http

import (
	"net/http"
	"time"

	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/domain/report"
	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/handler/http/response"
)

type ReportHandler interface {
	GetSummary(w http.ResponseWriter, r *http.Request)
	GetAllSummaries(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// GetSummary implements ReportHandler.
func (h *reportHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	req := report.PeriodSummaryRequest{
		EmployeeCode: r.URL.Query().Get("employee_id"),
		StartDate:    r.URL.Query().Get("start_date"),
		EndDate:      r.URL.Query().Get("end_date"),
	}

	if req.EmployeeCode == "" {
		response.BadRequest(w, "Query parameter 'employee_id' is required", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	summary, err := h.reportService.Summarize(r.Context(), req.EmployeeCode, start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// GetAllSummaries implements ReportHandler.
func (h *reportHandlerImpl) GetAllSummaries(w http.ResponseWriter, r *http.Request) {
	req := report.PeriodSummaryRequest{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	summaries, err := h.reportService.SummarizeAll(r.Context(), start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summaries)
}
