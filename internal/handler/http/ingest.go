package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/domain/attendance"
	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/handler/http/response"
	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/pkg/spreadsheet"
)

type IngestHandler interface {
	Import(w http.ResponseWriter, r *http.Request)
	ManualPunch(w http.ResponseWriter, r *http.Request)
	DeleteDayRecord(w http.ResponseWriter, r *http.Request)
}

type ingestHandlerImpl struct {
	ingestService attendance.IngestService
}

func NewIngestHandler(ingestService attendance.IngestService) IngestHandler {
	return &ingestHandlerImpl{
		ingestService: ingestService,
	}
}

// Import implements IngestHandler. The upload is an xlsx workbook in either
// the device export or the bulk template layout; format detection happens in
// the pipeline, not here.
func (h *ingestHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form (max 20MB)
	if err := r.ParseMultipartForm(20 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Field 'file' is required", nil)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	rows, err := spreadsheet.ReadRows(file)
	if err != nil {
		slog.Error("Failed to read workbook", "error", err)
		response.BadRequest(w, "File is not a readable workbook", nil)
		return
	}

	report, err := h.ingestService.IngestBatch(r.Context(), attendance.RowBatch{Rows: rows})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Import processed", report)
}

// ManualPunch implements IngestHandler.
func (h *ingestHandlerImpl) ManualPunch(w http.ResponseWriter, r *http.Request) {
	var req attendance.ManualPunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	report, err := h.ingestService.IngestManualPunch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punch recorded", report)
}

// DeleteDayRecord implements IngestHandler.
func (h *ingestHandlerImpl) DeleteDayRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Day record ID is required", nil)
		return
	}

	if err := h.ingestService.DeleteDayRecord(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Day record deleted", nil)
}
