package handlers

import (
	"io"
	"net/http"

	"deepread-backend/internal/models"
	"deepread-backend/internal/services"
)

type PDFHandler struct {
	extractor      *services.FileExtractService
	maxUploadBytes int64
}

func NewPDFHandler(extractor *services.FileExtractService, maxUploadBytes int64) *PDFHandler {
	return &PDFHandler{
		extractor:      extractor,
		maxUploadBytes: maxUploadBytes,
	}
}

// ExtractText accepts a multipart PDF upload and returns its text layer.
// An upload that parses but yields no text is not an error; the response
// carries a marker message instead.
func (h *PDFHandler) ExtractText(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid multipart form", r))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "PDF file is required", r))
		return
	}
	defer file.Close()

	if ct := header.Header.Get("Content-Type"); ct != "application/pdf" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid file type. Only PDF files are accepted.", r))
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to read uploaded file", r))
		return
	}
	if int64(len(data)) > h.maxUploadBytes {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResp("FILE_TOO_LARGE", "Uploaded file exceeds the size limit", r))
		return
	}

	text, err := h.extractor.ExtractText(data)
	if err != nil {
		handlePipelineError(w, r, err)
		return
	}

	resp := models.ExtractTextResponse{
		Filename:      header.Filename,
		ExtractedText: text,
	}
	if text == "" {
		resp.Message = "No text could be extracted from the PDF."
	}
	writeJSON(w, http.StatusOK, resp)
}
