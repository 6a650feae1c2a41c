package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"deepread-backend/internal/llm"
	"deepread-backend/internal/models"
	"deepread-backend/internal/services"
)

// userAPIKeyHeader carries an optional caller-supplied credential that
// overrides the server default for that request only. Its value is never
// logged or echoed back.
const userAPIKeyHeader = "X-User-API-Key"

type completionGateway interface {
	Complete(ctx context.Context, req llm.Request) (*llm.Completion, error)
	CompleteStream(ctx context.Context, req llm.Request) (llm.Stream, error)
}

type LLMHandler struct {
	gateway       completionGateway
	chatModel     string
	reasonerModel string
}

func NewLLMHandler(gateway completionGateway, chatModel, reasonerModel string) *LLMHandler {
	return &LLMHandler{
		gateway:       gateway,
		chatModel:     chatModel,
		reasonerModel: reasonerModel,
	}
}

func userAPIKey(r *http.Request) string {
	return r.Header.Get(userAPIKeyHeader)
}

func (h *LLMHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req models.TextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Text is required", r))
		return
	}

	completion, err := h.gateway.Complete(r.Context(), llm.Request{
		Messages: services.SummarizeMessages(req.Text),
		Model:    h.reasonerModel,
		APIKey:   userAPIKey(r),
	})
	if err != nil {
		handlePipelineError(w, r, err)
		return
	}

	summary, err := services.NormalizeCompletion(completion)
	if err != nil {
		handlePipelineError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.SummaryResponse{Summary: summary})
}

func (h *LLMHandler) ChatWithContext(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeChatRequest(w, r)
	if !ok {
		return
	}

	completion, err := h.gateway.Complete(r.Context(), llm.Request{
		Messages: services.ContextChatMessages(req.DocumentContext, req.UserQuery),
		Model:    h.chatModel,
		APIKey:   userAPIKey(r),
	})
	if err != nil {
		handlePipelineError(w, r, err)
		return
	}

	answer, err := services.NormalizeCompletion(completion)
	if err != nil {
		handlePipelineError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{AIResponse: answer})
}

// ChatWithContextStream answers the same request shape as ChatWithContext
// but delivers the model output incrementally as server-sent events. The
// stream is closed on every exit path so the provider connection never
// leaks.
func (h *LLMHandler) ChatWithContextStream(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeChatRequest(w, r)
	if !ok {
		return
	}

	stream, err := h.gateway.CompleteStream(r.Context(), llm.Request{
		Messages: services.ContextChatMessages(req.DocumentContext, req.UserQuery),
		Model:    h.chatModel,
		APIKey:   userAPIKey(r),
	})
	if err != nil {
		handlePipelineError(w, r, err)
		return
	}
	defer stream.Close()

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Streaming is not supported by this server", r))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	for {
		delta, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			fmt.Fprint(w, "data: [DONE]\n\n")
			flusher.Flush()
			return
		}
		if err != nil {
			// Headers are already sent; report the break in-band and stop.
			logrus.WithError(err).Error("chat stream aborted")
			fmt.Fprint(w, "event: error\ndata: stream interrupted\n\n")
			flusher.Flush()
			return
		}

		payload, _ := json.Marshal(map[string]string{"delta": delta})
		fmt.Fprintf(w, "data: %s\n\n", payload)
		flusher.Flush()
	}
}

func (h *LLMHandler) GenerateMindmap(w http.ResponseWriter, r *http.Request) {
	var req models.MindmapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if strings.TrimSpace(req.DocumentText) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Document text is required", r))
		return
	}

	// Unknown formats are rejected here, before any outbound call.
	format, err := services.ParseOutputFormat(req.OutputFormat)
	if err != nil {
		handlePipelineError(w, r, err)
		return
	}

	messages, err := services.MindmapMessages(req.DocumentText, format)
	if err != nil {
		handlePipelineError(w, r, err)
		return
	}

	completion, err := h.gateway.Complete(r.Context(), llm.Request{
		Messages: messages,
		Model:    h.reasonerModel,
		APIKey:   userAPIKey(r),
	})
	if err != nil {
		handlePipelineError(w, r, err)
		return
	}

	data, err := services.NormalizeMindmap(completion, format)
	if err != nil {
		handlePipelineError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.MindmapResponse{
		MindmapData: data,
		FormatUsed:  string(format),
	})
}

func decodeChatRequest(w http.ResponseWriter, r *http.Request) (models.ChatWithContextRequest, bool) {
	var req models.ChatWithContextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return req, false
	}
	if strings.TrimSpace(req.UserQuery) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "User query is required", r))
		return req, false
	}
	if strings.TrimSpace(req.DocumentContext) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Document context is required", r))
		return req, false
	}
	return req, true
}
