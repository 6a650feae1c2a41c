package models

// Request and response shapes for the HTTP boundary. Everything here is
// request-scoped; nothing is persisted.

type TextRequest struct {
	Text string `json:"text"`
}

type SummaryResponse struct {
	Summary string `json:"summary"`
}

type ChatWithContextRequest struct {
	UserQuery       string `json:"user_query"`
	DocumentContext string `json:"document_context"`
}

type ChatResponse struct {
	AIResponse string `json:"ai_response"`
}

type MindmapRequest struct {
	DocumentText string `json:"document_text"`
	OutputFormat string `json:"output_format"`
}

type MindmapResponse struct {
	MindmapData string `json:"mindmap_data"`
	FormatUsed  string `json:"format_used"`
}

type ExtractTextResponse struct {
	Filename      string `json:"filename"`
	ExtractedText string `json:"extracted_text"`
	Message       string `json:"message,omitempty"`
}

type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}
