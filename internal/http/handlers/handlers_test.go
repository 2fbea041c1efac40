package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/flynnai/extraction/internal/extraction"
	"github.com/flynnai/extraction/internal/llm"
	"github.com/flynnai/extraction/internal/models"
)

type stubGateway struct {
	response json.RawMessage
	err      error
}

func (s stubGateway) Extract(ctx context.Context, systemPrompt, userPrompt string) (json.RawMessage, error) {
	return s.response, s.err
}

func newTestRouter(gw llm.Gateway) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &Handler{
		Extractor: &extraction.Service{
			Gateway:              gw,
			Logger:               zerolog.Nop(),
			ReviewThreshold:      0.5,
			AutoConfirmThreshold: 0.8,
		},
		Validator: validator.New(),
		Logger:    zerolog.Nop(),
	}
	r := gin.New()
	r.GET("/healthz", h.Healthz)
	r.POST("/api/extract", h.Extract)
	r.GET("/api/extractions", h.ExtractionsList)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestExtract_Success(t *testing.T) {
	r := newTestRouter(stubGateway{response: json.RawMessage(`{
		"events":[{"title":"Showing at 14 Elm St","service_address":"14 Elm St","confidence_score":0.9}],
		"call_summary":"showing request",
		"call_topic":"showing"
	}`)})

	w := doRequest(t, r, http.MethodPost, "/api/extract",
		`{"transcription":"Can I see 14 Elm St on Saturday?","industry":"real_estate"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var result models.ExtractionResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(result.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(result.Events))
	}
	if result.TotalConfidence != 0.9 {
		t.Fatalf("expected total_confidence 0.9, got %f", result.TotalConfidence)
	}
}

func TestExtract_MissingTranscription(t *testing.T) {
	r := newTestRouter(stubGateway{})
	w := doRequest(t, r, http.MethodPost, "/api/extract", `{"industry":"plumbing"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "INVALID_REQUEST") {
		t.Fatalf("expected INVALID_REQUEST code: %s", w.Body.String())
	}
}

func TestExtract_WhitespaceTranscription(t *testing.T) {
	r := newTestRouter(stubGateway{})
	w := doRequest(t, r, http.MethodPost, "/api/extract", `{"transcription":"   "}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "INVALID_TRANSCRIPT") {
		t.Fatalf("expected INVALID_TRANSCRIPT code: %s", w.Body.String())
	}
}

func TestExtract_GatewayFailure(t *testing.T) {
	r := newTestRouter(stubGateway{err: &llm.ExtractionError{Retryable: false, Err: &llm.RateLimitError{}}})
	w := doRequest(t, r, http.MethodPost, "/api/extract", `{"transcription":"hello"}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "EXTRACTION_FAILED") {
		t.Fatalf("expected EXTRACTION_FAILED code: %s", w.Body.String())
	}
}

func TestExtract_MalformedModelOutput(t *testing.T) {
	r := newTestRouter(stubGateway{response: json.RawMessage(`{"call_summary":"no events"}`)})
	w := doRequest(t, r, http.MethodPost, "/api/extract", `{"transcription":"hello"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "MALFORMED_RESULT") {
		t.Fatalf("expected MALFORMED_RESULT code: %s", w.Body.String())
	}
}

func TestExtractionsList_WithoutStore(t *testing.T) {
	r := newTestRouter(stubGateway{})
	w := doRequest(t, r, http.MethodGet, "/api/extractions", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without a store, got %d", w.Code)
	}
}

func TestHealthz_WithoutStore(t *testing.T) {
	r := newTestRouter(stubGateway{})
	w := doRequest(t, r, http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
