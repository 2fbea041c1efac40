package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/flynnai/extraction/internal/db"
	"github.com/flynnai/extraction/internal/extraction"
	"github.com/flynnai/extraction/internal/llm"
	"github.com/flynnai/extraction/internal/models"
)

type Handler struct {
	// Store is nil when DATABASE_URL is not configured; the service then
	// runs stateless and extraction results are returned but not kept.
	Store     *db.Store
	Extractor *extraction.Service
	Validator *validator.Validate
	Logger    zerolog.Logger
}

type ExtractRequest struct {
	Transcription string                    `json:"transcription" validate:"required"`
	Industry      string                    `json:"industry"`
	CallerInfo    *models.CallerInfo        `json:"caller_info"`
	Context       *models.ExtractionContext `json:"context"`
}

func (h *Handler) Healthz(c *gin.Context) {
	if h.Store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := h.Store.Ping(ctx); err != nil {
			writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable", err.Error())
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) Extract(c *gin.Context) {
	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Malformed request body", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "transcription is required", err.Error())
		return
	}

	result, err := h.Extractor.Process(c.Request.Context(), extraction.Input{
		Transcription: req.Transcription,
		Industry:      req.Industry,
		CallerInfo:    req.CallerInfo,
		Context:       req.Context,
	})
	if err != nil {
		var invalidErr *extraction.InvalidInputError
		var malformedErr *extraction.MalformedResultError
		var gatewayErr *llm.ExtractionError
		switch {
		case errors.As(err, &invalidErr):
			writeError(c, http.StatusBadRequest, "INVALID_TRANSCRIPT", "Transcript cannot be processed", invalidErr.Reason)
		case errors.As(err, &malformedErr):
			writeError(c, http.StatusInternalServerError, "MALFORMED_RESULT", "Model output could not be normalized", malformedErr.Reason)
		case errors.As(err, &gatewayErr):
			writeError(c, http.StatusBadGateway, "EXTRACTION_FAILED", "AI extraction failed", gin.H{
				"retryable": gatewayErr.Retryable,
				"cause":     gatewayErr.Err.Error(),
			})
		default:
			writeError(c, http.StatusBadGateway, "EXTRACTION_FAILED", "AI extraction failed", err.Error())
		}
		return
	}

	if h.Store != nil {
		if err := h.Store.SaveResult(c.Request.Context(), result, req.Transcription, req.CallerInfo); err != nil {
			// the caller still gets the result; persistence is best-effort
			h.Logger.Error().Err(err).Str("extraction_id", result.ID).Msg("failed to persist extraction")
		}
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) ExtractionsList(c *gin.Context) {
	if h.Store == nil {
		writeError(c, http.StatusServiceUnavailable, "PERSISTENCE_DISABLED", "No database configured", nil)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	items, err := h.Store.ListExtractions(c.Request.Context(), limit)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list extractions", err.Error())
		return
	}
	if items == nil {
		items = []db.StoredExtraction{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) ExtractionDetails(c *gin.Context) {
	if h.Store == nil {
		writeError(c, http.StatusServiceUnavailable, "PERSISTENCE_DISABLED", "No database configured", nil)
		return
	}
	id := c.Param("id")
	item, err := h.Store.GetExtraction(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Extraction not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load extraction", err.Error())
		return
	}
	c.JSON(http.StatusOK, item)
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
