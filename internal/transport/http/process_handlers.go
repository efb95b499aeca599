package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/drawwire/drawwire-server/internal/auth"
	"github.com/drawwire/drawwire-server/internal/capture"
	"github.com/drawwire/drawwire-server/internal/predict"
	"github.com/drawwire/drawwire-server/internal/store"
)

// Predictor runs the recognizer on a saved image.
type Predictor interface {
	Predict(ctx context.Context, imagePath string) (map[string]any, error)
}

// ProcessHandlers serves the scene-capture pipeline: save the posted image,
// run the recognizer, record the outcome.
type ProcessHandlers struct {
	predictor  Predictor
	captures   store.CaptureStore
	auth       *auth.Service
	uploadsDir string
	log        *zerolog.Logger
}

// NewProcessHandlers creates a new process handlers instance. captures and
// authService may be nil; recording and identity labeling are best-effort.
func NewProcessHandlers(predictor Predictor, captures store.CaptureStore, authService *auth.Service, uploadsDir string, logger *zerolog.Logger) *ProcessHandlers {
	return &ProcessHandlers{
		predictor:  predictor,
		captures:   captures,
		auth:       authService,
		uploadsDir: uploadsDir,
		log:        logger,
	}
}

// ProcessRequest represents the process request body.
type ProcessRequest struct {
	Image string `json:"image"`
}

// ProcessImage handles POST /process. Failures are surfaced to the single
// requesting client only and never broadcast.
func (h *ProcessHandlers) ProcessImage(c *gin.Context) {
	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Image == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No image provided"})
		return
	}

	filename, err := capture.SaveDataURL(h.uploadsDir, req.Image)
	if err != nil {
		if errors.Is(err, capture.ErrNotDataURL) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid image data"})
			return
		}
		h.log.Error().Err(err).Msg("failed to save capture")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save image"})
		return
	}

	userID := optionalUserID(c, h.auth)

	result, err := h.predictor.Predict(c.Request.Context(), filepath.Join(h.uploadsDir, filename))
	if err != nil {
		h.log.Warn().Err(err).Str("filename", filename).Msg("prediction failed")
		h.record(c, &store.Capture{
			Filename: filename,
			UserID:   userID,
			Status:   store.CaptureStatusError,
			Result:   err.Error(),
		})
		c.JSON(predictErrorStatus(err), ErrorResponse{Error: err.Error()})
		return
	}

	resultJSON, _ := json.Marshal(result)
	h.record(c, &store.Capture{
		Filename: filename,
		UserID:   userID,
		Status:   store.CaptureStatusOK,
		Result:   string(resultJSON),
	})

	response := gin.H{"filename": filename}
	for k, v := range result {
		response[k] = v
	}
	c.JSON(http.StatusOK, response)
}

// CaptureResponse represents one capture record in API responses.
type CaptureResponse struct {
	ID        int64     `json:"id"`
	Filename  string    `json:"filename"`
	Status    string    `json:"status"`
	Result    string    `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}

// ListCaptures returns the most recent capture records, newest first.
// GET /api/captures?limit=N
func (h *ProcessHandlers) ListCaptures(c *gin.Context) {
	if h.captures == nil {
		c.JSON(http.StatusOK, gin.H{"captures": []CaptureResponse{}})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		return
	}

	records, err := h.captures.ListCaptures(c.Request.Context(), limit)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list captures")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	captures := make([]CaptureResponse, 0, len(records))
	for _, rec := range records {
		captures = append(captures, CaptureResponse{
			ID:        rec.ID,
			Filename:  rec.Filename,
			Status:    rec.Status,
			Result:    rec.Result,
			CreatedAt: rec.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"captures": captures})
}

// record persists the capture outcome; failures are logged, never surfaced.
func (h *ProcessHandlers) record(c *gin.Context, rec *store.Capture) {
	if h.captures == nil {
		return
	}
	if err := h.captures.SaveCapture(c.Request.Context(), rec); err != nil {
		h.log.Warn().Err(err).Str("filename", rec.Filename).Msg("failed to record capture")
	}
}

func predictErrorStatus(err error) int {
	var perr *predict.Error
	if !errors.As(err, &perr) {
		return http.StatusInternalServerError
	}
	switch perr.Kind {
	case predict.KindTimeout:
		return http.StatusGatewayTimeout
	case predict.KindInterpreterMissing, predict.KindScriptMissing:
		return http.StatusServiceUnavailable
	case predict.KindBadOutput, predict.KindScriptError, predict.KindExecution:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
