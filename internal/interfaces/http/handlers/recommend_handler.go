package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	apprec "github.com/CodingBot000/miracle3day-sub008/internal/application/recommendation"
	"github.com/CodingBot000/miracle3day-sub008/internal/domain/climate"
	"github.com/CodingBot000/miracle3day-sub008/internal/domain/survey"
	"github.com/CodingBot000/miracle3day-sub008/internal/infrastructure/monitoring/logging"
	"github.com/CodingBot000/miracle3day-sub008/internal/infrastructure/monitoring/prometheus"
	"github.com/CodingBot000/miracle3day-sub008/pkg/errors"
)

// recommendRequest is the estimate request body: the seven survey fields
// plus an optional climate override used instead of the server default.
type recommendRequest struct {
	survey.RawInput
	Climate *climate.Context `json:"climate,omitempty"`
}

// livenessResponse is the fixed body returned by GET on the estimate path.
type livenessResponse struct {
	Status   string `json:"status"`
	Endpoint string `json:"endpoint"`
	Method   string `json:"method"`
}

// RecommendHandler serves the recommendation estimate endpoint.
type RecommendHandler struct {
	service      *apprec.Service
	metrics      *prometheus.AppMetrics
	logger       logging.Logger
	exposeDetail bool
}

// NewRecommendHandler constructs a RecommendHandler.  exposeDetail controls
// whether internal error detail is included in 500 bodies; it must be false
// in release mode.
func NewRecommendHandler(service *apprec.Service, metrics *prometheus.AppMetrics, logger logging.Logger, exposeDetail bool) *RecommendHandler {
	return &RecommendHandler{
		service:      service,
		metrics:      metrics,
		logger:       logger,
		exposeDetail: exposeDetail,
	}
}

// Estimate handles POST /api/recommend_estimate.
func (h *RecommendHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.ObserveRecommendation("validation_error", 0, 0)
		writeError(w, http.StatusBadRequest, "Invalid input data", "")
		return
	}

	out, err := h.service.Recommend(r.Context(), &req.RawInput, req.Climate)
	if err != nil {
		if errors.IsValidation(err) {
			h.metrics.ObserveRecommendation("validation_error", 0, 0)
		} else {
			h.metrics.ObserveRecommendation("internal_error", 0, 0)
			h.logger.Error("recommendation failed", logging.Err(err))
		}
		writeAppError(w, err, h.exposeDetail)
		return
	}

	h.metrics.ObserveRecommendation("ok", len(out.Recommendations), time.Since(started))
	writeJSON(w, http.StatusOK, out)
}

// Liveness handles GET /api/recommend_estimate, a probe confirming the
// endpoint exists and which method it accepts.
func (h *RecommendHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, livenessResponse{
		Status:   "ok",
		Endpoint: "/api/recommend_estimate",
		Method:   http.MethodPost,
	})
}
