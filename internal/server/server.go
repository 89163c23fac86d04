package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rgehrsitz/kpgo/internal/calculation"
	"github.com/rgehrsitz/kpgo/internal/compare"
	"github.com/rgehrsitz/kpgo/internal/domain"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// DefaultMaxBodySize bounds request bodies; requests are small input documents
const DefaultMaxBodySize = 1 << 20

// Handler serves the calculation contracts over HTTP
type Handler struct {
	engine  *calculation.CalculationEngine
	compare *compare.CompareEngine
	logger  *zap.Logger
	version string
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// NationalResponse carries a national pension estimate. Eligible is false,
// with Error set, when the contribution history is too short.
type NationalResponse struct {
	CalculationID string                   `json:"calculation_id"`
	Eligible      bool                     `json:"eligible"`
	Error         string                   `json:"error,omitempty"`
	Estimate      *domain.NationalEstimate `json:"estimate"`
}

// BasicPensionResponse carries a means-test result
type BasicPensionResponse struct {
	CalculationID string                     `json:"calculation_id"`
	Result        *domain.BasicPensionResult `json:"result"`
}

// ShortfallResponse carries a savings gap result
type ShortfallResponse struct {
	CalculationID string                  `json:"calculation_id"`
	Result        *domain.ShortfallResult `json:"result"`
}

// CompareResponse carries a claim-timing comparison
type CompareResponse struct {
	CalculationID string                  `json:"calculation_id"`
	Eligible      bool                    `json:"eligible"`
	Error         string                  `json:"error,omitempty"`
	Comparison    *domain.ClaimComparison `json:"comparison,omitempty"`
}

// NewHandler constructs the HTTP handler. A nil logger discards logs.
func NewHandler(engine *calculation.CalculationEngine, logger *zap.Logger, version string) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if version == "" {
		version = "dev"
	}
	return &Handler{
		engine:  engine,
		compare: compare.NewCompareEngine(engine),
		logger:  logger,
		version: version,
	}
}

// ServeHTTP routes one request and logs its outcome
func (h *Handler) ServeHTTP(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	h.route(ctx)
	h.logger.Info("request",
		zap.String("op", "server.request"),
		zap.String("method", string(ctx.Method())),
		zap.String("path", string(ctx.Path())),
		zap.Int("status", ctx.Response.StatusCode()),
		zap.Duration("duration", time.Since(start)),
	)
}

func (h *Handler) route(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	switch path {
	case "/healthz":
		if h.allow(ctx, fasthttp.MethodGet) {
			h.writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok", "version": h.version})
		}
	case "/v1/policy":
		if h.allow(ctx, fasthttp.MethodGet) {
			h.writeJSON(ctx, fasthttp.StatusOK, h.engine.Policy)
		}
	case "/v1/national":
		if h.allow(ctx, fasthttp.MethodPost) {
			h.handleNational(ctx)
		}
	case "/v1/basic-pension":
		if h.allow(ctx, fasthttp.MethodPost) {
			h.handleBasicPension(ctx)
		}
	case "/v1/shortfall":
		if h.allow(ctx, fasthttp.MethodPost) {
			h.handleShortfall(ctx)
		}
	case "/v1/compare":
		if h.allow(ctx, fasthttp.MethodPost) {
			h.handleCompare(ctx)
		}
	case "/v1/report":
		if h.allow(ctx, fasthttp.MethodPost) {
			h.handleReport(ctx)
		}
	default:
		h.respondError(ctx, fasthttp.StatusNotFound, fmt.Sprintf("no route for %s", path), "server.route")
	}
}

func (h *Handler) allow(ctx *fasthttp.RequestCtx, method string) bool {
	if string(ctx.Method()) == method {
		return true
	}
	ctx.Response.Header.Set("Allow", method)
	h.respondError(ctx, fasthttp.StatusMethodNotAllowed, fasthttp.StatusMessage(fasthttp.StatusMethodNotAllowed), "server.route")
	return false
}

func (h *Handler) handleNational(ctx *fasthttp.RequestCtx) {
	const op = "server.handleNational"
	var in domain.NationalInputs
	if !h.decode(ctx, &in, op) {
		return
	}

	est, err := h.engine.EstimateNational(in)
	resp := NationalResponse{CalculationID: uuid.NewString(), Estimate: est}
	switch {
	case errors.Is(err, domain.ErrInsufficientHistory):
		resp.Error = err.Error()
	case err != nil:
		h.respondError(ctx, statusFor(err), err.Error(), op)
		return
	default:
		resp.Eligible = true
	}
	h.writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (h *Handler) handleBasicPension(ctx *fasthttp.RequestCtx) {
	const op = "server.handleBasicPension"
	var in domain.BasicPensionInputs
	if !h.decode(ctx, &in, op) {
		return
	}

	result, err := h.engine.EvaluateBasicPension(in)
	if err != nil {
		h.respondError(ctx, statusFor(err), err.Error(), op)
		return
	}
	h.writeJSON(ctx, fasthttp.StatusOK, BasicPensionResponse{CalculationID: uuid.NewString(), Result: result})
}

func (h *Handler) handleShortfall(ctx *fasthttp.RequestCtx) {
	const op = "server.handleShortfall"
	var in domain.ShortfallInputs
	if !h.decode(ctx, &in, op) {
		return
	}

	result, err := h.engine.ComputeShortfall(in)
	if err != nil {
		h.respondError(ctx, statusFor(err), err.Error(), op)
		return
	}
	h.writeJSON(ctx, fasthttp.StatusOK, ShortfallResponse{CalculationID: uuid.NewString(), Result: result})
}

func (h *Handler) handleCompare(ctx *fasthttp.RequestCtx) {
	const op = "server.handleCompare"
	var in domain.NationalInputs
	if !h.decode(ctx, &in, op) {
		return
	}

	cmp, err := h.compare.CompareClaimTiming(context.Background(), in)
	resp := CompareResponse{CalculationID: uuid.NewString(), Comparison: cmp}
	switch {
	case errors.Is(err, domain.ErrInsufficientHistory):
		resp.Error = err.Error()
	case err != nil:
		h.respondError(ctx, statusFor(err), err.Error(), op)
		return
	default:
		resp.Eligible = true
	}
	h.writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (h *Handler) handleReport(ctx *fasthttp.RequestCtx) {
	const op = "server.handleReport"
	var req domain.Request
	if !h.decode(ctx, &req, op) {
		return
	}

	report, err := h.engine.Run(context.Background(), &req)
	if err != nil {
		h.respondError(ctx, statusFor(err), err.Error(), op)
		return
	}
	if err := h.compare.AttachClaimTiming(context.Background(), report, req.National); err != nil {
		h.logger.Warn("claim timing comparison skipped", zap.String("op", op), zap.Error(err))
	}
	h.writeJSON(ctx, fasthttp.StatusOK, report)
}

func (h *Handler) decode(ctx *fasthttp.RequestCtx, v interface{}, op string) bool {
	body := ctx.PostBody()
	if len(body) == 0 {
		h.respondError(ctx, fasthttp.StatusBadRequest, "request body is required", op)
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		h.respondError(ctx, fasthttp.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err), op)
		return false
	}
	return true
}

// statusFor maps calculation errors onto HTTP status codes
func statusFor(err error) int {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidAgeOrder),
		errors.Is(err, domain.ErrMutuallyExclusiveClaim):
		return fasthttp.StatusBadRequest
	default:
		return fasthttp.StatusInternalServerError
	}
}

func (h *Handler) respondError(ctx *fasthttp.RequestCtx, status int, msg string, op string) {
	h.logger.Warn("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)
	h.writeJSON(ctx, status, ErrorResponse{Status: status, Message: msg})
}

func (h *Handler) writeJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
		ctx.Error(fasthttp.StatusMessage(fasthttp.StatusInternalServerError), fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(data)
}
