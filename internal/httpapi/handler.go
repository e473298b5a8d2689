// Package httpapi exposes the routing engine and report generator over
// HTTP: /health, /authorize, /report, and /report/pdf.
package httpapi

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/fashionforward/latam-router/internal/cache"
	"github.com/fashionforward/latam-router/internal/domain"
	"github.com/fashionforward/latam-router/internal/report"
	"github.com/fashionforward/latam-router/internal/report/pdfexport"
	"github.com/fashionforward/latam-router/internal/routing"
	"github.com/fashionforward/latam-router/internal/seedhash"
	"github.com/fashionforward/latam-router/internal/testdata"
)

// Handler holds HTTP handler dependencies.
type Handler struct {
	logger        *zap.Logger
	reportCache   cache.Cache
	reportTTL     time.Duration
	reportWorkers int
	defaultCount  int
}

// New creates a Handler.
func New(logger *zap.Logger, reportCache cache.Cache, reportTTL time.Duration, reportWorkers, defaultCount int) *Handler {
	return &Handler{
		logger:        logger,
		reportCache:   reportCache,
		reportTTL:     reportTTL,
		reportWorkers: reportWorkers,
		defaultCount:  defaultCount,
	}
}

// ServiceVersion is reported by GET /health. It has no bearing on routing
// behavior; it exists so callers can confirm which build answered them.
const ServiceVersion = "1.0.0"

// RegisterRoutes wires every route onto router.
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.Use(h.requestIDMiddleware)
	router.Use(h.recoveryMiddleware)

	router.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	router.HandleFunc("/authorize", h.Authorize).Methods(http.MethodPost)
	router.HandleFunc("/report", h.Report).Methods(http.MethodPost)
	router.HandleFunc("/report/pdf", h.ReportPDF).Methods(http.MethodPost)

	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": ServiceVersion})
}

// authorizeRequest is the request body for POST /authorize.
type authorizeRequest struct {
	Amount          float64                `json:"amount"`
	Currency        domain.Currency        `json:"currency"`
	Country         domain.Country         `json:"country"`
	CardBIN         string                 `json:"card_bin"`
	CardLast4       string                 `json:"card_last4"`
	CustomerID      string                 `json:"customer_id"`
	RoutingStrategy domain.RoutingStrategy `json:"routing_strategy"`
}

// Authorize handles POST /authorize.
func (h *Handler) Authorize(w http.ResponseWriter, r *http.Request) {
	var req authorizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	txn := domain.Transaction{
		Amount:     req.Amount,
		Currency:   req.Currency,
		Country:    req.Country,
		CardBIN:    req.CardBIN,
		CardLast4:  req.CardLast4,
		CustomerID: req.CustomerID,
	}
	if msg := validateTransaction(txn); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	txn.ID = generateTransactionID(txn)

	if req.RoutingStrategy == "" {
		req.RoutingStrategy = domain.OptimizeForApprovals
	}
	if !req.RoutingStrategy.IsValid() {
		writeError(w, http.StatusBadRequest, "routing_strategy must be one of: "+
			"optimize_for_approvals, optimize_for_cost, balanced")
		return
	}

	result := routing.Route(txn, req.RoutingStrategy)
	writeJSON(w, http.StatusOK, result)
}

func generateTransactionID(txn domain.Transaction) string {
	amountBits := strconv.FormatUint(math.Float64bits(txn.Amount), 10)
	seed := seedhash.Seed("authorize_txn_id", txn.CardBIN, txn.CardLast4, txn.CustomerID, amountBits)
	return "txn_" + seedhash.HexTxnID(seed)
}

// reportRequest is the request body for POST /report and POST /report/pdf.
type reportRequest struct {
	TransactionCount int                    `json:"transaction_count"`
	RoutingStrategy  domain.RoutingStrategy `json:"routing_strategy"`
}

func (req *reportRequest) applyDefaults(defaultCount int) {
	if req.TransactionCount <= 0 {
		req.TransactionCount = defaultCount
	}
	if req.RoutingStrategy == "" {
		req.RoutingStrategy = domain.OptimizeForApprovals
	}
}

func (req reportRequest) cacheKey() string {
	seed := seedhash.SeedInt64("report_cache_key", int64(req.TransactionCount), string(req.RoutingStrategy))
	return fmt.Sprintf("report:%016x", seed)
}

// Report handles POST /report.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeReportRequest(w, r)
	if !ok {
		return
	}

	key := req.cacheKey()
	if cached, hit := h.reportCache.Get(r.Context(), key); hit {
		w.Header().Set("X-Cache", "HIT")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(cached)
		return
	}

	perfReport := h.generateReport(req)
	body, err := json.Marshal(perfReport)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode report")
		return
	}

	h.reportCache.Set(r.Context(), key, body, h.reportTTL)
	w.Header().Set("X-Cache", "MISS")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// ReportPDF handles POST /report/pdf. It always recomputes — the PDF
// exporter has no cache of its own, since it hands the same
// GenerateReport result straight to the renderer.
func (h *Handler) ReportPDF(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeReportRequest(w, r)
	if !ok {
		return
	}

	perfReport := h.generateReport(req)
	pdfBytes, err := pdfexport.Render(perfReport)
	if err != nil {
		h.logger.Error("pdf render failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to render pdf")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfBytes)
}

func (h *Handler) decodeReportRequest(w http.ResponseWriter, r *http.Request) (reportRequest, bool) {
	var req reportRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return reportRequest{}, false
		}
	}
	req.applyDefaults(h.defaultCount)

	if !req.RoutingStrategy.IsValid() {
		writeError(w, http.StatusBadRequest, "routing_strategy must be one of: "+
			"optimize_for_approvals, optimize_for_cost, balanced")
		return reportRequest{}, false
	}
	return req, true
}

func (h *Handler) generateReport(req reportRequest) domain.PerformanceReport {
	transactions := testdata.Generate(req.TransactionCount)
	return report.GenerateReport(transactions, req.RoutingStrategy, h.reportWorkers)
}

func validateTransaction(txn domain.Transaction) string {
	if txn.Amount <= 0 {
		return "amount must be greater than 0"
	}
	if !txn.Country.IsValid() {
		return "country must be one of: Brazil, Mexico, Colombia"
	}
	if !txn.Currency.IsValid() {
		return "currency must be one of: BRL, MXN, COP"
	}
	if expected, _ := domain.CurrencyFor(txn.Country); expected != txn.Currency {
		return "currency must match the conventional pair for country"
	}
	if len(txn.CardBIN) != 6 {
		return "card_bin must be 6 digits"
	}
	if len(txn.CardLast4) != 4 {
		return "card_last4 must be 4 digits"
	}
	if txn.CustomerID == "" {
		return "customer_id is required"
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

const requestIDHeader = "X-Request-Id"

func (h *Handler) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(requestIDHeader, uuid.NewString())
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.logger.Error("panic recovered in handler",
					zap.Any("panic", rec),
					zap.String("path", r.URL.Path),
				)
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
