// Package server exposes the quote engine over HTTP as a JSON API.
package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dealforge/dealdesk/internal/cache"
	"github.com/dealforge/dealdesk/internal/config"
	"github.com/dealforge/dealdesk/internal/metrics"
	"github.com/dealforge/dealdesk/internal/quote"
	"github.com/dealforge/dealdesk/pkg/constants"
	"github.com/dealforge/dealdesk/pkg/finance"
	"github.com/dealforge/dealdesk/pkg/lease"
	"github.com/dealforge/dealdesk/pkg/mathutil"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger   *zap.Logger
	maxBody  int64
	version  string
	store    cache.Repository
	cacheTTL time.Duration
}

// NewHandler constructs the HTTP handler serving the quote API. store may
// be nil to disable caching; a non-positive ttl selects the default.
func NewHandler(logger *zap.Logger, maxBody int64, version string, store cache.Repository, ttl time.Duration) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxBody <= 0 {
		maxBody = constants.DefaultMaxRequestBytes
	}
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:   logger,
		maxBody:  maxBody,
		version:  trimmedVersion,
		store:    store,
		cacheTTL: ttl,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/quote", h.handleQuote)
	mux.HandleFunc("/api/version", h.handleVersion)
	mux.HandleFunc("/healthz", h.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

type quoteResponse struct {
	Vehicle   vehiclePayload    `json:"vehicle"`
	Frequency string            `json:"frequency"`
	Financing *financingPayload `json:"financing,omitempty"`
	Lease     *leasePayload     `json:"lease,omitempty"`
	BestLease *bestLeasePayload `json:"bestLease,omitempty"`
	Grid      []gridRowPayload  `json:"grid,omitempty"`
	Warnings  []string          `json:"warnings,omitempty"`
	Duration  string            `json:"duration"`
}

type vehiclePayload struct {
	Brand     string `json:"brand"`
	Model     string `json:"model"`
	Trim      string `json:"trim,omitempty"`
	ModelYear int    `json:"modelYear,omitempty"`
}

type financingOptionPayload struct {
	Rate      float64 `json:"rate"`
	Principal float64 `json:"principal"`
	TaxBase   float64 `json:"taxBase"`
	GST       float64 `json:"gst"`
	QST       float64 `json:"qst"`
	Taxes     float64 `json:"taxes"`
	Monthly   float64 `json:"monthly"`
	Biweekly  float64 `json:"biweekly"`
	Weekly    float64 `json:"weekly"`
	TotalCost float64 `json:"totalCost"`
}

type financingPayload struct {
	Term       int                     `json:"term"`
	Option1    *financingOptionPayload `json:"option1,omitempty"`
	Option2    *financingOptionPayload `json:"option2,omitempty"`
	BestOption int                     `json:"bestOption,omitempty"`
	Savings    float64                 `json:"savings"`
}

type scenarioPayload struct {
	Plan            string  `json:"plan"`
	Rate            float64 `json:"rate"`
	LeaseCash       float64 `json:"leaseCash"`
	CapCost         float64 `json:"capCost"`
	NetCapCost      float64 `json:"netCapCost"`
	ResidualValue   float64 `json:"residualValue"`
	MoneyFactor     float64 `json:"moneyFactor"`
	Depreciation    float64 `json:"depreciation"`
	FinanceCharge   float64 `json:"financeCharge"`
	PreTaxMonthly   float64 `json:"preTaxMonthly"`
	GST             float64 `json:"gst"`
	QST             float64 `json:"qst"`
	TradeCredit     float64 `json:"tradeCredit"`
	TradeCreditLost float64 `json:"tradeCreditLost"`
	Monthly         float64 `json:"monthly"`
	Biweekly        float64 `json:"biweekly"`
	Weekly          float64 `json:"weekly"`
	TotalCost       float64 `json:"totalCost"`
	CostOfBorrowing float64 `json:"costOfBorrowing"`
}

type leasePayload struct {
	Term          int              `json:"term"`
	KmPerYear     int              `json:"kmPerYear"`
	ResidualPct   float64          `json:"residualPct"`
	KmAdjustment  float64          `json:"kmAdjustment"`
	ResidualValue float64          `json:"residualValue"`
	Standard      *scenarioPayload `json:"standard,omitempty"`
	Alternative   *scenarioPayload `json:"alternative,omitempty"`
	BestPlan      string           `json:"bestPlan,omitempty"`
	Savings       float64          `json:"savings"`
}

type gridRowPayload struct {
	Term        int     `json:"term"`
	KmPerYear   int     `json:"kmPerYear"`
	Plan        string  `json:"plan"`
	Rate        float64 `json:"rate"`
	ResidualPct float64 `json:"residualPct"`
	Monthly     float64 `json:"monthly"`
	TotalCost   float64 `json:"totalCost"`
}

type bestLeasePayload struct {
	gridRowPayload
	Scenario scenarioPayload `json:"scenario"`
}

func (h *handler) handleQuote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if h.maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBody))
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to read request: %v", err))
		return
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		metrics.QuoteRequests.WithLabelValues("bad_request").Inc()
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode deal sheet: %v", err))
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	configPayload := payload
	if rawConfig, ok := payload["config"]; ok {
		cfgMap, ok := rawConfig.(map[string]interface{})
		if !ok {
			metrics.QuoteRequests.WithLabelValues("bad_request").Inc()
			h.respondError(w, http.StatusBadRequest, "invalid config payload: expected object")
			return
		}
		configPayload = cfgMap
	}

	configBytes, err := yaml.Marshal(configPayload)
	if err != nil {
		metrics.QuoteRequests.WithLabelValues("bad_request").Inc()
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to encode deal sheet: %v", err))
		return
	}

	if cached, ok := h.cachedQuote(r.Context(), configBytes); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(cached))
		metrics.QuoteRequests.WithLabelValues("cached").Inc()
		return
	}

	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		metrics.QuoteRequests.WithLabelValues("bad_request").Inc()
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := quote.Compute(h.logger, *cfg)
	if err != nil {
		metrics.QuoteRequests.WithLabelValues("bad_request").Inc()
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to compute quote: %v", err))
		return
	}

	elapsed := time.Since(start)
	metrics.QuoteDuration.Observe(elapsed.Seconds())
	metrics.QuoteRequests.WithLabelValues("success").Inc()

	response := buildQuoteResponse(result, elapsed)

	h.logger.Info("quote computed",
		zap.String("op", "server.handleQuote"),
		zap.String("brand", response.Vehicle.Brand),
		zap.String("model", response.Vehicle.Model),
		zap.Int("gridRows", len(response.Grid)),
		zap.Duration("duration", elapsed),
	)

	h.storeQuote(r.Context(), configBytes, response)
	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// cacheKey digests the canonicalized config so byte-equivalent deal
// sheets share one entry.
func cacheKey(configBytes []byte) string {
	sum := sha256.Sum256(configBytes)
	return "dealdesk:quote:" + hex.EncodeToString(sum[:])
}

func (h *handler) cachedQuote(ctx context.Context, configBytes []byte) (string, bool) {
	if h.store == nil {
		return "", false
	}
	value, ok := h.store.Get(ctx, cacheKey(configBytes))
	if ok {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
	} else {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	}
	return value, ok
}

func (h *handler) storeQuote(ctx context.Context, configBytes []byte, response quoteResponse) {
	if h.store == nil {
		return
	}
	encoded, err := json.Marshal(response)
	if err != nil {
		return
	}
	if err := h.store.Set(ctx, cacheKey(configBytes), string(encoded), h.cacheTTL); err != nil {
		h.logger.Warn("failed to cache quote",
			zap.String("op", "server.storeQuote"),
			zap.Error(err),
		)
	}
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string) {
	h.logger.Warn(msg,
		zap.String("op", "server.handleQuote"),
		zap.Int("status", status),
	)
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Warn("failed to encode response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}

// buildQuoteResponse maps a quote result to the wire shape. Monetary
// values are rounded to cents here, at the display boundary; the engine
// result keeps full precision.
func buildQuoteResponse(result *quote.Result, elapsed time.Duration) quoteResponse {
	response := quoteResponse{
		Vehicle: vehiclePayload{
			Brand:     result.Vehicle.Brand,
			Model:     result.Vehicle.Model,
			Trim:      result.Vehicle.Trim,
			ModelYear: result.Vehicle.ModelYear,
		},
		Frequency: string(result.Frequency),
		Warnings:  result.Warnings,
		Duration:  elapsed.String(),
	}

	if result.Financing != nil {
		response.Financing = &financingPayload{
			Term:       result.Financing.Term,
			Option1:    buildOptionPayload(result.Financing.Option1),
			Option2:    buildOptionPayload(result.Financing.Option2),
			BestOption: result.Financing.BestOption,
			Savings:    mathutil.Round(result.Financing.Savings),
		}
	}

	if result.Lease != nil {
		response.Lease = &leasePayload{
			Term:          result.Lease.Term,
			KmPerYear:     result.Lease.KmPerYear,
			ResidualPct:   result.Lease.ResidualPct,
			KmAdjustment:  result.Lease.KmAdjustment,
			ResidualValue: mathutil.Round(result.Lease.ResidualValue),
			Standard:      buildScenarioPayload(result.Lease.Standard),
			Alternative:   buildScenarioPayload(result.Lease.Alternative),
			BestPlan:      string(result.Lease.BestPlan),
			Savings:       mathutil.Round(result.Lease.Savings),
		}
	}

	if result.BestLease != nil {
		response.BestLease = &bestLeasePayload{
			gridRowPayload: buildGridRowPayload(result.BestLease.GridRow),
			Scenario:       *buildScenarioPayload(&result.BestLease.Scenario),
		}
	}
	for _, row := range result.Grid {
		response.Grid = append(response.Grid, buildGridRowPayload(row))
	}

	return response
}

func buildOptionPayload(option *finance.Option) *financingOptionPayload {
	if option == nil {
		return nil
	}
	return &financingOptionPayload{
		Rate:      option.Rate,
		Principal: mathutil.Round(option.Principal),
		TaxBase:   mathutil.Round(option.Tax.Base),
		GST:       mathutil.Round(option.Tax.GST),
		QST:       mathutil.Round(option.Tax.QST),
		Taxes:     mathutil.Round(option.Tax.Total),
		Monthly:   mathutil.Round(option.Monthly),
		Biweekly:  mathutil.Round(option.Biweekly),
		Weekly:    mathutil.Round(option.Weekly),
		TotalCost: mathutil.Round(option.TotalCost),
	}
}

func buildScenarioPayload(s *lease.Scenario) *scenarioPayload {
	if s == nil {
		return nil
	}
	return &scenarioPayload{
		Plan:            string(s.Plan),
		Rate:            s.Rate,
		LeaseCash:       s.LeaseCash,
		CapCost:         mathutil.Round(s.CapCost),
		NetCapCost:      mathutil.Round(s.DisplayNetCapCost()),
		ResidualValue:   mathutil.Round(s.ResidualValue),
		MoneyFactor:     s.MoneyFactor,
		Depreciation:    mathutil.Round(s.Depreciation),
		FinanceCharge:   mathutil.Round(s.FinanceCharge),
		PreTaxMonthly:   mathutil.Round(s.PreTaxMonthly),
		GST:             mathutil.Round(s.GST),
		QST:             mathutil.Round(s.QST),
		TradeCredit:     mathutil.Round(s.TradeCredit),
		TradeCreditLost: mathutil.Round(s.TradeCreditLost),
		Monthly:         mathutil.Round(s.Monthly),
		Biweekly:        mathutil.Round(s.Biweekly),
		Weekly:          mathutil.Round(s.Weekly),
		TotalCost:       mathutil.Round(s.TotalCost),
		CostOfBorrowing: mathutil.Round(s.CostOfBorrowing),
	}
}

func buildGridRowPayload(row lease.GridRow) gridRowPayload {
	return gridRowPayload{
		Term:        row.Term,
		KmPerYear:   row.KmPerYear,
		Plan:        string(row.Plan),
		Rate:        row.Rate,
		ResidualPct: row.ResidualPct,
		Monthly:     mathutil.Round(row.Monthly),
		TotalCost:   mathutil.Round(row.TotalCost),
	}
}
