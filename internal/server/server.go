// Package server exposes the simulation and breakeven engines over HTTP. All
// endpoints accept and return JSON; the export endpoint additionally encodes a
// scenario back to YAML for download.
package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/barreeeiroo/MortgageLab-IE-sub008/internal/breakeven"
	"github.com/barreeeiroo/MortgageLab-IE-sub008/internal/config"
	"github.com/barreeeiroo/MortgageLab-IE-sub008/internal/schedule"
	"github.com/barreeeiroo/MortgageLab-IE-sub008/pkg/constants"
)

type handler struct {
	logger        *zap.Logger
	engine        *schedule.Engine
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the simulation API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}
	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		engine:        schedule.NewEngine(logger),
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
	}

	router := mux.NewRouter()
	router.HandleFunc("/api/simulate", h.handleSimulate).Methods(http.MethodPost)
	router.HandleFunc("/api/breakeven/rentvsbuy", h.handleRentVsBuy).Methods(http.MethodPost)
	router.HandleFunc("/api/breakeven/remortgage", h.handleRemortgage).Methods(http.MethodPost)
	router.HandleFunc("/api/breakeven/cashback", h.handleCashback).Methods(http.MethodPost)
	router.HandleFunc("/api/export", h.handleExport).Methods(http.MethodPost)
	router.HandleFunc("/api/version", h.handleVersion).Methods(http.MethodGet)

	return router
}

// simulateResponse is the body returned by /api/simulate.
type simulateResponse struct {
	Months              []schedule.Month              `json:"months"`
	AppliedOverpayments []schedule.AppliedOverpayment `json:"appliedOverpayments,omitempty"`
	Warnings            []schedule.Warning            `json:"warnings,omitempty"`
	Completeness        schedule.CompletenessReport   `json:"completeness"`
	ConfigWarnings      []string                      `json:"configWarnings,omitempty"`
	Duration            string                        `json:"duration"`
}

func (h *handler) handleSimulate(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	start := time.Now()

	var cfg config.Configuration
	if !h.decodeBody(w, r, &cfg, requestID, "server.handleSimulate") {
		return
	}

	if err := cfg.Validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), requestID, "server.handleSimulate")
		return
	}
	configWarnings := cfg.ValidateConfiguration()

	input, err := cfg.BuildSimulation()
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), requestID, "server.handleSimulate")
		return
	}

	result, err := h.engine.Run(*input)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), requestID, "server.handleSimulate")
		return
	}
	report := schedule.CheckCompleteness(result.Months, input.MortgageAmount, input.TermMonths)

	elapsed := time.Since(start)
	h.logger.Info("simulation computed",
		zap.String("op", "server.handleSimulate"),
		zap.String("requestId", requestID),
		zap.Int("months", len(result.Months)),
		zap.Bool("complete", report.IsComplete),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, simulateResponse{
		Months:              result.Months,
		AppliedOverpayments: result.AppliedOverpayments,
		Warnings:            result.Warnings,
		Completeness:        report,
		ConfigWarnings:      configWarnings,
		Duration:            elapsed.String(),
	})
}

func (h *handler) handleRentVsBuy(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()

	var cfg config.RentVsBuyConfig
	if !h.decodeBody(w, r, &cfg, requestID, "server.handleRentVsBuy") {
		return
	}

	result, err := breakeven.CompareRentVsBuy(h.logger, cfg.BuildRentVsBuy())
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), requestID, "server.handleRentVsBuy")
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *handler) handleRemortgage(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()

	var cfg config.RemortgageConfig
	if !h.decodeBody(w, r, &cfg, requestID, "server.handleRemortgage") {
		return
	}

	result, err := breakeven.CompareRemortgage(h.logger, cfg.BuildRemortgage())
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), requestID, "server.handleRemortgage")
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *handler) handleCashback(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()

	var cfg config.CashbackConfig
	if !h.decodeBody(w, r, &cfg, requestID, "server.handleCashback") {
		return
	}

	result, err := breakeven.CompareCashback(h.logger, cfg.BuildCashback())
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), requestID, "server.handleCashback")
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// handleExport converts a JSON scenario into YAML for download.
func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()

	var cfg config.Configuration
	if !h.decodeBody(w, r, &cfg, requestID, "server.handleExport") {
		return
	}

	yamlBytes, err := yaml.Marshal(&cfg)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), requestID, "server.handleExport")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// decodeBody reads a JSON request body into dst, enforcing the configured size
// cap. It writes the error response itself and reports success.
func (h *handler) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}, requestID, op string) bool {
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		status := http.StatusBadRequest
		msg := fmt.Sprintf("failed to decode request body: %v", err)
		if strings.Contains(err.Error(), "request body too large") {
			status = http.StatusRequestEntityTooLarge
			msg = fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize)
		}
		h.respondError(w, status, msg, requestID, op)
		return false
	}
	return true
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg, requestID, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.String("requestId", requestID),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
