// Package api provides the RESTful HTTP API server for prompt-styler.
//
// It is the integration point for UI clients: category/style listings for
// populating selectors, fuzzy search, host parameter schemas, and the two
// apply operations. All responses use a standardized JSON envelope; errors
// flow through the shared HTTPErrorHandler. The server only ever reads the
// template store, so concurrent requests need no locking.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/dpshade/prompt-styler/internal/errors"
	"github.com/dpshade/prompt-styler/internal/models"
	"github.com/dpshade/prompt-styler/internal/service"
	"github.com/dpshade/prompt-styler/internal/styler"
	"github.com/dpshade/prompt-styler/internal/validation"
)

// APIServer serves the styler HTTP API
type APIServer struct {
	service      *service.Service
	single       *styler.Single
	multis       map[int]*styler.Multi
	errorHandler *errors.HTTPErrorHandler
	port         int
	logPrompts   bool
	server       *http.Server
}

// NewAPIServer creates a new API server instance
func NewAPIServer(svc *service.Service, port int) *APIServer {
	multis := make(map[int]*styler.Multi, len(styler.SlotCounts))
	for _, n := range styler.SlotCounts {
		multis[n] = styler.NewMulti(svc.Index(), n)
	}

	return &APIServer{
		service:      svc,
		single:       styler.NewSingle(svc.Index()),
		multis:       multis,
		errorHandler: errors.NewHTTPErrorHandler(true),
		port:         port,
		logPrompts:   true,
	}
}

// SetLogPrompts sets the default for requests that omit log_prompt
func (s *APIServer) SetLogPrompts(enabled bool) {
	s.logPrompts = enabled
}

// Start begins serving HTTP requests with middleware
func (s *APIServer) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/categories", s.withMiddleware(s.handleCategories))
	mux.HandleFunc("/api/v1/styles", s.withMiddleware(s.handleStyles))
	mux.HandleFunc("/api/v1/search", s.withMiddleware(s.handleSearch))
	mux.HandleFunc("/api/v1/schema", s.withMiddleware(s.handleSchema))
	mux.HandleFunc("/api/v1/apply", s.withMiddleware(s.handleApply))
	mux.HandleFunc("/api/v1/apply-multi", s.withMiddleware(s.handleApplyMulti))
	mux.HandleFunc("/api/v1/health", s.withMiddleware(s.handleHealth))

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("API server starting on http://localhost:%d", s.port)
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// withMiddleware applies middleware to HTTP handlers
func (s *APIServer) withMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	return s.loggingMiddleware(
		s.corsMiddleware(
			s.contentTypeMiddleware(
				s.errorMiddleware(handler),
			),
		),
	)
}

// loggingMiddleware logs HTTP requests
func (s *APIServer) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		log.Printf("[%s] %s %s - %v", r.Method, r.URL.Path, r.RemoteAddr, time.Since(start))
	}
}

// corsMiddleware handles CORS headers so browser-based node UIs can query us
func (s *APIServer) corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// contentTypeMiddleware sets default content type
func (s *APIServer) contentTypeMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next(w, r)
	}
}

// errorMiddleware handles panics
func (s *APIServer) errorMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("Panic in handler: %v", err)
				s.errorHandler.WriteHTTPError(w, errors.InternalError("Internal server error"))
			}
		}()
		next(w, r)
	}
}

// APIResponse represents a standardized API response
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Message   string      `json:"message,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// writeResponse writes a standardized JSON response
func (s *APIServer) writeResponse(w http.ResponseWriter, data interface{}, message string, statusCode int) {
	response := APIResponse{
		Success:   statusCode < 400,
		Data:      data,
		Message:   message,
		Timestamp: time.Now(),
	}

	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// writeError writes an error response using the error handler
func (s *APIServer) writeError(w http.ResponseWriter, err error) {
	s.errorHandler.WriteHTTPError(w, err)
}

func (s *APIServer) requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		s.writeError(w, errors.NewAppError(errors.ErrCodeInvalidCommand, "Method not allowed"))
		return false
	}
	return true
}

// handleCategories handles GET /api/v1/categories: the category -> style
// names mapping UI clients use to populate their selectors
func (s *APIServer) handleCategories(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, "GET") {
		return
	}
	s.writeResponse(w, s.service.CategoryMap(), "", http.StatusOK)
}

// handleStyles handles GET /api/v1/styles: flat keys by default, bare names
// with ?names=true (the permissive single-select list)
func (s *APIServer) handleStyles(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, "GET") {
		return
	}

	if r.URL.Query().Get("names") == "true" {
		s.writeResponse(w, s.service.StyleNames(), "", http.StatusOK)
		return
	}
	s.writeResponse(w, s.service.FlatKeys(), "", http.StatusOK)
}

// handleSearch handles GET /api/v1/search?q=
func (s *APIServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, "GET") {
		return
	}

	results := s.service.SearchStyles(r.URL.Query().Get("q"))

	type styleResult struct {
		Key            string `json:"key"`
		Category       string `json:"category"`
		Name           string `json:"name"`
		Prompt         string `json:"prompt"`
		NegativePrompt string `json:"negative_prompt,omitempty"`
	}

	out := make([]styleResult, len(results))
	for i, tmpl := range results {
		out[i] = styleResult{
			Key:            tmpl.FlatKey(),
			Category:       tmpl.Category,
			Name:           tmpl.Name,
			Prompt:         tmpl.Prompt,
			NegativePrompt: tmpl.NegativePrompt,
		}
	}

	s.writeResponse(w, out, "", http.StatusOK)
}

// handleSchema handles GET /api/v1/schema: the host parameter schema for the
// single applicator, or for a multi applicator with ?slots=N
func (s *APIServer) handleSchema(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, "GET") {
		return
	}

	slotsParam := r.URL.Query().Get("slots")
	if slotsParam == "" {
		s.writeResponse(w, styler.SingleSchema(s.service.Categories(), s.service.StyleNames()), "", http.StatusOK)
		return
	}

	n, err := strconv.Atoi(slotsParam)
	if err != nil || !styler.ValidSlotCount(n) {
		s.writeError(w, errors.ValidationError(fmt.Sprintf("slots must be one of %v", styler.SlotCounts)))
		return
	}
	s.writeResponse(w, styler.MultiSchema(n, s.service.FlatKeys()), "", http.StatusOK)
}

// applyRequest is the POST /api/v1/apply body. Weight is a pointer so an
// omitted field defaults to 1.0 rather than 0.
type applyRequest struct {
	TextPositive string   `json:"text_positive"`
	TextNegative string   `json:"text_negative"`
	Category     string   `json:"category"`
	Style        string   `json:"style"`
	Weight       *float64 `json:"weight"`
	LogPrompt    *bool    `json:"log_prompt"`
}

// handleApply handles POST /api/v1/apply
func (s *APIServer) handleApply(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, "POST") {
		return
	}

	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.ValidationError("Invalid JSON body").WithDetails(err.Error()))
		return
	}

	weight := 1.0
	if req.Weight != nil {
		weight = *req.Weight
	}

	if result := validation.ValidateApply(req.Category, req.Style, weight); !result.Valid {
		s.writeError(w, result.ToAppError())
		return
	}

	pos, neg := s.single.Apply(req.TextPositive, req.TextNegative, req.Category, req.Style, weight, boolOr(req.LogPrompt, s.logPrompts))
	s.writeResponse(w, models.PromptPair{Positive: pos, Negative: neg}, "", http.StatusOK)
}

// slotRequest is one slot of the POST /api/v1/apply-multi body. Pointers let
// omitted weight/toggles take the host defaults (1.0, on, on).
type slotRequest struct {
	Style      string   `json:"style"`
	Weight     *float64 `json:"weight"`
	PositiveOn *bool    `json:"pos_on"`
	NegativeOn *bool    `json:"neg_on"`
}

// multiApplyRequest is the POST /api/v1/apply-multi body
type multiApplyRequest struct {
	TextPositive       string        `json:"text_positive"`
	TextPositiveWeight *float64      `json:"text_positive_weight"`
	TextNegative       string        `json:"text_negative"`
	TextNegativeWeight *float64      `json:"text_negative_weight"`
	SlotCount          int           `json:"slot_count"`
	Slots              []slotRequest `json:"slots"`
	LogPrompt          *bool         `json:"log_prompt"`
}

func floatOr(p *float64, def float64) float64 {
	if p != nil {
		return *p
	}
	return def
}

func boolOr(p *bool, def bool) bool {
	if p != nil {
		return *p
	}
	return def
}

// handleApplyMulti handles POST /api/v1/apply-multi
func (s *APIServer) handleApplyMulti(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, "POST") {
		return
	}

	var req multiApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.ValidationError("Invalid JSON body").WithDetails(err.Error()))
		return
	}

	if req.SlotCount == 0 {
		req.SlotCount = styler.DefaultSlotCount
	}

	posWeight := floatOr(req.TextPositiveWeight, 1.0)
	negWeight := floatOr(req.TextNegativeWeight, 1.0)

	slots := make([]models.StyleSlot, len(req.Slots))
	for i, sr := range req.Slots {
		slots[i] = models.StyleSlot{
			Key:        sr.Style,
			Weight:     floatOr(sr.Weight, 1.0),
			PositiveOn: boolOr(sr.PositiveOn, true),
			NegativeOn: boolOr(sr.NegativeOn, true),
		}
	}

	if result := validation.ValidateMultiApply(req.SlotCount, posWeight, negWeight, slots); !result.Valid {
		s.writeError(w, result.ToAppError())
		return
	}

	multi, ok := s.multis[req.SlotCount]
	if !ok {
		s.writeError(w, errors.ValidationError(fmt.Sprintf("slot_count must be one of %v", styler.SlotCounts)))
		return
	}

	pos, neg := multi.Apply(req.TextPositive, posWeight, req.TextNegative, negWeight, slots, boolOr(req.LogPrompt, s.logPrompts))
	s.writeResponse(w, models.PromptPair{Positive: pos, Negative: neg}, "", http.StatusOK)
}

// handleHealth handles GET /api/v1/health
func (s *APIServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, "GET") {
		return
	}

	s.writeResponse(w, map[string]interface{}{
		"status":     "ok",
		"categories": len(s.service.Categories()),
		"styles":     s.service.Index().Len(),
	}, "", http.StatusOK)
}
