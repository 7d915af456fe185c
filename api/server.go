// Package api - Thin HTTP layer over the calculators
// The API only decodes, validates, delegates and serializes. It never
// computes.
package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"gold-calc/core/alloy"
	"gold-calc/core/amount"
	"gold-calc/core/interest"
	"gold-calc/core/numfmt"
	"gold-calc/core/types"
	"gold-calc/internal/errors"
	"gold-calc/internal/logging"
	"gold-calc/internal/session"
)

// CodeInvalidJSON is returned for request bodies that are not valid JSON
const CodeInvalidJSON = "INVALID_JSON"

// Options configures a Server
type Options struct {
	// Store keeps the last inputs; a MemoryStore when nil
	Store session.Store

	// Now is the clock for "today"; time.Now when nil
	Now func() time.Time

	// Language is the default words language
	Language types.Language

	// AddedMetalPurity is the default enrichment metal purity
	AddedMetalPurity float64
}

// Server is the API server
type Server struct {
	mux      *http.ServeMux
	version  string
	opts     Options
	validate *validator.Validate
}

// NewServer creates a new API server
func NewServer(version string, opts Options) *Server {
	if opts.Store == nil {
		opts.Store = session.NewMemoryStore()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Language == "" {
		opts.Language = types.LanguageEnglish
	}
	if opts.AddedMetalPurity == 0 {
		opts.AddedMetalPurity = 100
	}

	s := &Server{
		mux:      http.NewServeMux(),
		version:  version,
		opts:     opts,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Calculators
	s.mux.HandleFunc("POST /amount", s.handleAmount)
	s.mux.HandleFunc("POST /alloy", s.handleAlloy)
	s.mux.HandleFunc("POST /interest", s.handleInterest)
	s.mux.HandleFunc("POST /words", s.handleWords)

	// Supporting endpoints
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
	s.mux.HandleFunc("GET /session", s.handleSession)
}

// handleAmount handles POST /amount
func (s *Server) handleAmount(w http.ResponseWriter, r *http.Request) {
	var req AmountRequest
	if !s.decode(w, r, &req) {
		return
	}

	in, err := req.input()
	if err != nil {
		s.writeCalcError(w, "amount", err)
		return
	}

	res, err := amount.Compute(in)
	if err != nil {
		s.writeCalcError(w, "amount", err)
		return
	}

	lang := s.language(req.Language)
	s.remember(r.Context(), lang, func(snap *session.Snapshot) { snap.Amount = &in })
	s.writeJSON(w, AmountResponse{
		Input:  in,
		Result: res,
		Total:  numfmt.FormatAmount(res.Total),
		Words:  numfmt.ToWords(res.Total, lang),
	}, http.StatusOK)
}

// handleAlloy handles POST /alloy
func (s *Server) handleAlloy(w http.ResponseWriter, r *http.Request) {
	var req AlloyRequest
	if !s.decode(w, r, &req) {
		return
	}

	in := types.AlloyInput{
		Weight:           *req.Weight,
		CurrentPurity:    *req.CurrentPurity,
		TargetPurity:     *req.TargetPurity,
		AddedMetalPurity: s.opts.AddedMetalPurity,
	}
	if req.AddedMetalPurity != nil {
		in.AddedMetalPurity = *req.AddedMetalPurity
	}

	res, err := alloy.Compute(in)
	if err != nil {
		s.writeCalcError(w, "alloy", err)
		return
	}

	s.remember(r.Context(), "", func(snap *session.Snapshot) { snap.Alloy = &in })
	s.writeJSON(w, AlloyResponse{Input: in, Result: res}, http.StatusOK)
}

// handleInterest handles POST /interest
func (s *Server) handleInterest(w http.ResponseWriter, r *http.Request) {
	var req InterestRequest
	if !s.decode(w, r, &req) {
		return
	}

	terms, rng, err := req.input(types.Truncate(s.opts.Now()))
	if err != nil {
		s.writeCalcError(w, "interest", err)
		return
	}

	sched, err := interest.ComputeSchedule(terms, rng)
	if err != nil {
		s.writeCalcError(w, "interest", err)
		return
	}

	lang := s.language(req.Language)
	s.remember(r.Context(), lang, func(snap *session.Snapshot) {
		snap.Interest = &session.InterestInput{
			Terms: terms,
			Start: rng.Start.Format(types.DateLayout),
			End:   rng.End.Format(types.DateLayout),
		}
	})
	s.writeJSON(w, InterestResponse{
		Schedule: sched,
		Total:    numfmt.FormatAmount(sched.TotalAmount),
		Words:    numfmt.ToWords(sched.TotalAmount, lang),
	}, http.StatusOK)
}

// handleWords handles POST /words
func (s *Server) handleWords(w http.ResponseWriter, r *http.Request) {
	var req WordsRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := numfmt.CheckWordsAmount(*req.Amount); err != nil {
		s.writeCalcError(w, "words", err)
		return
	}

	lang := s.language(req.Language)
	s.writeJSON(w, WordsResponse{
		Amount:    *req.Amount,
		Language:  lang,
		Formatted: numfmt.FormatAmount(*req.Amount),
		Words:     numfmt.ToWords(*req.Amount, lang),
	}, http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    s.opts.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.version,
		"engine":      "gold-calc",
		"api_version": "v1",
	}, http.StatusOK)
}

// handleSession handles GET /session
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	snap, err := s.opts.Store.Load(r.Context())
	if err != nil {
		s.writeError(w, string(errors.TypeOf(err)), err.Error(), nil, http.StatusInternalServerError)
		return
	}
	if snap.IsEmpty() {
		snap = nil
	}
	s.writeJSON(w, SessionResponse{Snapshot: snap}, http.StatusOK)
}

// decode reads and validates the JSON body into req, writing the error
// response itself when it fails
func (s *Server) decode(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		s.writeError(w, CodeInvalidJSON, err.Error(), nil, http.StatusBadRequest)
		return false
	}

	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !stderrors.As(err, &verrs) {
			s.writeError(w, string(errors.TypeInternal), err.Error(), nil, http.StatusInternalServerError)
			return false
		}
		fields := make([]string, 0, len(verrs))
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
		s.writeError(w, string(errors.TypeIncompleteInput), strings.Join(msgs, "; "), fields, http.StatusBadRequest)
		return false
	}
	return true
}

// language picks the request language or the server default
func (s *Server) language(requested string) types.Language {
	if lang, err := types.ParseLanguage(requested); err == nil && requested != "" {
		return lang
	}
	return s.opts.Language
}

// remember saves the inputs of a successful calculation. A failed save
// is logged and does not fail the request.
func (s *Server) remember(ctx context.Context, lang types.Language, fn func(*session.Snapshot)) {
	err := session.Update(ctx, s.opts.Store, s.opts.Now(), func(snap *session.Snapshot) {
		if lang != "" {
			snap.Language = lang
		}
		fn(snap)
	})
	if err != nil {
		logging.Warn("failed to save session", zap.Error(err))
	}
}

// statusFor maps the error taxonomy onto HTTP status codes
func statusFor(t errors.Type) int {
	switch t {
	case errors.TypeIncompleteInput, errors.TypeInvalidRange, errors.TypeParsing:
		return http.StatusBadRequest
	case errors.TypeInfeasibleTarget:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeCalcError(w http.ResponseWriter, calculator string, err error) {
	t := errors.TypeOf(err)
	logging.Calculator(calculator).Warn("calculation rejected",
		zap.String("error_type", string(t)),
		zap.Error(err),
	)

	msg := err.Error()
	var e *errors.Error
	if stderrors.As(err, &e) {
		msg = e.Message
	}
	s.writeError(w, string(t), msg, nil, statusFor(t))
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) writeError(w http.ResponseWriter, code, message string, fields []string, status int) {
	s.writeJSON(w, ErrorBody{Error: ErrorDetail{
		Code:    code,
		Message: message,
		Fields:  fields,
	}}, status)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	s.mux.ServeHTTP(w, r)
	logging.Debug("request served",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Duration("duration", time.Since(start)),
	)
}

// ListenAndServe starts the server
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
