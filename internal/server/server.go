// Package server exposes the symbridge allowlist over HTTP.
//
// Endpoints:
//
//	POST /call   — dispatch one operation against an expression
//	GET  /ops    — allowlist and documented signatures
//	GET  /health — liveness check
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kaptinlin/jsonrepair"
	"go.uber.org/zap"

	"github.com/symbridge/symbridge"
	"github.com/symbridge/symbridge/engine"
)

const maxBodyBytes = 1 << 20 // 1 MiB

type Options struct {
	Addr string

	// RepairJSON retries malformed request bodies through jsonrepair
	// before rejecting them.
	RepairJSON bool
}

type Server struct {
	log  *zap.Logger
	opts Options
	mux  *http.ServeMux
}

func New(log *zap.Logger, opts Options) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Addr == "" {
		opts.Addr = ":8080"
	}
	s := &Server{log: log, opts: opts, mux: http.NewServeMux()}
	s.mux.HandleFunc("/call", s.handleCall)
	s.mux.HandleFunc("/ops", s.handleOps)
	s.mux.HandleFunc("/health", s.handleHealth)
	return s
}

// Handler returns the routing handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.mux }

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", s.opts.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// CallRequest is the wire form of one dispatched operation.
type CallRequest struct {
	Op   string         `json:"op"`
	Expr map[string]any `json:"expr"`
	Args map[string]any `json:"args,omitempty"`
}

// CallResponse carries the result of a call. Result holds the
// structured form; Display is the rendered string.
type CallResponse struct {
	ID      string `json:"id"`
	Op      string `json:"op,omitempty"`
	Result  any    `json:"result,omitempty"`
	Display string `json:"display,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	log := s.log.With(zap.String("request_id", id))

	defer func() {
		if rec := recover(); rec != nil {
			log.Error("panic in /call",
				zap.Any("panic", rec),
				zap.ByteString("stack", debug.Stack()))
			writeJSON(w, http.StatusInternalServerError, CallResponse{ID: id, Error: "internal server error"})
		}
	}()

	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, CallResponse{ID: id, Error: "method not allowed"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r.Body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, CallResponse{ID: id, Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusBadRequest, CallResponse{ID: id, Error: err.Error()})
		return
	}

	req, err := s.decodeCall(buf.Bytes())
	if err != nil {
		log.Warn("bad request", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, CallResponse{ID: id, Error: err.Error()})
		return
	}

	fn, err := symbridge.GetAttr(req.Op)
	if err != nil {
		log.Warn("unknown operation", zap.String("op", req.Op))
		writeJSON(w, http.StatusNotFound, CallResponse{ID: id, Op: req.Op, Error: err.Error()})
		return
	}

	recv, err := engine.FromJSON(req.Expr)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, CallResponse{ID: id, Op: req.Op, Error: err.Error()})
		return
	}

	start := time.Now()
	out, err := fn(recv, symbridge.Args(req.Args))
	if err != nil {
		log.Info("call failed",
			zap.String("op", req.Op),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		writeJSON(w, http.StatusUnprocessableEntity, CallResponse{ID: id, Op: req.Op, Error: err.Error()})
		return
	}

	result, display, err := encodeResult(out)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, CallResponse{ID: id, Op: req.Op, Error: err.Error()})
		return
	}
	log.Info("call ok",
		zap.String("op", req.Op),
		zap.Duration("elapsed", time.Since(start)))
	writeJSON(w, http.StatusOK, CallResponse{ID: id, Op: req.Op, Result: result, Display: display})
}

// decodeCall parses the request body strictly; with RepairJSON set,
// malformed bodies get one repair-and-retry pass.
func (s *Server) decodeCall(body []byte) (CallRequest, error) {
	req, err := decodeStrict(body)
	if err == nil {
		return req, nil
	}
	if !s.opts.RepairJSON {
		return CallRequest{}, err
	}
	repaired, repairErr := jsonrepair.JSONRepair(string(body))
	if repairErr != nil {
		return CallRequest{}, fmt.Errorf("%v (repair failed: %v)", err, repairErr)
	}
	return decodeStrict([]byte(repaired))
}

func decodeStrict(body []byte) (CallRequest, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	var req CallRequest
	if err := dec.Decode(&req); err != nil {
		return CallRequest{}, err
	}
	if dec.More() {
		return CallRequest{}, errors.New("invalid JSON: trailing data")
	}
	if req.Op == "" {
		return CallRequest{}, errors.New("missing field: op")
	}
	if req.Expr == nil {
		return CallRequest{}, errors.New("missing field: expr")
	}
	return req, nil
}

// encodeResult renders an operation result for the wire.
func encodeResult(out any) (result any, display string, err error) {
	switch v := out.(type) {
	case engine.Expr:
		s, err := engine.ToJSON(v)
		if err != nil {
			return nil, "", err
		}
		return json.RawMessage(s), v.String(), nil
	case []engine.Expr:
		raw := make([]json.RawMessage, len(v))
		parts := make([]string, len(v))
		for i, e := range v {
			s, err := engine.ToJSON(e)
			if err != nil {
				return nil, "", err
			}
			raw[i] = json.RawMessage(s)
			parts[i] = e.String()
		}
		return raw, "[" + strings.Join(parts, ", ") + "]", nil
	case bool, int, int64, float64, string:
		return v, fmt.Sprint(v), nil
	}
	return nil, "", fmt.Errorf("unencodable result type %T", out)
}

type opEntry struct {
	Name      string            `json:"name"`
	Signature string            `json:"signature"`
	Summary   string            `json:"summary"`
	Params    []symbridge.Param `json:"params,omitempty"`
}

func (s *Server) handleOps(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	sigs := symbridge.Manifest()
	ops := make([]opEntry, len(sigs))
	for i, sig := range sigs {
		ops[i] = opEntry{
			Name:      sig.Name,
			Signature: sig.String(),
			Summary:   sig.Summary,
			Params:    sig.Params,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"ops": ops})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
