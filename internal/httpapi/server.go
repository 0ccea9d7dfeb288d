// Package httpapi exposes analysis and plotter control over HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"papercut/internal/analysis"
	"papercut/internal/logging"
	"papercut/internal/toolpath"
	"papercut/internal/vector"
)

// maxBody bounds request bodies; images arrive base64 encoded.
const maxBody = 32 << 20

// Analyzer plans cutting steps for an encoded image.
type Analyzer interface {
	Analyze(data []byte) (*analysis.Result, bool)
}

// Machine drives the plotter.
type Machine interface {
	SendDrawing(d *vector.Drawing) error
	Calibrate() error
	TestConnection() error
}

// Server holds the handler dependencies.
type Server struct {
	Analyzer Analyzer
	Machine  Machine
	Logger   *slog.Logger
}

type analyzeRequest struct {
	Image string `json:"image"`
}

type sendRequest struct {
	SVGData string `json:"svg_data"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewHandler builds the router. Metrics are served from gatherer.
func NewHandler(s *Server, gatherer prometheus.Gatherer) http.Handler {
	s.Logger = logging.OrNop(s.Logger)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Post("/analyze_steps", s.AnalyzeSteps)
	r.Post("/send_drawing", s.SendDrawing)
	r.Post("/send_to_arduino", s.SendDrawing)
	r.Post("/calibrate_machine", s.CalibrateMachine)
	r.Post("/test_connection", s.TestConnection)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.Logger.Warn("page not found", "path", r.URL.Path)
		writeError(w, http.StatusNotFound, "not found")
	})
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AnalyzeSteps handles POST /analyze_steps.
func (s *Server) AnalyzeSteps(w http.ResponseWriter, r *http.Request) {
	var body analyzeRequest
	if !s.decode(w, r, &body) {
		return
	}
	if body.Image == "" {
		writeError(w, http.StatusBadRequest, "image is required")
		return
	}

	res, ok := s.Analyzer.Analyze([]byte(body.Image))
	if !ok {
		writeError(w, http.StatusBadRequest, "no cutting steps could be planned for this image")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// SendDrawing handles POST /send_drawing.
func (s *Server) SendDrawing(w http.ResponseWriter, r *http.Request) {
	var body sendRequest
	if !s.decode(w, r, &body) {
		return
	}
	if body.SVGData == "" {
		writeError(w, http.StatusBadRequest, "svg_data is required")
		return
	}

	d, err := vector.ParseSVG([]byte(body.SVGData))
	if err != nil {
		s.Logger.Warn("SendDrawing: invalid svg", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.Machine.SendDrawing(d); err != nil {
		s.Logger.Error("SendDrawing failed", "error", err)
		status := http.StatusInternalServerError
		if errors.Is(err, toolpath.ErrMalformedPath) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "drawing sent to machine"})
}

// CalibrateMachine handles POST /calibrate_machine.
func (s *Server) CalibrateMachine(w http.ResponseWriter, r *http.Request) {
	if err := s.Machine.Calibrate(); err != nil {
		s.Logger.Error("CalibrateMachine failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "machine calibrated"})
}

// TestConnection handles POST /test_connection.
func (s *Server) TestConnection(w http.ResponseWriter, r *http.Request) {
	if err := s.Machine.TestConnection(); err != nil {
		s.Logger.Error("TestConnection failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "machine connection ok"})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(v); err != nil {
		s.Logger.Warn("invalid request body", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadRequest, "request body must be JSON")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
