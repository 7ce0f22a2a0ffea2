package cli

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/cors"

	"github.com/matzehuels/chord2svg/pkg/buildinfo"
	"github.com/matzehuels/chord2svg/pkg/errors"
	chordio "github.com/matzehuels/chord2svg/pkg/io"
	"github.com/matzehuels/chord2svg/pkg/observability"
	"github.com/matzehuels/chord2svg/pkg/pipeline"
)

// maxRequestBytes bounds a chord request body.
const maxRequestBytes = 1 << 20

// requestIDHeader carries the request id in both directions.
const requestIDHeader = "X-Request-ID"

// contentTypes maps output formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatMIDI: "audio/midi",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
}

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

// apiServer serves chord renderings over HTTP.
type apiServer struct {
	runner *pipeline.Runner
	base   pipeline.Options
	logger *log.Logger
}

// newHandler builds the HTTP API:
//
//	GET  /healthz          liveness and version
//	POST /render?format=F  chord JSON → artifact (svg by default)
//	POST /layout           chord JSON → layout JSON
func newHandler(runner *pipeline.Runner, base pipeline.Options, origins []string, logger *log.Logger) http.Handler {
	s := &apiServer{runner: runner, base: base, logger: logger}

	r := chi.NewRouter()
	r.Use(s.requestContext)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/render", s.handleRender)
	r.Post("/layout", s.handleLayout)

	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader, "X-Cache"},
	}).Handler(r)
}

// requestContext assigns a request id, attaches a request-scoped logger
// and reports the request to the server hooks.
func (s *apiServer) requestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		ctx := withLogger(r.Context(), s.logger.With("request_id", id))
		hooks := observability.Server()
		hooks.OnRequest(ctx, id, r.Method, r.URL.Path)

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(ctx, id, r.Method, r.URL.Path, status, time.Since(start))
	})
}

func (s *apiServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *apiServer) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	opts, err := s.chordOptions(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Cache", cacheStatus(res.CacheInfo.RenderHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *apiServer) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.chordOptions(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	l, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("X-Cache", cacheStatus(hit))
	writeJSON(w, http.StatusOK, l)
}

// chordOptions decodes the request body into options layered on the
// server defaults.
func (s *apiServer) chordOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	c, err := chordio.ReadChord(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return pipeline.Options{}, errors.New(errors.ErrCodeTooLarge, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return pipeline.Options{}, err
	}
	opts := s.base
	opts.Notes = c.Notes
	opts.Name = c.Name
	opts.Clef = c.Clef
	opts.Logger = loggerFromContext(r.Context())
	return opts, nil
}

func (s *apiServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		loggerFromContext(r.Context()).Error("request failed", "err", err)
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{Code: string(code), Detail: errors.UserMessage(err)})
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidClef, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidConfig,
		errors.ErrCodeInvalidPath, errors.ErrCodeUnknownPitch:
		return http.StatusBadRequest
	case errors.ErrCodeTooLarge:
		return http.StatusRequestEntityTooLarge
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
