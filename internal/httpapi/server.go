package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"apistation/internal/gateway"
	"apistation/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Root() types.RootResponse
	Ready() bool
	GenerateImage(ctx context.Context, req types.ImageRequest) ([]byte, error)
	Chat(ctx context.Context, req types.ChatRequest) (types.ChatMessage, error)
	Transcribe(ctx context.Context, audio []byte) (json.RawMessage, error)
	GenerateKey() (types.APIKeyResponse, error)
}

type handlers struct {
	svc Service
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "Authorization", "X-Log-Level"},
			MaxAge:         300,
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	h := &handlers{svc: svc}
	r.Get("/", h.root)
	r.Post("/generate/image", h.generateImage)
	r.Post("/chat/completions", h.chatCompletions)
	r.Post("/audio/transcriptions", h.audioTranscriptions)
	r.Get("/api/key/generate", h.generateKey)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("no upstream token"))
	})
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	if uiDir != "" {
		MountUI(r, uiDir)
	}
	if swaggerEnabled {
		MountSwagger(r)
	}
	return r
}

// root godoc
// @Summary      Service status
// @Description  Static status and the model aliases accepted by each route.
// @Tags         meta
// @Produce      json
// @Success      200  {object}  types.RootResponse
// @Router       / [get]
func (h *handlers) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Root())
}

// generateImage godoc
// @Summary      Generate an image
// @Description  Renders the prompt with the aliased text-to-image model. Unknown aliases use the default model.
// @Tags         image
// @Accept       json
// @Produce      png
// @Param        request  body      types.ImageRequest  true  "Image request"
// @Success      200      {file}    binary
// @Failure      400      {object}  types.ErrorResponse
// @Failure      422      {object}  types.ValidationErrorResponse
// @Failure      500      {object}  types.ErrorResponse
// @Router       /generate/image [post]
func (h *handlers) generateImage(w http.ResponseWriter, r *http.Request) {
	var req types.ImageRequest
	if !decodeJSON(w, r, imageRules, &req) {
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeValidationError(w, map[string][]string{"prompt": {"The prompt field is required"}})
		return
	}
	lvl, start := requestLogLevel(r), time.Now()
	logStart(r, lvl, req.ModelID)
	ctx, cancel := joinContexts(serverBaseCtx, r.Context())
	defer cancel()
	img, err := h.svc.GenerateImage(ctx, req)
	if err != nil {
		h.fail(w, r, lvl, start, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(img)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img)
	logEnd(r, lvl, http.StatusOK, start, nil)
}

// chatCompletions godoc
// @Summary      Chat completion
// @Description  Runs a chat completion and returns only the first choice's message.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        request  body      types.ChatRequest  true  "Chat request"
// @Success      200      {object}  types.ChatMessage
// @Failure      400      {object}  types.ErrorResponse
// @Failure      422      {object}  types.ValidationErrorResponse
// @Failure      500      {object}  types.ErrorResponse
// @Router       /chat/completions [post]
func (h *handlers) chatCompletions(w http.ResponseWriter, r *http.Request) {
	var req types.ChatRequest
	if !decodeJSON(w, r, chatRules, &req) {
		return
	}
	if len(req.Messages) == 0 {
		writeValidationError(w, map[string][]string{"messages": {"The messages field is required"}})
		return
	}
	for i, m := range req.Messages {
		if strings.TrimSpace(m.Role) == "" {
			writeValidationError(w, map[string][]string{fmt.Sprintf("messages.%d.role", i): {"role is required"}})
			return
		}
	}
	lvl, start := requestLogLevel(r), time.Now()
	logStart(r, lvl, req.ModelID)
	ctx, cancel := joinContexts(serverBaseCtx, r.Context())
	defer cancel()
	msg, err := h.svc.Chat(ctx, req)
	if err != nil {
		h.fail(w, r, lvl, start, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
	logEnd(r, lvl, http.StatusOK, start, nil)
}

// audioTranscriptions godoc
// @Summary      Transcribe audio
// @Description  Forwards the uploaded file to the speech-recognition model and returns its JSON verbatim.
// @Tags         audio
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Audio file"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  types.ErrorResponse
// @Failure      415   {object}  types.ErrorResponse
// @Failure      422   {object}  types.ValidationErrorResponse
// @Failure      500   {object}  types.ErrorResponse
// @Router       /audio/transcriptions [post]
func (h *handlers) audioTranscriptions(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be multipart/form-data")
			return
		}
		writeJSONError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	defer r.MultipartForm.RemoveAll()
	f, _, err := r.FormFile("file")
	if err != nil {
		writeValidationError(w, map[string][]string{"file": {"The file field is required"}})
		return
	}
	audio, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "failed to read upload")
		return
	}
	if len(audio) == 0 {
		writeValidationError(w, map[string][]string{"file": {"The file is empty"}})
		return
	}
	lvl, start := requestLogLevel(r), time.Now()
	logStart(r, lvl, "")
	ctx, cancel := joinContexts(serverBaseCtx, r.Context())
	defer cancel()
	out, err := h.svc.Transcribe(ctx, audio)
	if err != nil {
		h.fail(w, r, lvl, start, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
	logEnd(r, lvl, http.StatusOK, start, nil)
}

// generateKey godoc
// @Summary      Generate an API key
// @Description  Returns a random sk- token. The token is not stored and no route checks it.
// @Tags         keys
// @Produce      json
// @Success      200  {object}  types.APIKeyResponse
// @Failure      500  {object}  types.ErrorResponse
// @Router       /api/key/generate [get]
func (h *handlers) generateKey(w http.ResponseWriter, r *http.Request) {
	key, err := h.svc.GenerateKey()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, key)
}

// fail reports a service error. Every failure is a 500 carrying the error
// text; a gone client or a shutting-down server gets no body.
func (h *handlers) fail(w http.ResponseWriter, r *http.Request, lvl LogLevel, start time.Time, err error) {
	if gateway.IsUpstreamFailure(err) {
		IncrementUpstreamFailure(gateway.Op(err))
	}
	if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
		logEnd(r, lvl, 499, start, err)
		return
	}
	writeJSONError(w, http.StatusInternalServerError, err.Error())
	logEnd(r, lvl, http.StatusInternalServerError, start, err)
}
