package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/katalog/internal/domain"
	domcat "github.com/kailas-cloud/katalog/internal/domain/catalog"
	dompref "github.com/kailas-cloud/katalog/internal/domain/preference"
	batchuc "github.com/kailas-cloud/katalog/internal/usecase/batch"
	cataloguc "github.com/kailas-cloud/katalog/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/katalog/internal/usecase/health"
	preferenceuc "github.com/kailas-cloud/katalog/internal/usecase/preference"
	recommenduc "github.com/kailas-cloud/katalog/internal/usecase/recommend"
	"github.com/kailas-cloud/katalog/internal/version"
)

// SessionHeader carries the browser session id.
const SessionHeader = "X-Session-ID"

// Server serves the katalog HTTP API on a chi router.
type Server struct {
	catalog       *cataloguc.Service
	batch         *batchuc.Service
	preferences   *preferenceuc.Service
	recommend     *recommenduc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	catalog *cataloguc.Service,
	batch *batchuc.Service,
	preferences *preferenceuc.Service,
	recommend *recommenduc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		catalog:       catalog,
		batch:         batch,
		preferences:   preferences,
		recommend:     recommend,
		health:        health,
		logger:        logger,
		errorHandlers: defaultErrorHandlers(),
	}
}

// Register mounts every route on r.
func (s *Server) Register(r chi.Router) {
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeRouteNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/rank", s.Rank)

		r.Route("/catalog/{kind}", func(r chi.Router) {
			r.Route("/items", func(r chi.Router) {
				r.Get("/", s.ListItems)
				r.Post("/", s.CreateItem)
				r.Put("/{id}", s.UpsertItem)
				r.Get("/{id}", s.GetItem)
				r.Delete("/{id}", s.DeleteItem)
			})
			r.Post("/batch/upsert", s.BatchUpsertItems)
			r.Post("/batch/delete", s.BatchDeleteItems)
		})

		r.Route("/users/{uid}", func(r chi.Router) {
			r.Put("/preferences", s.SavePreferences)
			r.Get("/preferences", s.GetPreferences)
			r.Get("/recommendations", s.Recommendations)
		})

		r.Put("/sessions/{sid}/tokens", s.CacheSessionTokens)
	})
}

// Rank handles POST /api/v1/rank.
func (s *Server) Rank(w http.ResponseWriter, r *http.Request) {
	var req rankRequest
	if !s.decode(w, r, &req) {
		return
	}

	scored := s.recommend.Rank(r.Context(), rankDocumentsFromRequest(req.Documents), req.QueryTokens, req.TopN)
	writeJSON(w, http.StatusOK, rankedToResponse(scored))
}

// CreateItem handles POST /api/v1/catalog/{kind}/items.
func (s *Server) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if !s.decode(w, r, &req) {
		return
	}
	kind := domcat.Kind(chi.URLParam(r, "kind"))

	if req.ID != "" {
		s.upsert(w, r, req.ID, kind, &req)
		return
	}

	item, err := s.catalog.Create(r.Context(), kind, req.params())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/v1/catalog/%s/items/%s", kind, item.ID()))
	writeJSON(w, http.StatusCreated, itemToResponse(&item))
}

// UpsertItem handles PUT /api/v1/catalog/{kind}/items/{id}.
func (s *Server) UpsertItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.upsert(w, r, chi.URLParam(r, "id"), domcat.Kind(chi.URLParam(r, "kind")), &req)
}

func (s *Server) upsert(w http.ResponseWriter, r *http.Request, id string, kind domcat.Kind, req *itemRequest) {
	item, created, err := s.catalog.Upsert(r.Context(), id, kind, req.params())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, itemToResponse(&item))
}

// GetItem handles GET /api/v1/catalog/{kind}/items/{id}.
func (s *Server) GetItem(w http.ResponseWriter, r *http.Request) {
	item, err := s.catalog.Get(r.Context(), domcat.Kind(chi.URLParam(r, "kind")), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, itemToResponse(&item))
}

// DeleteItem handles DELETE /api/v1/catalog/{kind}/items/{id}.
func (s *Server) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Delete(r.Context(), domcat.Kind(chi.URLParam(r, "kind")), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListItems handles GET /api/v1/catalog/{kind}/items.
func (s *Server) ListItems(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}

	items, total, err := s.catalog.Latest(r.Context(), domcat.Kind(chi.URLParam(r, "kind")), limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := itemListResponse{Items: make([]itemResponse, len(items)), Total: total}
	for i := range items {
		resp.Items[i] = itemToResponse(&items[i])
	}
	writeJSON(w, http.StatusOK, resp)
}

// BatchUpsertItems handles POST /api/v1/catalog/{kind}/batch/upsert.
// Entries fail independently; the response always lists one result per entry.
func (s *Server) BatchUpsertItems(w http.ResponseWriter, r *http.Request) {
	var req batchUpsertRequest
	if !s.decode(w, r, &req) {
		return
	}
	kind, ok := s.batchPrecheck(w, r, len(req.Items))
	if !ok {
		return
	}

	entries := make([]batchuc.Entry, len(req.Items))
	for i := range req.Items {
		entries[i] = batchuc.Entry{ID: req.Items[i].ID, Params: req.Items[i].params()}
	}
	writeJSON(w, http.StatusOK, batchToResponse(s.batch.Upsert(r.Context(), kind, entries)))
}

// BatchDeleteItems handles POST /api/v1/catalog/{kind}/batch/delete.
func (s *Server) BatchDeleteItems(w http.ResponseWriter, r *http.Request) {
	var req batchDeleteRequest
	if !s.decode(w, r, &req) {
		return
	}
	kind, ok := s.batchPrecheck(w, r, len(req.IDs))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, batchToResponse(s.batch.Delete(r.Context(), kind, req.IDs)))
}

// batchPrecheck rejects a whole batch up front when its kind or size is invalid.
func (s *Server) batchPrecheck(w http.ResponseWriter, r *http.Request, n int) (domcat.Kind, bool) {
	kind := domcat.Kind(chi.URLParam(r, "kind"))
	if !kind.IsValid() {
		s.handleDomainError(w, fmt.Errorf("%w: %q", domain.ErrInvalidKind, kind))
		return "", false
	}
	if limit := s.batch.MaxBatchSize(); n > limit {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, fmt.Sprintf("batch size %d exceeds %d", n, limit))
		return "", false
	}
	return kind, true
}

// SavePreferences handles PUT /api/v1/users/{uid}/preferences.
func (s *Server) SavePreferences(w http.ResponseWriter, r *http.Request) {
	var req preferencesRequest
	if !s.decode(w, r, &req) {
		return
	}
	userID := chi.URLParam(r, "uid")

	in := dompref.Reconstruct(req.ProductCategories, req.FoodCategories, req.LikedKeywords, req.SurveyCompleted, 0)
	prefs, err := s.preferences.Save(r.Context(), userID, in, r.Header.Get(SessionHeader))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, preferencesToResponse(userID, &prefs))
}

// GetPreferences handles GET /api/v1/users/{uid}/preferences.
func (s *Server) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "uid")
	prefs, err := s.preferences.Get(r.Context(), userID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, preferencesToResponse(userID, &prefs))
}

// CacheSessionTokens handles PUT /api/v1/sessions/{sid}/tokens.
func (s *Server) CacheSessionTokens(w http.ResponseWriter, r *http.Request) {
	var req sessionTokensRequest
	if !s.decode(w, r, &req) {
		return
	}
	sessionID := chi.URLParam(r, "sid")

	tokens, err := s.preferences.CacheSessionTokens(r.Context(), sessionID, req.Tokens)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionTokensResponse{SessionID: sessionID, Tokens: nonNil(tokens)})
}

// Recommendations handles GET /api/v1/users/{uid}/recommendations.
// The session comes from ?session= or, failing that, the X-Session-ID header.
func (s *Server) Recommendations(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}
	q := r.URL.Query()
	sessionID := q.Get("session")
	if sessionID == "" {
		sessionID = r.Header.Get(SessionHeader)
	}
	userID := chi.URLParam(r, "uid")

	resp, err := s.recommend.Recommend(r.Context(), recommenduc.Request{
		UserID:    userID,
		SessionID: sessionID,
		Kind:      domcat.Kind(q.Get("kind")),
		Limit:     limit,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recommendationsToResponse(userID, resp))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
		Build:  version.Get(),
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// decode reads a JSON body into v and validates it, replying on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, CodeBadRequest, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if err := validateRequest(v); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return false
	}
	return true
}

// queryInt parses an optional integer query parameter; absent means 0.
func queryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		writeError(w, http.StatusBadRequest, CodeBadRequest, name+" must be a non-negative integer")
		return 0, false
	}
	return n, true
}
