package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"sync"

	"github.com/pathok/admin-console/internal/models"
	"github.com/pathok/admin-console/internal/nav"
	"github.com/pathok/admin-console/internal/ocr"
	"github.com/pathok/admin-console/internal/platform"
	"github.com/pathok/admin-console/internal/session"
	"github.com/pathok/admin-console/internal/steps"
	"github.com/pathok/admin-console/internal/taxonomy"
)

// SessionCookie is the cookie carrying the console session token.
const SessionCookie = "pathok_session"

type Handler struct {
	sessions   *session.Store
	platform   *platform.Client
	navItems   []nav.Item
	categories *taxonomy.Tree
	ocrService *ocr.Service

	// Wizard state per book id. Ephemeral, lost on restart.
	stepsMu sync.Mutex
	steps   map[string]*steps.Controller
}

// Config wires the handler's collaborators. Zero-value fields get sensible
// defaults.
type Config struct {
	Sessions *session.Store
	Platform *platform.Client
	NavItems []nav.Item
}

func New(cfg Config) *Handler {
	if cfg.Platform == nil {
		cfg.Platform = platform.NewClient("")
	}
	if cfg.Sessions == nil {
		cfg.Sessions = session.NewStore(cfg.Platform, "")
	}
	if cfg.NavItems == nil {
		cfg.NavItems = nav.Default()
	}
	return &Handler{
		sessions:   cfg.Sessions,
		platform:   cfg.Platform,
		navItems:   cfg.NavItems,
		categories: taxonomy.NewTree(),
		ocrService: ocr.NewService(),
		steps:      make(map[string]*steps.Controller),
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// writeUpstreamError reports a failed platform call. The triggering state is
// left untouched; the UI surfaces this as a transient notification.
func (h *Handler) writeUpstreamError(w http.ResponseWriter, err error) {
	slog.Error("Platform request failed", "err", err)
	http.Error(w, "Platform request failed", http.StatusBadGateway)
}

// principalOrError resolves the session cookie to a principal, answering 401
// when there is none.
func (h *Handler) principalOrError(w http.ResponseWriter, r *http.Request) (models.Principal, bool) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		h.writeError(w, "Not authenticated", http.StatusUnauthorized)
		return models.Principal{}, false
	}
	principal, ok := h.sessions.Principal(cookie.Value)
	if !ok {
		h.writeError(w, "Not authenticated", http.StatusUnauthorized)
		return models.Principal{}, false
	}
	return principal, true
}

// requireRole gates direct access to a route. Navigation already hides these
// routes; this answers 403 for requests that bypass the menu.
func (h *Handler) requireRole(w http.ResponseWriter, principal models.Principal, roles ...models.Role) bool {
	if slices.Contains(roles, principal.Role) {
		return true
	}
	h.writeError(w, "Access denied", http.StatusForbidden)
	return false
}

// stepController returns the wizard controller for a book, creating it at
// the first stage on first use.
func (h *Handler) stepController(bookID string) *steps.Controller {
	h.stepsMu.Lock()
	defer h.stepsMu.Unlock()

	c, ok := h.steps[bookID]
	if !ok {
		c = steps.NewController()
		h.steps[bookID] = c
	}
	return c
}
