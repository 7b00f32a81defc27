package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
)

// meResponse is the principal as exposed to the browser. The platform bearer
// token stays server-side.
type meResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Name     string `json:"name"`
	LastPath string `json:"last_path,omitempty"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	// Field constraints are checked before any network call.
	if !strings.Contains(creds.Email, "@") {
		h.writeError(w, "A valid email is required", http.StatusBadRequest)
		return
	}
	if len(creds.Password) < 6 {
		h.writeError(w, "Password must be at least 6 characters", http.StatusBadRequest)
		return
	}

	token, principal, err := h.sessions.Login(r.Context(), creds.Email, creds.Password)
	if err != nil {
		h.writeError(w, "Login failed", http.StatusUnauthorized)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	h.writeJSON(w, meResponse{
		ID:       principal.ID,
		Email:    principal.Email,
		Role:     string(principal.Role),
		Name:     principal.Name,
		LastPath: h.sessions.LastPath(token),
	})
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if cookie, err := r.Cookie(SessionCookie); err == nil {
		h.sessions.Logout(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	principal, ok := h.principalOrError(w, r)
	if !ok {
		return
	}

	cookie, _ := r.Cookie(SessionCookie)
	h.writeJSON(w, meResponse{
		ID:       principal.ID,
		Email:    principal.Email,
		Role:     string(principal.Role),
		Name:     principal.Name,
		LastPath: h.sessions.LastPath(cookie.Value),
	})
}

// HandleLastPath records the last visited protected path so the UI can
// restore location after the next login.
func (h *Handler) HandleLastPath(w http.ResponseWriter, r *http.Request) {
	if r.Method != "PUT" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if _, ok := h.principalOrError(w, r); !ok {
		return
	}

	var body struct {
		Path string `json:"path"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if !strings.HasPrefix(body.Path, "/") {
		h.writeError(w, "Path must be absolute", http.StatusBadRequest)
		return
	}

	cookie, _ := r.Cookie(SessionCookie)
	h.sessions.SetLastPath(cookie.Value, body.Path)
	w.WriteHeader(http.StatusNoContent)
}
