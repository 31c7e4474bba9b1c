package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"profilo/internal/core"
	"profilo/internal/intra"
	"profilo/internal/log"
)

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.currentSession(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	s.render(w, http.StatusOK, "login", loginView{})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.FromContext(ctx)

	if err := r.ParseForm(); err != nil {
		s.render(w, http.StatusBadRequest, "login", loginView{Error: "Malformed form submission."})
		return
	}
	identifier := strings.TrimSpace(r.PostFormValue("identifier"))
	password := r.PostFormValue("password")
	if identifier == "" || password == "" {
		s.render(w, http.StatusBadRequest, "login", loginView{Error: "Username and password are required."})
		return
	}

	dashboard, token, err := s.service.Login(ctx, identifier, password)
	if err != nil {
		if errors.Is(err, intra.ErrBadCredentials) {
			s.render(w, http.StatusUnauthorized, "login", loginView{Error: "Invalid credentials. Please try again."})
			return
		}
		logger.ErrorContext(ctx, "login failed", log.FieldLogin, identifier, log.FieldError, err)
		s.render(w, http.StatusBadGateway, "login", loginView{Error: "The platform is unreachable right now. Please try again later."})
		return
	}

	id, err := s.sessions.Create(dashboard.Login, token)
	if err != nil {
		logger.ErrorContext(ctx, "session creation failed", log.FieldError, err)
		s.renderError(w, http.StatusInternalServerError, "Could not start a session.")
		return
	}
	s.dashboards.Set(id, dashboard)

	http.SetCookie(w, sessionCookie(id, int(sessionTTL.Seconds())))
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		s.sessions.Delete(cookie.Value)
		s.dashboards.Delete(cookie.Value)
	}
	http.SetCookie(w, sessionCookie("", -1))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	sess, ok := s.sessions.Get(cookie.Value)
	if !ok {
		http.SetCookie(w, sessionCookie("", -1))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	dashboard, err := s.resolveDashboard(r, cookie.Value, sess)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "dashboard resolution failed",
			log.FieldLogin, sess.login, log.FieldError, err)
		s.renderError(w, http.StatusBadGateway, "Could not load your profile data. Please try again later.")
		return
	}
	s.render(w, http.StatusOK, "dashboard", newDashboardView(dashboard))
}

func (s *Server) handleAPIDashboard(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		writeJSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	sess, ok := s.sessions.Get(cookie.Value)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "session expired")
		return
	}

	dashboard, err := s.resolveDashboard(r, cookie.Value, sess)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "dashboard resolution failed",
			log.FieldLogin, sess.login, log.FieldError, err)
		writeJSONError(w, http.StatusBadGateway, "profile data unavailable")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(dashboard); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "response encoding failed", log.FieldError, err)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// resolveDashboard serves from the per-session cache when possible.
// A cache miss triggers a live re-fetch; when the platform is down the
// last stored snapshot is used instead.
func (s *Server) resolveDashboard(r *http.Request, sessionID string, sess session) (core.Dashboard, error) {
	if cached, ok := s.dashboards.Get(sessionID); ok {
		return cached, nil
	}

	ctx := r.Context()
	dashboard, err := s.service.Refresh(ctx, sess.token)
	if err != nil {
		log.FromContext(ctx).WarnContext(ctx, "live refresh failed, falling back to snapshot",
			log.FieldLogin, sess.login, log.FieldError, err)
		dashboard, err = s.service.FromSnapshot(ctx, sess.login)
		if err != nil {
			return core.Dashboard{}, err
		}
	}
	s.dashboards.Set(sessionID, dashboard)
	return dashboard, nil
}

func (s *Server) currentSession(r *http.Request) (session, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return session{}, false
	}
	return s.sessions.Get(cookie.Value)
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("template rendering failed", "template", name, log.FieldError, err)
	}
}

func (s *Server) renderError(w http.ResponseWriter, status int, message string) {
	s.render(w, status, "error", errorView{
		Status:  http.StatusText(status),
		Message: message,
	})
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
