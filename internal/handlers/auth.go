// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"net/url"

	"devblog/internal/auth"
	"devblog/internal/middleware"
	"devblog/internal/session"
)

// Auth groups the OAuth2 login flow and identity handlers.
type Auth struct {
	sessions   *session.Store
	github     *auth.GitHub
	authorizer *auth.Authorizer

	successURL string
	errorURL   string
}

// NewAuth creates a new Auth handler group. successURL and errorURL are
// the frontend destinations for completed and failed logins.
func NewAuth(sessions *session.Store, github *auth.GitHub, authorizer *auth.Authorizer, successURL, errorURL string) *Auth {
	return &Auth{
		sessions:   sessions,
		github:     github,
		authorizer: authorizer,
		successURL: successURL,
		errorURL:   errorURL,
	}
}

// Login handles GET /auth/github/login: it starts the OAuth2 flow by
// redirecting to GitHub's authorize endpoint.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	authURL, err := a.github.AuthURL(r.Context())
	if err != nil {
		writeInternalError(w, "oauth login start failed", err)
		return
	}

	http.Redirect(w, r, authURL, http.StatusFound)
}

// Callback handles GET /auth/github/callback. Only the configured admin
// login may complete a session; anyone else is sent to the error URL.
func (a *Auth) Callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if q.Get("error") != "" {
		slog.Warn("oauth provider returned error", "error", q.Get("error"))
		a.redirectError(w, r, "oauth_failure")
		return
	}

	ok, err := a.github.ConsumeState(r.Context(), q.Get("state"))
	if err != nil {
		writeInternalError(w, "oauth state check failed", err)
		return
	}
	if !ok {
		slog.Warn("oauth callback with unknown or expired state")
		a.redirectError(w, r, "oauth_failure")
		return
	}

	principal, err := a.github.FetchUser(r.Context(), q.Get("code"))
	if err != nil {
		slog.Error("oauth user fetch failed", "error", err)
		a.redirectError(w, r, "oauth_failure")
		return
	}

	login := principal.Attribute("login")
	if !a.authorizer.IsAdmin(principal) {
		slog.Warn("non-admin login rejected", "login", login)
		a.redirectError(w, r, "not_admin")
		return
	}

	_, err = a.sessions.Create(r.Context(), w, &session.Data{
		GitHubLogin: login,
		Name:        principal.Attribute("name"),
		AvatarURL:   principal.Attribute("avatar_url"),
		Admin:       true,
	})
	if err != nil {
		writeInternalError(w, "session create failed", err)
		return
	}

	slog.Info("admin logged in", "login", login)

	dest, _ := url.Parse(a.successURL)
	params := dest.Query()
	params.Set("githubId", login)
	params.Set("name", principal.Attribute("name"))
	params.Set("role", "ADMIN")
	dest.RawQuery = params.Encode()
	http.Redirect(w, r, dest.String(), http.StatusFound)
}

// CurrentUser handles GET /auth/user: it returns the session identity or
// an unauthenticated marker.
func (a *Auth) CurrentUser(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"authenticated": false,
			"loginUrl":      "/auth/github/login",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"githubId":      sess.GitHubLogin,
		"name":          sess.Name,
		"avatarUrl":     sess.AvatarURL,
		"admin":         sess.Admin,
	})
}

// Logout handles POST /auth/logout.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		writeInternalError(w, "logout failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"message":     "Logged out.",
		"redirectUrl": "/",
	})
}

// redirectError sends the browser to the configured error page with a
// machine-readable reason.
func (a *Auth) redirectError(w http.ResponseWriter, r *http.Request, reason string) {
	dest, _ := url.Parse(a.errorURL)
	params := dest.Query()
	params.Set("reason", reason)
	dest.RawQuery = params.Encode()
	http.Redirect(w, r, dest.String(), http.StatusFound)
}
