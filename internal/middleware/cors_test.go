// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS(t *testing.T) {
	handler := CORS([]string{"http://localhost:8000"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("allowed origin gets CORS headers", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/posts", nil)
		r.Header.Set("Origin", "http://localhost:8000")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:8000" {
			t.Errorf("Allow-Origin = %q, want the request origin", got)
		}
		if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
			t.Errorf("Allow-Credentials = %q, want true", got)
		}
	})

	t.Run("unknown origin gets no CORS headers", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/posts", nil)
		r.Header.Set("Origin", "http://evil.example.com")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Allow-Origin = %q, want empty", got)
		}
	})

	t.Run("no origin header passes through untouched", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/posts", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Allow-Origin = %q, want empty", got)
		}
	})

	t.Run("preflight answered with 204", func(t *testing.T) {
		r := httptest.NewRequest("OPTIONS", "/posts", nil)
		r.Header.Set("Origin", "http://localhost:8000")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		if w.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", w.Code)
		}
	})
}
