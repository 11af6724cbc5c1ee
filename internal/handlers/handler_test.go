// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler integration
// tests. The tests live in an external test package so they can mount the
// full router. Tests are skipped when PostgreSQL or Valkey are unavailable.
package handlers_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"devblog/internal/auth"
	"devblog/internal/database"
	"devblog/internal/handlers"
	"devblog/internal/router"
	"devblog/internal/session"
	"devblog/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "devblog")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "devblog")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		// Clean up test session and OAuth state keys.
		for _, pattern := range []string{"session:*", "oauthstate:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests. The full
// router is exercised through an httptest server so middleware, routing
// and handlers are tested together.
type testEnv struct {
	DB         *sql.DB
	Valkey     *redis.Client
	Sessions   *session.Store
	Posts      *store.PostStore
	Categories *store.CategoryStore
	Server     *httptest.Server
}

// newTestEnv creates a complete test environment with the router mounted
// on a local test server.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	sessions := session.NewStore(vk, false)
	categoryStore := store.NewCategoryStore(db)
	postStore := store.NewPostStore(db)

	github := auth.NewGitHub("test-client-id", "test-secret", vk)
	authorizer := auth.NewAuthorizer("test-admin")

	postHandlers := handlers.NewPosts(postStore, categoryStore)
	categoryHandlers := handlers.NewCategories(categoryStore)
	authHandlers := handlers.NewAuth(sessions, github, authorizer,
		"http://localhost:8000/login/success.html",
		"http://localhost:8000/login/error.html")

	r := router.New(sessions, postHandlers, categoryHandlers, authHandlers,
		[]string{"http://localhost:8000"})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testEnv{
		DB:         db,
		Valkey:     vk,
		Sessions:   sessions,
		Posts:      postStore,
		Categories: categoryStore,
		Server:     srv,
	}
}

// sessionCookie writes session data straight into Valkey and returns the
// matching cookie, bypassing the OAuth2 flow.
func sessionCookie(t *testing.T, vk *redis.Client, admin bool) *http.Cookie {
	t.Helper()

	id := uuid.NewString() + uuid.NewString()
	data := &session.Data{
		GitHubLogin: "test-admin",
		Name:        "Test Admin",
		Admin:       admin,
		CreatedAt:   time.Now(),
	}
	if !admin {
		data.GitHubLogin = "test-visitor"
		data.Name = "Test Visitor"
	}

	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal session: %v", err)
	}
	if err := vk.Set(context.Background(), "session:"+id, payload, time.Hour).Err(); err != nil {
		t.Fatalf("store session: %v", err)
	}

	return &http.Cookie{Name: session.CookieName, Value: id}
}

// doJSON sends a request with an optional JSON body and cookie, returning
// the response. The caller owns the body.
func doJSON(t *testing.T, method, url, body string, cookie *http.Cookie) *http.Response {
	t.Helper()

	var req *http.Request
	var err error
	if body != "" {
		req, err = http.NewRequest(method, url, strings.NewReader(body))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	return resp
}

// decodeInto decodes a JSON response body into v without closing it.
func decodeInto(t *testing.T, resp *http.Response, v any) error {
	t.Helper()
	return json.NewDecoder(resp.Body).Decode(v)
}

// decodeBody decodes a JSON response body into a generic map.
func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

// cleanCategories removes test categories (and their posts, via cascade).
func cleanCategories(t *testing.T, db *sql.DB, names ...string) {
	t.Helper()
	for _, name := range names {
		db.Exec("DELETE FROM categories WHERE name = $1", name)
	}
}
