// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"
	githuboauth "golang.org/x/oauth2/github"
)

const (
	// statePrefix namespaces OAuth2 state tokens in Valkey.
	statePrefix = "oauthstate:"

	// stateTTL bounds how long a login attempt may take between the
	// redirect to GitHub and the callback.
	stateTTL = 10 * time.Minute

	// defaultUserAPIURL is the GitHub endpoint returning the
	// authenticated user's profile.
	defaultUserAPIURL = "https://api.github.com/user"
)

// GitHub drives the OAuth2 authorization-code flow against GitHub.
// State tokens live in Valkey so the flow works across replicas.
type GitHub struct {
	conf   *oauth2.Config
	valkey *redis.Client

	// UserAPIURL is overridable in tests to point at a stub server.
	UserAPIURL string
}

// NewGitHub creates the OAuth2 client for the registered GitHub app.
func NewGitHub(clientID, clientSecret string, valkey *redis.Client) *GitHub {
	return &GitHub{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     githuboauth.Endpoint,
			Scopes:       []string{"read:user"},
		},
		valkey:     valkey,
		UserAPIURL: defaultUserAPIURL,
	}
}

// AuthURL generates a random state token, stores it in Valkey with a TTL,
// and returns the GitHub authorize URL carrying it.
func (g *GitHub) AuthURL(ctx context.Context) (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("oauth state: %w", err)
	}
	state := hex.EncodeToString(b)

	if err := g.valkey.Set(ctx, statePrefix+state, "1", stateTTL).Err(); err != nil {
		return "", fmt.Errorf("oauth state store: %w", err)
	}

	return g.conf.AuthCodeURL(state), nil
}

// ConsumeState checks a callback state token and removes it so it cannot
// be replayed. Returns false for unknown or expired tokens.
func (g *GitHub) ConsumeState(ctx context.Context, state string) (bool, error) {
	if state == "" {
		return false, nil
	}

	deleted, err := g.valkey.Del(ctx, statePrefix+state).Result()
	if err != nil {
		return false, fmt.Errorf("oauth state check: %w", err)
	}
	return deleted > 0, nil
}

// FetchUser exchanges the authorization code for a token and loads the
// authenticated user's profile, reduced to a Principal.
func (g *GitHub) FetchUser(ctx context.Context, code string) (Principal, error) {
	token, err := g.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("oauth exchange: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.UserAPIURL, nil)
	if err != nil {
		return nil, fmt.Errorf("github user request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := g.conf.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("github user fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github user fetch: status %d", resp.StatusCode)
	}

	var user struct {
		Login     string `json:"login"`
		Name      string `json:"name"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("github user decode: %w", err)
	}

	return MapPrincipal{
		"login":      user.Login,
		"name":       user.Name,
		"avatar_url": user.AvatarURL,
	}, nil
}
