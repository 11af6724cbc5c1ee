// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package auth implements GitHub OAuth2 login and the single-admin
// authorization gate. Identity is never stored locally: the provider's
// user object is reduced to a small attribute map and the only
// authorization decision is a comparison against one configured login.
package auth

// Principal is the capability surface of an authenticated identity:
// attribute lookup by key. It deliberately hides any provider-specific
// user-object shape. A missing attribute yields the empty string.
type Principal interface {
	Attribute(key string) string
}

// MapPrincipal is a Principal backed by a plain attribute map.
type MapPrincipal map[string]string

// Attribute returns the named attribute, or "" when absent.
func (m MapPrincipal) Attribute(key string) string {
	return m[key]
}
