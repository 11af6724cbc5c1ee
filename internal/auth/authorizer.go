// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package auth

// Authorizer decides whether a principal is the blog admin. The admin
// login name is injected at construction and never read from globals.
type Authorizer struct {
	adminLogin string
}

// NewAuthorizer creates an Authorizer for the given admin GitHub login.
func NewAuthorizer(adminLogin string) *Authorizer {
	return &Authorizer{adminLogin: adminLogin}
}

// IsAdmin reports whether the principal is the configured admin.
// The comparison is an exact, case-sensitive match of the provider
// "login" attribute; nil principals are never admin.
func (a *Authorizer) IsAdmin(p Principal) bool {
	return p != nil && p.Attribute("login") == a.adminLogin
}
