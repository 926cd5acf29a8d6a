// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

// Claims is the decoded payload of a verified ID token
type Claims map[string]any

func (c Claims) str(key string) string {
	v, _ := c[key].(string)
	return v
}

func (c Claims) Subject() string {
	return c.str("sub")
}

// UID is the Firebase user ID, equal to the subject
func (c Claims) UID() string {
	if uid := c.str("uid"); uid != "" {
		return uid
	}
	return c.Subject()
}

func (c Claims) Email() string {
	return c.str("email")
}

func (c Claims) Issuer() string {
	return c.str("iss")
}
