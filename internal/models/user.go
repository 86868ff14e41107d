// Package models defines the data carried by the credential cache: the
// active user's record, the access token and the partial-update patch.
package models

// AccessToken is a bearer token issued by the authentication server.
// It lives in the in-memory cache only and is never persisted.
type AccessToken struct {
	// Token is the encoded JWT.
	Token string `json:"token"`
	// Type is the token type reported by the server, e.g. "Bearer".
	Type string `json:"type,omitempty"`
}

// UserRecord is the cached state of the current user.
//
// The salt is intentionally not part of this type: the storage layer keeps
// it in protected memory and only hands out copies.
type UserRecord struct {
	// Username is the case-folded identifier of the user.
	Username string

	DeviceUUID  Optional[string]
	AuthKey     Optional[string]
	AccessToken Optional[AccessToken]
}
