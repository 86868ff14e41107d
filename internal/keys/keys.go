// Package keys builds the secure-store key names used by the credential
// cache. All per-user keys are qualified by the normalized username.
package keys

import "fmt"

// Purpose names what a stored value is.
type Purpose string

const (
	LastUser   Purpose = "lastUser"
	Username   Purpose = "username"
	Salt       Purpose = "salt"
	DeviceUUID Purpose = "deviceUuid"
	AuthKey    Purpose = "authKey"
)

// UserPurposes lists every per-user purpose, in the order they are written.
var UserPurposes = []Purpose{Username, Salt, DeviceUUID, AuthKey}

// Global reports whether the purpose is stored once per device rather than
// once per user.
func (p Purpose) Global() bool {
	return p == LastUser
}

// Key returns the store key for purpose and username. Global purposes ignore
// the username.
func Key(p Purpose, username string) string {
	if p.Global() {
		return string(p)
	}
	return fmt.Sprintf("%s:%s", p, username)
}

// UserKeys returns all per-user keys of username.
func UserKeys(username string) []string {
	out := make([]string, 0, len(UserPurposes))
	for _, p := range UserPurposes {
		out = append(out, Key(p, username))
	}
	return out
}
