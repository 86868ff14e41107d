package models

import (
	"encoding/json"
	"fmt"
)

// Patch is a partial update of the current user's record. Fields that are
// absent, or present with an empty string, leave the record unchanged.
type Patch struct {
	DeviceUUID  Optional[string]      `json:"deviceUuid,omitzero"`
	AuthKey     Optional[string]      `json:"authKey,omitzero"`
	AccessToken Optional[AccessToken] `json:"accessToken,omitzero"`
}

// IsEmpty reports whether applying the patch would change nothing.
func (p Patch) IsEmpty() bool {
	if v, ok := p.DeviceUUID.Get(); ok && v != "" {
		return false
	}
	if v, ok := p.AuthKey.Get(); ok && v != "" {
		return false
	}
	return !p.AccessToken.IsSet()
}

// DecodePatch parses the JSON update document returned by the
// authentication server:
//
//	{"deviceUuid": "...", "authKey": "...", "accessToken": {"token": "...", "type": "Bearer"}}
//
// Unknown keys are ignored.
func DecodePatch(data []byte) (Patch, error) {
	var p Patch
	if err := json.Unmarshal(data, &p); err != nil {
		return Patch{}, fmt.Errorf("decode patch: %w", err)
	}
	return p, nil
}
