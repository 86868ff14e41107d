package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePatch_AllFields(t *testing.T) {
	p, err := DecodePatch([]byte(`{
		"deviceUuid": "dev-1",
		"authKey": "ak-1",
		"accessToken": {"token": "jwt", "type": "Bearer"}
	}`))
	require.NoError(t, err)

	dev, ok := p.DeviceUUID.Get()
	assert.True(t, ok)
	assert.Equal(t, "dev-1", dev)
	assert.Equal(t, "ak-1", p.AuthKey.OrElse(""))
	tok, ok := p.AccessToken.Get()
	require.True(t, ok)
	assert.Equal(t, AccessToken{Token: "jwt", Type: "Bearer"}, tok)
}

func TestDecodePatch_AbsentAndNullAreUnset(t *testing.T) {
	p, err := DecodePatch([]byte(`{"authKey": null, "extra": 1}`))
	require.NoError(t, err)

	assert.False(t, p.DeviceUUID.IsSet())
	assert.False(t, p.AuthKey.IsSet())
	assert.False(t, p.AccessToken.IsSet())
	assert.True(t, p.IsEmpty())
}

func TestDecodePatch_EmptyStringIsSetButEmpty(t *testing.T) {
	p, err := DecodePatch([]byte(`{"deviceUuid": ""}`))
	require.NoError(t, err)

	v, ok := p.DeviceUUID.Get()
	assert.True(t, ok)
	assert.Empty(t, v)
	assert.True(t, p.IsEmpty(), "empty strings are no-ops")
}

func TestDecodePatch_Malformed(t *testing.T) {
	_, err := DecodePatch([]byte(`{"deviceUuid": 42}`))
	require.ErrorContains(t, err, "decode patch")

	_, err = DecodePatch([]byte(`not json`))
	require.Error(t, err)
}

func TestPatch_IsEmpty(t *testing.T) {
	assert.True(t, Patch{}.IsEmpty())
	assert.False(t, Patch{DeviceUUID: Some("d")}.IsEmpty())
	assert.False(t, Patch{AuthKey: Some("k")}.IsEmpty())
	assert.False(t, Patch{AccessToken: Some(AccessToken{})}.IsEmpty(), "a present token always applies")
}

func TestOptional_Accessors(t *testing.T) {
	var o Optional[string]
	assert.True(t, o.IsZero())
	assert.Equal(t, "fallback", o.OrElse("fallback"))

	o = Some("")
	v, ok := o.Get()
	assert.True(t, ok)
	assert.Empty(t, v)

	assert.False(t, None[int]().IsSet())
}
