package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Email string   `json:"email"`
	Tags  []string `json:"tags"`
}

func TestJSON_RoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	in := []record{{Email: "a@x.com", Tags: []string{"x"}}, {Email: "b@x.com"}}

	require.NoError(t, SetJSON(ctx, s, "records", in))

	var out []record
	found, err := GetJSON(ctx, s, "records", &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, in, out)
}

func TestGetJSON_AbsentAndNull(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	out := []record{{Email: "untouched"}}
	found, err := GetJSON(ctx, s, "missing", &out)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "untouched", out[0].Email)

	require.NoError(t, s.Set(ctx, "nulled", []byte("null")))
	found, err = GetJSON(ctx, s, "nulled", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetJSON_CorruptValue(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "users", []byte("{oops")))

	var out []record
	_, err := GetJSON(ctx, s, "users", &out)
	require.ErrorContains(t, err, "failed to decode kv[users]")
}
