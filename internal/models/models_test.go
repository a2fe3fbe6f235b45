package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/carpool/internal/common"
)

func TestCoordinateKey(t *testing.T) {
	assert.Equal(t, "48.8566,2.3522", Coordinate{Lat: 48.8566, Lon: 2.3522}.Key())
	assert.Equal(t, "45,-0.5", Coordinate{Lat: 45, Lon: -0.5}.Key())
	assert.NotEqual(t,
		Coordinate{Lat: 48.8566, Lon: 2.3522}.Key(),
		Coordinate{Lat: 48.85660001, Lon: 2.3522}.Key(),
	)
}

func TestBounds(t *testing.T) {
	var b Bounds
	require.False(t, b.Valid())

	b.Extend(Coordinate{Lat: 48.8, Lon: 2.3})
	require.True(t, b.Valid())
	assert.Equal(t, b.SouthWest, b.NorthEast)

	b.Extend(Coordinate{Lat: 45.7, Lon: 4.8})
	b.Extend(Coordinate{Lat: 47.2, Lon: -1.5})

	assert.Equal(t, Coordinate{Lat: 45.7, Lon: -1.5}, b.SouthWest)
	assert.Equal(t, Coordinate{Lat: 48.8, Lon: 4.8}, b.NorthEast)
	assert.InDelta(t, 47.25, b.Center().Lat, 1e-9)
	assert.InDelta(t, 1.65, b.Center().Lon, 1e-9)
}

func TestUserHelpers(t *testing.T) {
	u := User{Prenom: "Ada", Nom: "Lovelace", Home: "1 rue A", Work: " "}
	assert.Equal(t, "Ada Lovelace", u.FullName())
	assert.False(t, u.HasAddresses())

	u.Work = "2 rue B"
	assert.True(t, u.HasAddresses())
}

func TestJSONFieldNames(t *testing.T) {
	b, err := json.Marshal(Trip{UserEmail: "a@x.com", From: "A", To: "B", Date: "2025-01-02", Time: "08:00"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"userEmail":"a@x.com","from":"A","to":"B","date":"2025-01-02","time":"08:00"}`, string(b))

	b, err = json.Marshal(Comment{TargetEmail: "a@x.com", AuthorName: "Bob B", Text: "ponctuel"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"targetEmail":"a@x.com","authorName":"Bob B","text":"ponctuel"}`, string(b))
}

func TestValidate(t *testing.T) {
	err := Validate(User{Email: "a@x.com", Prenom: "A", Nom: "B", Tel: "0600000000"})
	require.NoError(t, err)

	err = Validate(User{Email: "not-an-email", Prenom: "A"})
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, err.Error(), "email (email)")
	assert.Contains(t, err.Error(), "nom (required)")
	assert.Contains(t, err.Error(), "tel (required)")

	err = Validate(Trip{UserEmail: "a@x.com", From: "A", To: "B", Date: "d", Time: "t", Video: "nope"})
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, err.Error(), "video (url)")

	require.NoError(t, Validate(Trip{UserEmail: "a@x.com", From: "A", To: "B", Date: "d", Time: "t"}))
	require.ErrorIs(t, Validate(Comment{TargetEmail: "a@x.com", AuthorName: "A"}), common.ErrValidation)
}
