// Package models defines the carpool records persisted in the key-value store
// and the coordinate type shared by geocoding and the map view.
package models

import "strings"

// User is keyed by Email; every other field is replaced wholesale on upsert.
type User struct {
	Email  string `json:"email" validate:"required,email"`
	Prenom string `json:"prenom" validate:"required"`
	Nom    string `json:"nom" validate:"required"`
	Tel    string `json:"tel" validate:"required"`
	// Photo is an opaque encoded image (a data: URL) or empty.
	Photo string `json:"photo"`
	Home  string `json:"home"`
	Work  string `json:"work"`
}

// FullName is "prenom nom", the label shown on markers and comments.
func (u User) FullName() string {
	return strings.TrimSpace(u.Prenom + " " + u.Nom)
}

// HasAddresses reports whether both home and work are set.
func (u User) HasAddresses() bool {
	return strings.TrimSpace(u.Home) != "" && strings.TrimSpace(u.Work) != ""
}

// Trip is an append-only ledger record; it has no identity beyond its
// position in the ledger.
type Trip struct {
	UserEmail string `json:"userEmail" validate:"required"`
	From      string `json:"from" validate:"required"`
	To        string `json:"to" validate:"required"`
	Date      string `json:"date" validate:"required"`
	Time      string `json:"time" validate:"required"`
	Video     string `json:"video,omitempty" validate:"omitempty,url"`
}

// Comment is a public note left on TargetEmail's profile. AuthorName is a
// snapshot of the author's name at posting time.
type Comment struct {
	TargetEmail string `json:"targetEmail" validate:"required"`
	AuthorName  string `json:"authorName" validate:"required"`
	Text        string `json:"text" validate:"required"`
}
