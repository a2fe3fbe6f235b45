package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/carpool/internal/views"
)

// User shows the public profile behind a map or trip-list entry.
func (a *App) User(ctx context.Context, email string) error {
	p, err := a.profileService.PublicProfile(ctx, email)
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, views.PublicProfile(p.Email, p.User, p.Comments))
	return nil
}

// Comment posts a public comment on email's profile and shows the profile.
func (a *App) Comment(ctx context.Context, email string) error {
	text, err := getSimpleText(a.reader, "Laisser un commentaire public", a.out)
	if err != nil {
		return err
	}
	if _, err := a.profileService.AddComment(ctx, email, text); err != nil {
		return err
	}
	return a.User(ctx, email)
}
