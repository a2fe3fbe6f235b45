package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/carpool/internal/services"
	"github.com/dmitrijs2005/carpool/internal/views"
)

// Login prompts for the registration form and opens a session. A new user
// lands on the address gate.
func (a *App) Login(ctx context.Context) error {
	var in services.LoginInput
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Prénom", &in.Prenom},
		{"Nom", &in.Nom},
		{"Email", &in.Email},
		{"Téléphone", &in.Tel},
		{"Photo (chemin d'un fichier image, optionnel)", &in.PhotoPath},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	user, err := a.accountService.Login(ctx, in)
	if err != nil {
		return err
	}
	a.user = user

	if !user.HasAddresses() {
		fmt.Fprint(a.out, views.AddressGate(*user))
		return nil
	}
	fmt.Fprint(a.out, views.Profile(*user))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.accountService.Logout(ctx); err != nil {
		return err
	}
	a.user = nil
	a.lastMap = nil
	fmt.Fprintln(a.out, "Déconnecté.")
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	if a.user == nil {
		return services.ErrNotLoggedIn
	}
	fmt.Fprint(a.out, views.Profile(*a.user))
	return nil
}

// Addresses asks for home and work, offering address suggestions. An empty
// answer keeps the current value.
func (a *App) Addresses(ctx context.Context) error {
	if a.user == nil {
		return services.ErrNotLoggedIn
	}

	home, err := a.readAddress(ctx, "Adresse domicile", a.user.Home)
	if err != nil {
		return err
	}
	work, err := a.readAddress(ctx, "Adresse travail", a.user.Work)
	if err != nil {
		return err
	}

	user, err := a.accountService.UpdateAddresses(ctx, home, work)
	if err != nil {
		return err
	}
	a.user = user

	fmt.Fprint(a.out, views.Profile(*user))
	return nil
}
