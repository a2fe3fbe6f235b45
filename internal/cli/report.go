package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/carpool/internal/common"
	"github.com/dmitrijs2005/carpool/internal/services"
	"github.com/dmitrijs2005/carpool/internal/views"
)

// userMessage maps known errors to the text shown in the shell.
func userMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrNotLoggedIn):
		return "Veuillez vous connecter (commande 'login')."
	case errors.Is(err, services.ErrAddressesRequired):
		return "Veuillez renseigner vos adresses domicile et travail."
	case errors.Is(err, common.ErrAddressNotFound):
		return views.NotFound
	case errors.Is(err, common.ErrValidation):
		return "Champs invalides : " + err.Error()
	default:
		return "Erreur : " + err.Error()
	}
}

func (a *App) report(ctx context.Context, err error) {
	a.logger.Debug(ctx, "command failed", "error", err)
	fmt.Fprintln(a.out, userMessage(err))
}
