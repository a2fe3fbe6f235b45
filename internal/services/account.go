package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/dmitrijs2005/carpool/internal/kv"
	"github.com/dmitrijs2005/carpool/internal/logging"
	"github.com/dmitrijs2005/carpool/internal/models"
	"github.com/dmitrijs2005/carpool/internal/repositories/users"
)

// LoginInput is the login/registration form. PhotoPath is an optional image
// file; it is only read when the email is new.
type LoginInput struct {
	Prenom    string `validate:"required"`
	Nom       string `validate:"required"`
	Email     string `validate:"required,email"`
	Tel       string `validate:"required"`
	PhotoPath string
}

// AccountService manages the session and the logged-in user's addresses.
type AccountService interface {
	Login(ctx context.Context, in LoginInput) (*models.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
	RequireAddresses(user *models.User) error
	UpdateAddresses(ctx context.Context, home, work string) (*models.User, error)
}

type accountService struct {
	store  kv.Store
	logger logging.Logger
}

func NewAccountService(store kv.Store, logger logging.Logger) AccountService {
	return &accountService{store: store, logger: logger}
}

// readFile is a test seam.
var readFile = os.ReadFile

func usersRepo(s kv.Store) users.Directory {
	return users.NewKVDirectory(s)
}

// Login signs in an existing user by email, or registers a new one with empty
// addresses. An existing record is used as stored; the form's other fields
// are ignored for it.
func (a *accountService) Login(ctx context.Context, in LoginInput) (*models.User, error) {
	in.Prenom = strings.TrimSpace(in.Prenom)
	in.Nom = strings.TrimSpace(in.Nom)
	in.Email = strings.TrimSpace(in.Email)
	in.Tel = strings.TrimSpace(in.Tel)
	in.PhotoPath = strings.TrimSpace(in.PhotoPath)

	if err := models.Validate(in); err != nil {
		return nil, err
	}

	var user *models.User
	err := a.store.Atomically(ctx, func(ctx context.Context, s kv.Store) error {
		dir := usersRepo(s)

		existing, err := dir.FindByEmail(ctx, in.Email)
		if err != nil {
			return err
		}

		if existing == nil {
			photo := ""
			if in.PhotoPath != "" {
				photo, err = loadPhoto(in.PhotoPath)
				if err != nil {
					return err
				}
			}
			existing = &models.User{
				Email:  in.Email,
				Prenom: in.Prenom,
				Nom:    in.Nom,
				Tel:    in.Tel,
				Photo:  photo,
			}
			if err := dir.Upsert(ctx, *existing); err != nil {
				return err
			}
			a.logger.Info(ctx, "user registered", "email", existing.Email)
		}

		user = existing
		return dir.SetCurrent(ctx, *existing)
	})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	a.logger.Info(ctx, "user logged in", "email", user.Email)
	return user, nil
}

func (a *accountService) Logout(ctx context.Context) error {
	if err := usersRepo(a.store).ClearCurrent(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	a.logger.Info(ctx, "user logged out")
	return nil
}

func (a *accountService) CurrentUser(ctx context.Context) (*models.User, error) {
	user, err := usersRepo(a.store).Current(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotLoggedIn
	}
	return user, nil
}

func (a *accountService) RequireAddresses(user *models.User) error {
	if user == nil {
		return ErrNotLoggedIn
	}
	if !user.HasAddresses() {
		return ErrAddressesRequired
	}
	return nil
}

// UpdateAddresses stores new home/work addresses in the directory and
// rewrites the session snapshot in the same transaction, keeping both in sync.
func (a *accountService) UpdateAddresses(ctx context.Context, home, work string) (*models.User, error) {
	home, work = strings.TrimSpace(home), strings.TrimSpace(work)

	input := struct {
		Home string `validate:"required"`
		Work string `validate:"required"`
	}{home, work}
	if err := models.Validate(input); err != nil {
		return nil, err
	}

	var user *models.User
	err := a.store.Atomically(ctx, func(ctx context.Context, s kv.Store) error {
		dir := usersRepo(s)

		current, err := dir.Current(ctx)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrNotLoggedIn
		}

		current.Home = home
		current.Work = work

		if err := dir.Upsert(ctx, *current); err != nil {
			return err
		}
		if err := dir.SetCurrent(ctx, *current); err != nil {
			return err
		}
		user = current
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update addresses: %w", err)
	}

	a.logger.Info(ctx, "addresses updated", "email", user.Email)
	return user, nil
}

// loadPhoto reads an image file into a data URL.
func loadPhoto(path string) (string, error) {
	data, err := readFile(path)
	if err != nil {
		return "", fmt.Errorf("read photo: %w", err)
	}
	return EncodePhoto(data), nil
}

// EncodePhoto encodes raw image bytes as a "data:<mime>;base64," URL.
func EncodePhoto(data []byte) string {
	mime := http.DetectContentType(data)
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
