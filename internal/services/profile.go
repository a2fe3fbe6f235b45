package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/carpool/internal/kv"
	"github.com/dmitrijs2005/carpool/internal/logging"
	"github.com/dmitrijs2005/carpool/internal/models"
	"github.com/dmitrijs2005/carpool/internal/repositories/comments"
)

// Profile is a user's public page. User is nil when no user has the email;
// comments left on that email are still returned.
type Profile struct {
	Email    string
	User     *models.User
	Comments []models.Comment
}

type ProfileService interface {
	PublicProfile(ctx context.Context, email string) (*Profile, error)
	AddComment(ctx context.Context, targetEmail, text string) (*models.Comment, error)
}

type profileService struct {
	store    kv.Store
	accounts AccountService
	logger   logging.Logger
}

func NewProfileService(store kv.Store, accounts AccountService, logger logging.Logger) ProfileService {
	return &profileService{store: store, accounts: accounts, logger: logger}
}

func (p *profileService) getCommentRepo() comments.Ledger {
	return comments.NewKVLedger(p.store)
}

func (p *profileService) PublicProfile(ctx context.Context, email string) (*Profile, error) {
	email = strings.TrimSpace(email)

	user, err := usersRepo(p.store).FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	list, err := p.getCommentRepo().ListFor(ctx, email)
	if err != nil {
		return nil, err
	}
	return &Profile{Email: email, User: user, Comments: list}, nil
}

// AddComment posts text on targetEmail's profile, signed with the current
// user's name as it is now.
func (p *profileService) AddComment(ctx context.Context, targetEmail, text string) (*models.Comment, error) {
	author, err := p.accounts.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	c := models.Comment{
		TargetEmail: strings.TrimSpace(targetEmail),
		AuthorName:  author.FullName(),
		Text:        strings.TrimSpace(text),
	}
	if err := models.Validate(c); err != nil {
		return nil, err
	}

	if err := p.getCommentRepo().Add(ctx, c); err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}

	p.logger.Info(ctx, "comment added", "target", c.TargetEmail, "author", author.Email)
	return &c, nil
}
