package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/gigbridge/gigbridge/internal/config"
	"github.com/gigbridge/gigbridge/internal/fault"
	"github.com/gigbridge/gigbridge/internal/models"
	"github.com/google/go-github/v68/github"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	githuboauth "golang.org/x/oauth2/github"
	"gorm.io/gorm"
)

const providerGitHub = "github"

// GitHubAuthenticator exchanges OAuth authorization codes for GitHub
// identities and maps them to marketplace users.
type GitHubAuthenticator struct {
	cfg oauth2.Config
}

// NewGitHubAuthenticator builds an authenticator from the configured
// OAuth application credentials.
func NewGitHubAuthenticator(gh config.GitHubConfig) *GitHubAuthenticator {
	return &GitHubAuthenticator{
		cfg: oauth2.Config{
			ClientID:     gh.ClientID,
			ClientSecret: gh.ClientSecret,
			RedirectURL:  gh.RedirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     githuboauth.Endpoint,
		},
	}
}

// AuthURL returns the GitHub consent page URL for the given state.
func (a *GitHubAuthenticator) AuthURL(state string) string {
	return a.cfg.AuthCodeURL(state)
}

// Login exchanges the authorization code, fetches the GitHub profile, and
// returns the linked user. A first-time login creates the user and its
// provider row; repeat logins refresh the stored access token.
func (a *GitHubAuthenticator) Login(ctx context.Context, db *gorm.DB, code string) (*models.User, error) {
	if code == "" {
		return nil, fmt.Errorf("auth: authorization code is required: %w", fault.ErrValidation)
	}

	token, err := a.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("auth: exchange code: %w", fault.ErrUnauthorized)
	}

	client := github.NewClient(a.cfg.Client(ctx, token))
	ghUser, _, err := client.Users.Get(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("auth: fetch github profile: %w", err)
	}
	login := ghUser.GetLogin()
	if login == "" {
		return nil, fmt.Errorf("auth: github profile has no login: %w", fault.ErrUnauthorized)
	}

	var user models.User
	err = db.Transaction(func(tx *gorm.DB) error {
		var provider models.AuthProvider
		err := tx.Where("provider = ? AND login = ?", providerGitHub, login).First(&provider).Error
		switch {
		case err == nil:
			if err := tx.Model(&provider).Update("access_token", token.AccessToken).Error; err != nil {
				return fmt.Errorf("refresh provider token: %w", err)
			}
			if err := tx.Where("id = ?", provider.UserID).First(&user).Error; err != nil {
				return fmt.Errorf("load provider user: %w", err)
			}
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			// First login: fall through to user creation.
		default:
			return fmt.Errorf("look up provider: %w", err)
		}

		email := ghUser.GetEmail()
		if email == "" {
			email = login + "@users.noreply.github.com"
		}
		user = models.User{
			ID:         uuid.NewString(),
			Email:      email,
			Name:       ghUser.GetName(),
			Photo:      ghUser.GetAvatarURL(),
			Searchable: true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		row := models.AuthProvider{
			ID:          uuid.NewString(),
			UserID:      user.ID,
			Provider:    providerGitHub,
			Login:       login,
			AccessToken: token.AccessToken,
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("create provider row: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("auth: github login: %w", err)
	}
	return &user, nil
}
