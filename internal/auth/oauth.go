// Package auth performs the GitHub OAuth code exchange that produces
// login assertions for the identity service.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

// GithubUser is the subset of GitHub's /user response the hub consumes.
type GithubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Email     string `json:"email"`      // empty when hidden in GitHub settings
	AvatarURL string `json:"avatar_url"` // may carry a cache-busting query fragment
}

// GithubProvider wraps the GitHub authorization-code flow.
type GithubProvider struct {
	config  *oauth2.Config
	userAPI string
}

// NewGithubProvider creates a provider for the registered OAuth app.
// callbackURL must match the app's configured authorization callback exactly.
func NewGithubProvider(clientID, clientSecret, callbackURL string) *GithubProvider {
	return &GithubProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     github.Endpoint,
		},
		userAPI: "https://api.github.com/user",
	}
}

// AuthURL returns the GitHub authorization URL for the given CSRF state.
func (p *GithubProvider) AuthURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades an authorization code for the authenticated GitHub user.
// The code-for-token exchange and the /user call both happen server-side;
// the token never leaves this process.
func (p *GithubProvider) Exchange(ctx context.Context, code string) (*GithubUser, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code: %w", err)
	}

	resp, err := p.config.Client(ctx, token).Get(p.userAPI)
	if err != nil {
		return nil, fmt.Errorf("failed to call github user api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github user api returned status %d", resp.StatusCode)
	}

	var user GithubUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode github user response: %w", err)
	}
	if user.ID == 0 {
		return nil, fmt.Errorf("github returned an invalid user")
	}

	return &user, nil
}
