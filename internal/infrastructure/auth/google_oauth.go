package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/galvital/YogaMoves/domain"
)

const userinfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleOAuthProvider implements domain.OAuthProvider against Google's
// OAuth2 endpoints. The caller decides what to do with the asserted profile;
// this type only exchanges and fetches.
type GoogleOAuthProvider struct {
	config *oauth2.Config
}

// NewGoogleOAuthProvider creates a new Google OAuth provider
func NewGoogleOAuthProvider(clientID, clientSecret, redirectURI string) *GoogleOAuthProvider {
	return &GoogleOAuthProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       []string{"profile", "email"},
			Endpoint:     google.Endpoint,
		},
	}
}

// AuthCodeURL implements domain.OAuthProvider
func (p *GoogleOAuthProvider) AuthCodeURL() string {
	return p.config.AuthCodeURL("", oauth2.AccessTypeOffline)
}

// FetchUser exchanges the authorization code and loads the userinfo profile.
func (p *GoogleOAuthProvider) FetchUser(ctx context.Context, code string) (*domain.OAuthUserInfo, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrOAuthExchange, err)
	}

	client := p.config.Client(ctx, token)
	resp, err := client.Get(userinfoEndpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrOAuthExchange, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: userinfo status %d", domain.ErrOAuthExchange, resp.StatusCode)
	}

	var info struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrOAuthExchange, err)
	}
	if info.ID == "" || info.Email == "" {
		return nil, fmt.Errorf("%w: missing required userinfo fields", domain.ErrOAuthExchange)
	}

	return &domain.OAuthUserInfo{
		ID:      info.ID,
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
	}, nil
}

var _ domain.OAuthProvider = (*GoogleOAuthProvider)(nil)
