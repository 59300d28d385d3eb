// Package google resolves Google access tokens into verified identities.
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/dtroode/countries-api/internal/model"
)

const (
	// DefaultUserInfoURL is the OpenID Connect userinfo endpoint of Google.
	DefaultUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"
	defaultTimeout     = 10 * time.Second
)

var (
	ErrIncompleteProfile = errors.New("google profile has no subject or email")
	ErrUnverifiedEmail   = errors.New("google account email is not verified")
)

var _ model.IdentityProvider = (*Provider)(nil)

type Config struct {
	UserInfoURL string
	Timeout     time.Duration
	// HTTPClient is the base transport; nil uses a client with Timeout.
	HTTPClient *http.Client
}

// Provider exchanges a Google access token for the profile of its owner.
type Provider struct {
	userInfoURL string
	httpClient  *http.Client
}

func NewProvider(cfg Config) *Provider {
	if cfg.UserInfoURL == "" {
		cfg.UserInfoURL = DefaultUserInfoURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &Provider{
		userInfoURL: cfg.UserInfoURL,
		httpClient:  client,
	}
}

func (p *Provider) Name() string {
	return "google"
}

type userInfo struct {
	Sub           string `json:"sub"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}

// Exchange fetches the userinfo profile the access token grants access to.
func (p *Provider) Exchange(ctx context.Context, accessToken string) (model.FederatedIdentity, error) {
	if accessToken == "" {
		return model.FederatedIdentity{}, errors.New("empty google access token")
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return model.FederatedIdentity{}, fmt.Errorf("failed to build userinfo request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return model.FederatedIdentity{}, fmt.Errorf("failed to call google userinfo: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return model.FederatedIdentity{}, fmt.Errorf("google api returned status %d", resp.StatusCode)
	}

	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return model.FederatedIdentity{}, fmt.Errorf("failed to decode google userinfo: %w", err)
	}

	if info.Sub == "" || info.Email == "" {
		return model.FederatedIdentity{}, ErrIncompleteProfile
	}
	if !info.EmailVerified {
		return model.FederatedIdentity{}, ErrUnverifiedEmail
	}

	return model.FederatedIdentity{
		ID:    info.Sub,
		Name:  info.Name,
		Email: info.Email,
	}, nil
}
