package auth

import (
	"context"
	crand "crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/google"

	"matchday-backend/internal/apperr"
	"matchday-backend/internal/config"
	"matchday-backend/internal/models"
)

// Providers holds the configured OAuth flows, keyed by provider name.
type Providers struct {
	configs map[models.Provider]*oauth2.Config
}

func NewProviders(cfg config.Config) *Providers {
	callback := func(p models.Provider) string {
		return cfg.PublicURL + "/api/auth/" + string(p) + "/callback"
	}
	return &Providers{configs: map[models.Provider]*oauth2.Config{
		models.ProviderGoogle: {
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			Endpoint:     google.Endpoint,
			RedirectURL:  callback(models.ProviderGoogle),
			Scopes:       []string{"openid", "email", "profile"},
		},
		models.ProviderFacebook: {
			ClientID:     cfg.FacebookClientID,
			ClientSecret: cfg.FacebookClientSecret,
			Endpoint:     facebook.Endpoint,
			RedirectURL:  callback(models.ProviderFacebook),
			Scopes:       []string{"email", "public_profile"},
		},
		models.ProviderDiscord: {
			ClientID:     cfg.DiscordClientID,
			ClientSecret: cfg.DiscordClientSecret,
			Endpoint:     endpoints.Discord,
			RedirectURL:  callback(models.ProviderDiscord),
			Scopes:       []string{"identify", "email"},
		},
	}}
}

func (p *Providers) config(provider models.Provider) (*oauth2.Config, error) {
	cfg, ok := p.configs[provider]
	if !ok || cfg.ClientID == "" {
		return nil, apperr.WithArgs(apperr.KindNotFound, apperr.CodeInvalidRequest,
			map[string]string{"provider": string(provider)})
	}
	return cfg, nil
}

// AuthURL builds the provider consent URL for the given state.
func (p *Providers) AuthURL(provider models.Provider, state string) (string, error) {
	cfg, err := p.config(provider)
	if err != nil {
		return "", err
	}
	return cfg.AuthCodeURL(state), nil
}

// Exchange trades the callback code for a token and fetches the user's
// profile from the provider.
func (p *Providers) Exchange(ctx context.Context, provider models.Provider, code string) (Profile, error) {
	cfg, err := p.config(provider)
	if err != nil {
		return Profile{}, err
	}
	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return Profile{}, apperr.Wrap(apperr.KindUnauthorized, apperr.CodeInvalidCredentials, err)
	}
	return fetchProfile(ctx, provider, cfg.Client(ctx, token))
}

func fetchProfile(ctx context.Context, provider models.Provider, client *http.Client) (Profile, error) {
	switch provider {
	case models.ProviderGoogle:
		var v struct {
			ID      string `json:"id"`
			Email   string `json:"email"`
			Name    string `json:"name"`
			Picture string `json:"picture"`
		}
		if err := getJSON(ctx, client, "https://www.googleapis.com/oauth2/v2/userinfo", &v); err != nil {
			return Profile{}, err
		}
		return Profile{
			Provider:   provider,
			ProviderID: v.ID,
			Email:      v.Email,
			Name:       v.Name,
			AvatarURL:  nonEmpty(v.Picture),
		}, nil

	case models.ProviderFacebook:
		var v struct {
			ID      string `json:"id"`
			Email   string `json:"email"`
			Name    string `json:"name"`
			Picture struct {
				Data struct {
					URL string `json:"url"`
				} `json:"data"`
			} `json:"picture"`
		}
		if err := getJSON(ctx, client,
			"https://graph.facebook.com/me?fields=id,name,email,picture.type(large)", &v); err != nil {
			return Profile{}, err
		}
		return Profile{
			Provider:   provider,
			ProviderID: v.ID,
			Email:      v.Email,
			Name:       v.Name,
			AvatarURL:  nonEmpty(v.Picture.Data.URL),
		}, nil

	case models.ProviderDiscord:
		var v struct {
			ID       string `json:"id"`
			Email    string `json:"email"`
			Username string `json:"username"`
			Avatar   string `json:"avatar"`
		}
		if err := getJSON(ctx, client, "https://discord.com/api/users/@me", &v); err != nil {
			return Profile{}, err
		}
		var avatar *string
		if v.Avatar != "" {
			u := fmt.Sprintf("https://cdn.discordapp.com/avatars/%s/%s.png", v.ID, v.Avatar)
			avatar = &u
		}
		return Profile{
			Provider:   provider,
			ProviderID: v.ID,
			Email:      v.Email,
			Name:       v.Username,
			AvatarURL:  avatar,
		}, nil
	}
	return Profile{}, apperr.New(apperr.KindInternal, apperr.CodeInternal)
}

func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return apperr.Wrap(apperr.KindUnauthorized, apperr.CodeInvalidCredentials, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return apperr.Wrap(apperr.KindUnauthorized, apperr.CodeInvalidCredentials,
			fmt.Errorf("userinfo returned %d", resp.StatusCode))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func newState() (string, error) {
	var b [24]byte
	if _, err := crand.Read(b[:]); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b[:]), nil
}
