package auth

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"matchday-backend/internal/apperr"
	"matchday-backend/internal/config"
	"matchday-backend/internal/httpapi"
	"matchday-backend/internal/models"
)

const stateCookie = "oauth_state"

// POST /api/auth/register
func Register(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name     string `json:"name" binding:"required"`
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required,min=6"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			httpapi.Fail(c, apperr.Wrap(apperr.KindValidation, apperr.CodeInvalidRequest, err))
			return
		}
		u, pair, err := svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"user":         u,
			"accessToken":  pair.AccessToken,
			"refreshToken": pair.RefreshToken,
		})
	}
}

// POST /api/auth/login
func Login(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			httpapi.Fail(c, apperr.Wrap(apperr.KindValidation, apperr.CodeInvalidRequest, err))
			return
		}
		u, pair, err := svc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"user":         u,
			"accessToken":  pair.AccessToken,
			"refreshToken": pair.RefreshToken,
		})
	}
}

// POST /api/auth/refresh
func Refresh(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			RefreshToken string `json:"refreshToken" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			httpapi.Fail(c, apperr.Wrap(apperr.KindValidation, apperr.CodeInvalidRequest, err))
			return
		}
		pair, err := svc.Refresh(c.Request.Context(), req.RefreshToken)
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, pair)
	}
}

// GET /api/auth/me
func Me(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := svc.Me(c.Request.Context(), httpapi.UserID(c))
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

// GET /api/auth/:provider — redirects to the provider consent page with
// a one-shot state cookie.
func OAuthStart(p *Providers, cfg config.Config, provider models.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := newState()
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		authURL, err := p.AuthURL(provider, state)
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		c.SetCookie(stateCookie, state, 600, "/", "", cfg.CookieSecure, true)
		c.Redirect(http.StatusTemporaryRedirect, authURL)
	}
}

// GET /api/auth/:provider/callback — completes the flow and hands the
// tokens back to the frontend via redirect.
func OAuthCallback(p *Providers, svc *Service, cfg config.Config, provider models.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		wanted, err := c.Cookie(stateCookie)
		if err != nil || wanted == "" || c.Query("state") != wanted {
			redirectError(c, cfg, "invalid_state")
			return
		}
		c.SetCookie(stateCookie, "", -1, "/", "", cfg.CookieSecure, true)

		code := c.Query("code")
		if code == "" {
			redirectError(c, cfg, "missing_code")
			return
		}

		profile, err := p.Exchange(c.Request.Context(), provider, code)
		if err != nil {
			redirectError(c, cfg, apperr.From(err).Code)
			return
		}
		_, pair, err := svc.OAuthLogin(c.Request.Context(), profile)
		if err != nil {
			redirectError(c, cfg, apperr.From(err).Code)
			return
		}

		q := url.Values{}
		q.Set("accessToken", pair.AccessToken)
		q.Set("refreshToken", pair.RefreshToken)
		c.Redirect(http.StatusTemporaryRedirect, cfg.FrontendURL+"/auth/callback?"+q.Encode())
	}
}

func redirectError(c *gin.Context, cfg config.Config, message string) {
	c.Redirect(http.StatusTemporaryRedirect,
		cfg.FrontendURL+"/auth/error?message="+url.QueryEscape(message))
}
