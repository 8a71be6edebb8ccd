package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"matchday-backend/internal/auth"
	"matchday-backend/internal/cache"
	"matchday-backend/internal/config"
	"matchday-backend/internal/db"
	"matchday-backend/internal/httpapi"
	"matchday-backend/internal/matches"
	"matchday-backend/internal/models"
	"matchday-backend/internal/plans"
	"matchday-backend/internal/users"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	pool := db.MustPool(cfg.DatabaseURL)
	defer pool.Close()
	db.MustMigrate(cfg.DatabaseURL)

	catalog := plans.MustLoad(context.Background(), pool)

	var planCache cache.Cache
	if cfg.RedisAddr != "" {
		r := cache.NewRedis(cfg.RedisAddr)
		if err := r.Ping(context.Background()); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable")
		}
		planCache = r
		log.Info().Str("addr", cfg.RedisAddr).Msg("using redis plan cache")
	} else {
		planCache = cache.NewMemory()
		log.Info().Msg("using in-memory plan cache")
	}

	userRepo := users.NewRepository(pool)
	matchRepo := matches.NewRepository(pool)

	entitlements := plans.NewEntitlements(catalog, userRepo, planCache, cfg.PlanCacheTTL)
	userSvc := users.NewService(userRepo, entitlements)
	matchSvc := matches.NewService(matchRepo, entitlements)

	issuer := auth.NewTokenIssuer(cfg)
	authSvc := auth.NewService(userSvc, userRepo, issuer)
	providers := auth.NewProviders(cfg)

	r := gin.New()
	r.Use(gin.Recovery(), httpapi.RequestLogger())

	api := r.Group("/api")
	{
		api.POST("/auth/register", auth.Register(authSvc))
		api.POST("/auth/login", auth.Login(authSvc))
		api.POST("/auth/refresh", auth.Refresh(authSvc))
		api.GET("/auth/me", auth.Middleware(issuer), auth.Me(authSvc))

		for _, p := range []models.Provider{
			models.ProviderGoogle, models.ProviderFacebook, models.ProviderDiscord,
		} {
			api.GET("/auth/"+string(p), auth.OAuthStart(providers, cfg, p))
			api.GET("/auth/"+string(p)+"/callback", auth.OAuthCallback(providers, authSvc, cfg, p))
		}

		api.POST("/users", users.Create(userSvc))

		api.GET("/plans", plans.List(catalog))
		api.GET("/plans/compare", plans.Compare(catalog))
		api.GET("/plans/:id", plans.Get(catalog))

		authed := api.Group("", auth.Middleware(issuer))
		{
			authed.GET("/plans/my-plan", plans.MyPlan(entitlements, matchRepo))
			authed.GET("/plans/upgrade-options", plans.UpgradeOptions(entitlements))

			authed.GET("/users", users.List(userSvc))
			authed.GET("/users/me", users.Me(userSvc))
			authed.PATCH("/users/me", users.UpdateMe(userSvc))
			authed.GET("/users/:id", users.Get(userSvc))
			authed.POST("/users/me/change-password", users.ChangePassword(userSvc))
			authed.POST("/users/:id/plan", users.ChangePlan(userSvc))
			authed.POST("/users/:id/upgrade", users.Upgrade(userSvc))
			authed.POST("/users/:id/downgrade", users.Downgrade(userSvc))

			authed.POST("/matches", matches.Create(matchSvc))
			authed.GET("/matches", matches.List(matchSvc))
			authed.GET("/matches/:id", matches.Get(matchSvc))
			authed.PATCH("/matches/:id", matches.Update(matchSvc))
			authed.DELETE("/matches/:id", matches.Delete(matchSvc))
			authed.POST("/matches/:id/teams", matches.CreateTeamsManual(matchSvc))
			authed.POST("/matches/:id/teams/random", matches.CreateTeamsRandom(matchSvc))

			admin := authed.Group("", auth.RequireAdmin())
			{
				admin.PATCH("/users/:id", users.Update(userSvc))
				admin.DELETE("/users/:id", users.Delete(userSvc))
			}
		}
	}

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("listening")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
