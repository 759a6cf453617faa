package main

import (
	"context"
	"fmt"

	"github.com/jrsteele09/go-storefront/apiclient"
	"github.com/jrsteele09/go-storefront/backend"
	"github.com/jrsteele09/go-storefront/catalog"
	"github.com/jrsteele09/go-storefront/internal/config"
	"github.com/jrsteele09/go-storefront/provider"
	"github.com/jrsteele09/go-storefront/server"
	"github.com/jrsteele09/go-storefront/session"
	"github.com/jrsteele09/go-storefront/signin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// app holds the wired server and anything that must be released on shutdown.
type app struct {
	server  *server.Server
	closers []func() error
}

func (a *app) close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			log.Err(err).Msg("shutdown")
		}
	}
}

func newApp(ctx context.Context, c config.Config) (*app, error) {
	a := &app{}

	store, err := newSessionStore(ctx, c, a)
	if err != nil {
		return nil, err
	}

	codec, err := session.NewCodec(c.GetAuthSecret(), c.GetSessionMaxAge())
	if err != nil {
		return nil, err
	}

	exchanger, err := signin.NewExchanger(backend.NewClient(c.GetAPIURL(), backend.WithTimeout(c.GetBackendTimeout())))
	if err != nil {
		return nil, err
	}
	sessions := session.NewManager(session.NewChain(exchanger), codec, store)

	api, err := apiclient.NewClient(c.GetAPIURL(), sessions, apiclient.WithTimeout(c.GetBackendTimeout()))
	if err != nil {
		return nil, err
	}

	providers, err := newProviders(ctx, c)
	if err != nil {
		return nil, err
	}

	srv, err := server.New(c, server.Deps{
		Sessions:  sessions,
		Exchanger: exchanger,
		Providers: providers,
		Catalog:   catalog.NewServices(api),
	})
	if err != nil {
		return nil, err
	}
	a.server = srv
	return a, nil
}

// newSessionStore uses Redis when REDIS_ADDR is set, otherwise an in-process store.
func newSessionStore(ctx context.Context, c config.Config, a *app) (session.Store, error) {
	if c.GetRedisAddr() == "" {
		log.Warn().Msg("REDIS_ADDR not set, sessions are kept in memory")
		return session.NewMemoryStore(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     c.GetRedisAddr(),
		Password: c.GetRedisPassword(),
		DB:       c.GetRedisDB(),
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("[newSessionStore] redis ping %s: %w", c.GetRedisAddr(), err)
	}
	a.closers = append(a.closers, client.Close)
	log.Info().Str("addr", c.GetRedisAddr()).Msg("sessions are kept in redis")
	return session.NewRedisStore(client), nil
}

func newProviders(ctx context.Context, c config.Config) (*provider.Registry, error) {
	registry := provider.NewRegistry()
	callback := func(name string) string {
		return c.GetBaseURL() + "/auth/callback/" + name
	}

	gh := c.GetGitHubCredentials()
	if err := registry.Use(provider.NewGitHub(provider.Config{
		ClientID:     gh.ClientID,
		ClientSecret: gh.ClientSecret,
		RedirectURL:  callback(provider.GitHubName),
	})); err != nil {
		return nil, err
	}

	g := c.GetGoogleCredentials()
	google, err := provider.NewGoogle(ctx, provider.Config{
		ClientID:     g.ClientID,
		ClientSecret: g.ClientSecret,
		RedirectURL:  callback(provider.GoogleName),
	})
	if err != nil {
		// Discovery needs the network. Keep serving credentials and GitHub sign-in.
		log.Error().Err(err).Msg("google sign-in unavailable")
		return registry, nil
	}
	if err := registry.Use(google); err != nil {
		return nil, err
	}
	return registry, nil
}
