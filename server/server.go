package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/jrsteele09/go-storefront/catalog"
	"github.com/jrsteele09/go-storefront/internal/config"
	"github.com/jrsteele09/go-storefront/provider"
	"github.com/jrsteele09/go-storefront/session"
	"github.com/jrsteele09/go-storefront/signin"
	"github.com/rs/zerolog/log"
)

// Deps are the collaborators the HTTP surface is built on.
type Deps struct {
	Sessions  *session.Manager
	Exchanger *signin.Exchanger
	Providers *provider.Registry
	Catalog   *catalog.Services
	// Enforcer defaults to the built-in role policy.
	Enforcer *casbin.Enforcer
}

type Server struct {
	env       string // Environment (e.g., "DEV", "PROD")
	mux       *http.ServeMux
	routes    []string
	config    config.Config
	sessions  *session.Manager
	exchanger *signin.Exchanger
	providers *provider.Registry
	catalog   *catalog.Services
	enforcer  *casbin.Enforcer
}

func New(cfg config.Config, deps Deps) (*Server, error) {
	if deps.Sessions == nil || deps.Exchanger == nil || deps.Providers == nil || deps.Catalog == nil {
		return nil, fmt.Errorf("[Server New] sessions, exchanger, providers and catalog are required")
	}

	enforcer := deps.Enforcer
	if enforcer == nil {
		var err error
		if enforcer, err = NewEnforcer(); err != nil {
			return nil, fmt.Errorf("[Server New] failed to create role enforcer: %w", err)
		}
	}

	s := &Server{
		env:       cfg.GetEnv(),
		mux:       http.NewServeMux(),
		config:    cfg,
		sessions:  deps.Sessions,
		exchanger: deps.Exchanger,
		providers: deps.Providers,
		catalog:   deps.Catalog,
		enforcer:  enforcer,
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// Routes returns the registered route patterns in registration order.
func (s *Server) Routes() []string {
	return append([]string(nil), s.routes...)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		method, path, found := strings.Cut(route, " ")
		if !found {
			method, path = "", route
		}
		log.Debug().Msg(colourRoute(method, path))
	}
}

// getScheme returns the scheme the client used, honouring a TLS-terminating proxy.
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
