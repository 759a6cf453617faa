package server

import "net/http"

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())

	// AUTH
	s.RegisterRouteHandler("GET "+RouteProviders, ChainMiddleware(s.ProvidersHandler(), s.AuthMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteCredentialsCallback, ChainMiddleware(s.CredentialsSignInHandler(), s.AuthMiddleware(s.SameOriginMiddleware)...))
	s.RegisterRouteHandler("GET "+RouteProviderSignIn, ChainMiddleware(s.ProviderSignInHandler(), s.AuthMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteProviderCallback, ChainMiddleware(s.OAuthCallbackHandler(), s.AuthMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteSession, ChainMiddleware(s.SessionHandler(), s.AuthMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteSignOut, ChainMiddleware(s.SignOutHandler(), s.AuthMiddleware(s.SameOriginMiddleware)...))

	// STOREFRONT
	s.RegisterRouteHandler("GET "+RouteProducts, ChainMiddleware(s.ProductsHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteProduct, ChainMiddleware(s.ProductHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteCategories, ChainMiddleware(s.CategoriesHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteBrands, ChainMiddleware(s.BrandsHandler(), s.APIMiddleware()...))

	// ACCOUNT
	s.RegisterRouteHandler("GET "+RouteMyOrders, ChainMiddleware(s.MyOrdersHandler(), s.APIMiddleware(s.RequireSession, s.RequirePermission)...))
	s.RegisterRouteHandler("POST "+RouteCheckout, ChainMiddleware(s.CheckoutHandler(), s.APIMiddleware(s.RequireSession, s.RequirePermission)...))

	// ADMIN
	admin := ChainMiddleware(s.AdminHandler(), s.APIMiddleware(s.RequireSession, s.RequirePermission)...)
	s.RegisterRouteHandler("GET "+RouteAdminCollection, admin)
	s.RegisterRouteHandler("POST "+RouteAdminCollection, admin)
	s.RegisterRouteHandler("GET "+RouteAdminItem, admin)
	s.RegisterRouteHandler("PUT "+RouteAdminItem, admin)
	s.RegisterRouteHandler("DELETE "+RouteAdminItem, admin)

	// CORS preflight for the API
	s.RegisterRouteHandler("OPTIONS /api/", ChainMiddleware(func(w http.ResponseWriter, r *http.Request) {}, s.APIMiddleware()...))
}
