package server

// Route path constants
const (
	// Auth routes
	RouteProviders           = "/auth/providers"
	RouteCredentialsCallback = "/auth/callback/credentials"
	RouteProviderSignIn      = "/auth/signin/{provider}"
	RouteProviderCallback    = "/auth/callback/{provider}"
	RouteSession             = "/auth/session"
	RouteSignOut             = "/auth/signout"

	RouteHealth = "/healthz"

	// Storefront routes
	RouteProducts   = "/api/products"
	RouteProduct    = "/api/products/{id}"
	RouteCategories = "/api/categories"
	RouteBrands     = "/api/brands"

	// Account routes
	RouteMyOrders = "/api/account/orders"
	RouteCheckout = "/api/checkout"

	// Admin routes
	RouteAdminCollection = "/api/admin/{resource}"
	RouteAdminItem       = "/api/admin/{resource}/{id}"
)

// Error codes placed on the sign-in page redirect.
const (
	ErrorCodeCredentialsSignin = "CredentialsSignin"
	ErrorCodeAccessDenied      = "AccessDenied"
	ErrorCodeOAuthSignin       = "OAuthSignin"
)

const credentialsErrorMessage = "Email or password is incorrect."
