// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	coursesearchfeature "github.com/chalix/coursehub/internal/app/features/coursesearch"
	errorsfeature "github.com/chalix/coursehub/internal/app/features/errors"
	healthfeature "github.com/chalix/coursehub/internal/app/features/health"
	homefeature "github.com/chalix/coursehub/internal/app/features/home"
	loginfeature "github.com/chalix/coursehub/internal/app/features/login"
	teacherdashfeature "github.com/chalix/coursehub/internal/app/features/teacherdash"
	userstore "github.com/chalix/coursehub/internal/app/store/users"
	"github.com/chalix/coursehub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and Startup have completed. It creates the session manager, boots the
// template engine, and mounts the feature routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// LoadSessionUser fetches fresh user data on each request, so role
	// changes and disabled accounts take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase, logger))

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)
	errorsHandler := errorsfeature.NewHandler()

	r := chi.NewRouter()

	// Global middleware: session user loading plus CSRF protection for
	// all form posts. CSRF rejections render the access-denied page.
	r.Use(sessionMgr.LoadSessionUser)
	r.Use(csrf.Protect([]byte(appCfg.CSRFKey),
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.ErrorHandler(http.HandlerFunc(errorsHandler.Forbidden))))

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/healthz", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli).
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public pages.
	homeHandler := homefeature.NewHandler()
	r.Mount("/", homefeature.Routes(homeHandler))

	loginHandler := loginfeature.NewHandler(deps.MongoDatabase, sessionMgr, errLog, googleOAuth(appCfg), logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))
	r.Post("/logout", loginHandler.HandleLogout)

	// Course search: HTML page and the JSON widget endpoint. Both are
	// public; results are filtered per viewer.
	searchHandler := coursesearchfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/search", coursesearchfeature.Routes(searchHandler))
	r.Mount("/api/search", coursesearchfeature.APIRoutes(searchHandler))

	// Teacher dashboard requires a session; non-teachers get a 404 from
	// the handler itself.
	dashHandler := teacherdashfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Route("/teacher", func(r chi.Router) {
		r.Use(sessionMgr.RequireSignedIn)
		r.Mount("/", teacherdashfeature.Routes(dashHandler))
	})

	// Unknown paths get the same 404 page the dashboard uses for
	// unauthorized visitors.
	r.NotFound(errorsHandler.NotFound)

	return r, nil
}

// googleOAuth builds the OAuth config, or nil when not configured.
func googleOAuth(appCfg AppConfig) *oauth2.Config {
	if appCfg.GoogleClientID == "" || appCfg.GoogleClientSecret == "" {
		return nil
	}
	return &oauth2.Config{
		ClientID:     appCfg.GoogleClientID,
		ClientSecret: appCfg.GoogleClientSecret,
		RedirectURL:  appCfg.BaseURL + "/login/google/callback",
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}
