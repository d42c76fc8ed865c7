// internal/app/features/login/handler.go
package login

import (
	"context"
	"net/http"
	"strings"

	uierrors "github.com/chalix/coursehub/internal/app/features/errors"
	prefstore "github.com/chalix/coursehub/internal/app/store/preferences"
	userstore "github.com/chalix/coursehub/internal/app/store/users"
	"github.com/chalix/coursehub/internal/app/system/auth"
	"github.com/chalix/coursehub/internal/app/system/langpref"
	"github.com/chalix/coursehub/internal/app/system/timeouts"
	"github.com/chalix/coursehub/internal/app/system/viewdata"
	"github.com/chalix/coursehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
)

type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Users      *userstore.Store
	Prefs      *prefstore.Store

	// Google OAuth; nil when not configured.
	OAuth *oauth2.Config
}

func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, oauth *oauth2.Config, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Log:        logger,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Users:      userstore.New(db, logger),
		Prefs:      prefstore.New(db),
		OAuth:      oauth,
	}
}

type loginFormData struct {
	viewdata.BaseVM
	Error         string
	Username      string
	ReturnURL     string
	GoogleEnabled bool
}

// ServeLogin renders the login form.
// GET /login
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := loginFormData{
		BaseVM:        viewdata.NewBaseVM(r, "Sign in", "/"),
		ReturnURL:     query.Get(r, "return"),
		GoogleEnabled: h.OAuth != nil,
	}
	templates.Render(w, r, "login", data)
}

// HandleLoginPost checks credentials and starts a session.
// POST /login
func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse login form failed", err, "Invalid form data.", "/login")
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	returnURL := r.PostFormValue("return")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, username)
	if err == mongo.ErrNoDocuments {
		h.renderFormWithError(w, r, "Incorrect username or password.", username, returnURL)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "login lookup failed", err, "A database error occurred.", "/login")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		h.renderFormWithError(w, r, "Incorrect username or password.", username, returnURL)
		return
	}
	if !u.IsActive {
		h.renderFormWithError(w, r, "This account has been disabled.", username, returnURL)
		return
	}

	h.signInAndRedirect(w, r, u, returnURL)
}

// signInAndRedirect finishes a successful authentication from any
// method: assign the default language if the user has none, create the
// session, and send them on their way.
func (h *Handler) signInAndRedirect(w http.ResponseWriter, r *http.Request, u *models.User, returnURL string) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	// Legacy accounts with a blank email are left out of the language
	// default, same as the backfill.
	if strings.TrimSpace(u.Email) != "" {
		langpref.EnsureDefault(ctx, h.Prefs, u.ID, u.Username, h.Log)
	}

	if err := h.SessionMgr.SignIn(w, r, u); err != nil {
		h.Log.Error("save session failed",
			zap.Error(err), zap.String("username", u.Username))
		h.renderFormWithError(w, r, "Unable to create session. Please try again.", u.Username, returnURL)
		return
	}

	h.Log.Info("login succeeded", zap.String("username", u.Username))
	http.Redirect(w, r, urlutil.SafeReturn(returnURL, "", "/"), http.StatusSeeOther)
}

// HandleLogout ends the session.
// POST /logout
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Warn("sign out failed", zap.Error(err))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, msg, username, returnURL string) {
	data := loginFormData{
		BaseVM:        viewdata.NewBaseVM(r, "Sign in", "/"),
		Error:         msg,
		Username:      username,
		ReturnURL:     returnURL,
		GoogleEnabled: h.OAuth != nil,
	}
	w.WriteHeader(http.StatusUnprocessableEntity)
	templates.Render(w, r, "login", data)
}
