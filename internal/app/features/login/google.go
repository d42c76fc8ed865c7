// internal/app/features/login/google.go
package login

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/chalix/coursehub/internal/app/system/timeouts"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// stateCookie carries the OAuth CSRF state between the redirect to
// Google and the callback.
const stateCookie = "oauth_state"

// ServeGoogleLogin redirects to Google's consent page.
// GET /login/google
func (h *Handler) ServeGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if h.OAuth == nil {
		http.NotFound(w, r)
		return
	}

	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.OAuth.AuthCodeURL(state), http.StatusSeeOther)
}

// googleUserInfo is the subset of the userinfo response we read.
type googleUserInfo struct {
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

// HandleGoogleCallback exchanges the code, resolves the account by
// email, and signs in. Accounts are not auto-created: an unknown email
// lands back on the login form.
// GET /login/google/callback
func (h *Handler) HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if h.OAuth == nil {
		http.NotFound(w, r)
		return
	}

	cookie, err := r.Cookie(stateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		h.Log.Warn("oauth state mismatch")
		h.renderFormWithError(w, r, "Sign-in with Google failed. Please try again.", "", "")
		return
	}
	// One-shot cookie.
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Value: "", Path: "/", MaxAge: -1})

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	tok, err := h.OAuth.Exchange(ctx, r.URL.Query().Get("code"))
	if err != nil {
		h.Log.Warn("oauth code exchange failed", zap.Error(err))
		h.renderFormWithError(w, r, "Sign-in with Google failed. Please try again.", "", "")
		return
	}

	info, err := h.fetchGoogleUserInfo(ctx, tok.AccessToken)
	if err != nil {
		h.Log.Error("google userinfo fetch failed", zap.Error(err))
		h.renderFormWithError(w, r, "Sign-in with Google failed. Please try again.", "", "")
		return
	}
	if !info.VerifiedEmail {
		h.renderFormWithError(w, r, "Your Google email address is not verified.", "", "")
		return
	}

	u, err := h.Users.GetByEmail(ctx, info.Email)
	if err == mongo.ErrNoDocuments {
		h.renderFormWithError(w, r, "No account is registered for that Google email.", "", "")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "google login lookup failed", err, "A database error occurred.", "/login")
		return
	}
	if !u.IsActive {
		h.renderFormWithError(w, r, "This account has been disabled.", u.Username, "")
		return
	}

	h.signInAndRedirect(w, r, u, "")
}

func (h *Handler) fetchGoogleUserInfo(ctx context.Context, accessToken string) (*googleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		"https://www.googleapis.com/oauth2/v2/userinfo", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}
