package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/playgate/playgate/internal/httpserver/deps"
	"github.com/playgate/playgate/internal/logger"
	"github.com/playgate/playgate/internal/oauth"
	redisstore "github.com/playgate/playgate/internal/store/redis"
)

// SessionCookie is the name of the opaque session id cookie.
const SessionCookie = "playgate_session"

// Login starts the authorization code flow: it stores a fresh state value
// and redirects the browser to the provider's authorize endpoint, wherever
// the resolver determined that lives.
func Login(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		state, err := oauth.NewState()
		if err != nil {
			d.Logger.Error("failed to generate oauth state", logger.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		if err := d.Store.SaveState(ctx, state, redisstore.DefaultStateTTL); err != nil {
			d.Logger.Error("failed to persist oauth state", logger.Error(err))
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}

		authURL, err := d.OAuth.AuthCodeURL(ctx, state)
		if err != nil {
			d.Logger.Error("failed to build authorize URL", logger.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, authURL, http.StatusFound)
	}
}

// Callback finishes the flow: state check, code exchange, userinfo fetch,
// session creation. On success the browser lands back on the SPA.
func Callback(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		state := r.URL.Query().Get("state")
		code := r.URL.Query().Get("code")
		if state == "" || code == "" {
			http.Error(w, "missing state or code", http.StatusBadRequest)
			return
		}

		ok, err := d.Store.ConsumeState(ctx, state)
		if err != nil {
			d.Logger.Error("failed to check oauth state", logger.Error(err))
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}
		if !ok {
			d.Logger.Warn("oauth callback with unknown state")
			http.Error(w, "invalid state", http.StatusForbidden)
			return
		}

		token, err := d.OAuth.Exchange(ctx, code)
		if err != nil {
			d.Logger.Error("code exchange failed", logger.Error(err))
			http.Error(w, "authentication failed", http.StatusBadGateway)
			return
		}

		identity, err := d.OAuth.UserInfo(ctx, token.AccessToken)
		if err != nil {
			d.Logger.Error("userinfo fetch failed", logger.Error(err))
			http.Error(w, "authentication failed", http.StatusBadGateway)
			return
		}

		sessionID, err := newSessionID()
		if err != nil {
			d.Logger.Error("failed to generate session id", logger.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		session := &redisstore.Session{
			UserID:       identity.Sub,
			UserName:     identity.Name,
			AccessToken:  token.AccessToken,
			RefreshToken: token.RefreshToken,
			Expiry:       token.Expiry,
			CreatedAt:    d.TimeNow(),
		}
		if err := d.Store.SaveSession(ctx, sessionID, session, d.SessionTTL); err != nil {
			d.Logger.Error("failed to persist session", logger.Error(err))
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    sessionID,
			Path:     "/",
			MaxAge:   int(d.SessionTTL / time.Second),
			HttpOnly: true,
			Secure:   d.CookieSecure,
			SameSite: http.SameSiteLaxMode,
		})

		d.Logger.Info("user signed in",
			logger.String("user_id", identity.Sub))

		http.Redirect(w, r, spaHome(d), http.StatusFound)
	}
}

// Logout drops the session and clears the cookie.
func Logout(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(SessionCookie); err == nil {
			if err := d.Store.DeleteSession(r.Context(), cookie.Value); err != nil {
				d.Logger.Warn("failed to delete session", logger.Error(err))
			}
		}

		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   d.CookieSecure,
			SameSite: http.SameSiteLaxMode,
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

type meResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Me returns the signed-in user's identity, or 401 when the session is
// missing or expired.
func Me(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		session, err := d.Store.GetSession(r.Context(), cookie.Value)
		if err != nil {
			d.Logger.Error("failed to load session", logger.Error(err))
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}
		if session == nil {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(meResponse{
			ID:   session.UserID,
			Name: session.UserName,
		})
	}
}

func newSessionID() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// spaHome is where the browser lands after a successful login: the first
// configured SPA origin, or the proxy root when none is set.
func spaHome(d deps.Deps) string {
	if len(d.AllowedOrigins) > 0 {
		return d.AllowedOrigins[0]
	}
	return "/"
}
