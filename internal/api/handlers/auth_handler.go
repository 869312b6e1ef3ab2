package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/rentora/rentora-be/internal/auth"
	"github.com/rentora/rentora-be/internal/config"
	"github.com/rentora/rentora-be/internal/services"
	"github.com/rs/zerolog/log"
)

const stateCookieName = "oauth_state"

// AuthHandler handles signup, login, token verification and the Google
// federated login flow.
type AuthHandler struct {
	users  services.UserServiceProvider
	tokens *auth.TokenService
	google *auth.GoogleProvider
	cfg    *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users services.UserServiceProvider, tokens *auth.TokenService, google *auth.GoogleProvider, cfg *config.Config) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, google: google, cfg: cfg}
}

// CredentialsPayload defines the structure for signup and login requests.
type CredentialsPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles new user registration.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.users.Signup(r.Context(), payload.Email, payload.Password)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			respondMessage(w, http.StatusBadRequest, verr.Message)
		case errors.Is(err, services.ErrEmailTaken):
			respondMessage(w, http.StatusConflict, "Email already registered.")
		default:
			log.Error().Err(err).Str("email", payload.Email).Msg("Failed to register user")
			respondInternalError(w, err)
		}
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate token")
		respondInternalError(w, err)
		return
	}

	h.setTokenCookie(w, token)
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User created successfully.",
		"token":   token,
		"user":    user.Public(),
	})
}

// Login handles user authentication and token generation.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.users.Authenticate(r.Context(), payload.Email, payload.Password)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			respondMessage(w, http.StatusBadRequest, verr.Message)
		case errors.Is(err, services.ErrInvalidCredentials):
			log.Warn().Str("email", payload.Email).Msg("Failed authentication attempt")
			respondMessage(w, http.StatusUnauthorized, "Invalid email or password.")
		default:
			log.Error().Err(err).Str("email", payload.Email).Msg("Login failed")
			respondInternalError(w, err)
		}
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate token")
		respondInternalError(w, err)
		return
	}

	h.setTokenCookie(w, token)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful.",
		"token":   token,
		"user":    user.Public(),
	})
}

// VerifyToken lets the front-end check session validity at page load. It
// only decodes the claims; no user record is loaded.
func (h *AuthHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	tokenStr := auth.BearerToken(r)
	if tokenStr == "" {
		respondJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"valid":   false,
			"message": "No token provided",
		})
		return
	}

	claims, err := h.tokens.Validate(tokenStr)
	if err != nil {
		respondJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"valid":   false,
			"message": "Invalid token",
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"valid": true,
		"user":  claims,
	})
}

// GoogleLogin starts the Google OAuth flow.
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	if !h.google.Enabled() {
		log.Warn().Msg("Google login requested but no credentials configured")
		http.Redirect(w, r, h.cfg.ClientURL+"/login", http.StatusTemporaryRedirect)
		return
	}

	state := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Expires:  time.Now().Add(10 * time.Minute),
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	})

	http.Redirect(w, r, h.google.Config().AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// GoogleCallback finishes the Google OAuth flow: exchange the code, read
// the profile, upsert the user and hand the front-end a token via the
// dashboard redirect. Any failure lands back on the login page.
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	loginURL := h.cfg.ClientURL + "/login"

	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		log.Warn().Msg("Google callback with missing or mismatched state")
		http.Redirect(w, r, loginURL, http.StatusTemporaryRedirect)
		return
	}
	clearCookie(w, stateCookieName, h.cfg.IsProduction())

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Redirect(w, r, loginURL, http.StatusTemporaryRedirect)
		return
	}

	oauthToken, err := h.google.Config().Exchange(r.Context(), code)
	if err != nil {
		log.Error().Err(err).Msg("Google code exchange failed")
		http.Redirect(w, r, loginURL, http.StatusTemporaryRedirect)
		return
	}

	profile, err := h.google.Profile(h.google.Config().Client(r.Context(), oauthToken))
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch Google profile")
		http.Redirect(w, r, loginURL, http.StatusTemporaryRedirect)
		return
	}

	user, err := h.users.FindOrCreateGoogleUser(r.Context(), profile.ID, profile.Email)
	if err != nil {
		log.Error().Err(err).Str("email", profile.Email).Msg("Failed to upsert Google user")
		http.Redirect(w, r, loginURL, http.StatusTemporaryRedirect)
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate token")
		http.Redirect(w, r, loginURL, http.StatusTemporaryRedirect)
		return
	}

	h.setTokenCookie(w, token)
	redirect := h.cfg.ClientURL + "/dashboard?token=" + url.QueryEscape(token) + "&email=" + url.QueryEscape(user.Email)
	http.Redirect(w, r, redirect, http.StatusTemporaryRedirect)
}

// Logout clears the token cookie and sends the browser back to the
// front-end. Bearer tokens held client-side simply expire.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	clearCookie(w, "token", h.cfg.IsProduction())
	http.Redirect(w, r, h.cfg.ClientURL, http.StatusTemporaryRedirect)
}

func (h *AuthHandler) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(h.cfg.TokenLifetime),
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})
}

func clearCookie(w http.ResponseWriter, name string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		Path:     "/",
	})
}
