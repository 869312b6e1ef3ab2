package auth

import (
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	goog "golang.org/x/oauth2/google"
)

// GoogleUserInfoRoute is the endpoint queried for the authenticated
// principal after the code exchange.
const GoogleUserInfoRoute = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleProvider drives the Google OAuth2 login flow.
type GoogleProvider struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
}

// NewGoogleProvider creates a provider from the configured credentials.
func NewGoogleProvider(clientID, clientSecret, callbackURL string) *GoogleProvider {
	return &GoogleProvider{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		CallbackURL:  callbackURL,
	}
}

// Enabled reports whether Google credentials were configured.
func (g *GoogleProvider) Enabled() bool {
	return g.ClientID != "" && g.ClientSecret != ""
}

// Config returns the OAuth2 exchange information and endpoints.
func (g *GoogleProvider) Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     g.ClientID,
		ClientSecret: g.ClientSecret,
		RedirectURL:  g.CallbackURL,
		Scopes:       []string{"profile", "email"},
		Endpoint:     goog.Endpoint,
	}
}

// GoogleProfile is the slice of the userinfo response the service needs.
type GoogleProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Profile returns the Google account id and email of the user the given
// client is authenticated as.
func (g *GoogleProvider) Profile(client *http.Client) (GoogleProfile, error) {
	var profile GoogleProfile

	resp, err := client.Get(GoogleUserInfoRoute)
	if err != nil {
		return profile, err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return profile, fmt.Errorf("unable to GET user data from %s. Status: %s", GoogleUserInfoRoute, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return profile, err
	}
	if profile.Email == "" {
		return profile, fmt.Errorf("google profile carries no email address")
	}
	return profile, nil
}
