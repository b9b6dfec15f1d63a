package strava

import "golang.org/x/oauth2"

// Scope grants reading all activities, including the private ones.
const Scope = "read,activity:read_all"

var Endpoint = oauth2.Endpoint{
	AuthURL:  "https://www.strava.com/oauth/authorize",
	TokenURL: "https://www.strava.com/api/v3/oauth/token",
	// client id and secret go in the form body, not in basic auth
	AuthStyle: oauth2.AuthStyleInParams,
}

func NewOAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     Endpoint,
		RedirectURL:  redirectURL,
		Scopes:       []string{Scope},
	}
}
