package authentication

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"os"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"tutoria-backend/config"
	"tutoria-backend/models/users"
)

const sessionName = "tutoria-session"

// googleOauthConfig reads the OAuth settings at call time so values loaded
// from .env by main are picked up.
func googleOauthConfig() *oauth2.Config {
	return &oauth2.Config{
		RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

type googleUserInfo struct {
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

// HandleGoogleLogin starts the university SSO flow. The random state lives in
// the cookie session until the callback.
func HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	state := base64.URLEncoding.EncodeToString(buf)

	session, _ := config.Store.Get(r, sessionName)
	session.Values["oauth_state"] = state
	if err := session.Save(r, w); err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, googleOauthConfig().AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// HandleGoogleCallback exchanges the code, fetches the Google profile and
// signs the user in, creating a student account on first login.
func HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	session, _ := config.Store.Get(r, sessionName)
	expected, _ := session.Values["oauth_state"].(string)
	if expected == "" || r.FormValue("state") != expected {
		http.Error(w, "Invalid OAuth state", http.StatusBadRequest)
		return
	}
	delete(session.Values, "oauth_state")
	session.Save(r, w)

	token, err := googleOauthConfig().Exchange(r.Context(), r.FormValue("code"))
	if err != nil {
		config.Logger.Error("oauth code exchange failed", zap.Error(err))
		http.Error(w, "OAuth exchange failed", http.StatusBadGateway)
		return
	}

	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + token.AccessToken)
	if err != nil {
		config.Logger.Error("fetching google userinfo failed", zap.Error(err))
		http.Error(w, "Could not fetch user info", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		http.Error(w, "Could not read user info", http.StatusBadGateway)
		return
	}

	var info googleUserInfo
	if err := json.Unmarshal(body, &info); err != nil || info.Email == "" {
		http.Error(w, "Invalid user info", http.StatusBadGateway)
		return
	}

	var user users.User
	err = config.DB.Where("email = ?", info.Email).First(&user).Error
	switch {
	case err == nil:
		// existing account, any role
	case err == gorm.ErrRecordNotFound:
		user = users.User{
			FirstName:    info.GivenName,
			LastName:     info.FamilyName,
			Email:        info.Email,
			Role:         users.RoleStudent,
			Provider:     "google",
			ProfileImage: info.Picture,
		}
		createErr := config.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			return tx.Create(&users.StudentProfile{UserID: user.ID}).Error
		})
		if createErr != nil {
			config.Logger.Error("creating sso user failed", zap.Error(createErr))
			http.Error(w, "Error creating user", http.StatusInternalServerError)
			return
		}
	default:
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	jwtToken, err := GenerateToken(&user)
	if err != nil {
		http.Error(w, "Error generating token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"user":  user,
		"token": jwtToken,
	})
}
