package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/Las-Vejas/shawty/internal/config"
	"github.com/Las-Vejas/shawty/internal/database"
	"github.com/Las-Vejas/shawty/internal/middleware"
	"github.com/Las-Vejas/shawty/internal/models"
	"github.com/Las-Vejas/shawty/pkg/logger"
	"github.com/Las-Vejas/shawty/pkg/utils"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

var oauthConfig *oauth2.Config

// InitOAuthConfig wires the external identity provider from config. The
// provider is Hack Club Auth shaped: authorize/token endpoints plus a
// userinfo API returning an identity object.
func InitOAuthConfig() {
	if config.AppConfig.OAuthClientID == "" {
		logger.Warn().Msg("OAuth keys missing, login disabled")
		return
	}

	oauthConfig = &oauth2.Config{
		ClientID:     config.AppConfig.OAuthClientID,
		ClientSecret: config.AppConfig.OAuthClientSecret,
		RedirectURL:  config.AppConfig.OAuthCallbackURL,
		Scopes:       []string{"email"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  config.AppConfig.OAuthAuthURL,
			TokenURL: config.AppConfig.OAuthTokenURL,
		},
	}
}

// Login redirects the browser to the provider's authorize page.
func Login(c *gin.Context) {
	if oauthConfig == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "OAuth not configured"})
		return
	}
	c.Redirect(http.StatusFound, oauthConfig.AuthCodeURL("state-token"))
}

type identityPayload struct {
	Identity struct {
		ID           string  `json:"id"`
		PrimaryEmail string  `json:"primary_email"`
		FirstName    *string `json:"first_name"`
		LastName     *string `json:"last_name"`
	} `json:"identity"`
}

// Callback exchanges the authorization code, fetches the provider identity,
// upserts the user and issues the session cookie.
func Callback(c *gin.Context) {
	if oauthConfig == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "OAuth not configured"})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusFound, config.AppConfig.FrontendURL+"/login?error=no_code")
		return
	}

	token, err := oauthConfig.Exchange(context.Background(), code)
	if err != nil {
		logger.Error().Err(err).Msg("OAuth exchange failed")
		c.Redirect(http.StatusFound, config.AppConfig.FrontendURL+"/login?error=oauth_failed")
		return
	}

	client := oauthConfig.Client(context.Background(), token)
	resp, err := client.Get(config.AppConfig.OAuthUserInfoURL)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to fetch provider identity")
		c.Redirect(http.StatusFound, config.AppConfig.FrontendURL+"/login?error=oauth_failed")
		return
	}
	defer resp.Body.Close()

	var payload identityPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.Identity.ID == "" {
		logger.Error().Err(err).Msg("Provider identity unparsable")
		c.Redirect(http.StatusFound, config.AppConfig.FrontendURL+"/login?error=oauth_failed")
		return
	}

	email := payload.Identity.PrimaryEmail
	name := "user"
	if email != "" {
		name = strings.Split(email, "@")[0]
	}

	// Upsert keyed by the provider subject; profile fields are refreshed on
	// every login in case they changed upstream.
	var user models.User
	err = database.DB.Where("slack_id = ?", payload.Identity.ID).First(&user).Error
	switch {
	case err == nil:
		user.Email = email
		user.Name = name
		user.FirstName = payload.Identity.FirstName
		user.LastName = payload.Identity.LastName
		if err := database.DB.Save(&user).Error; err != nil {
			logger.Error().Err(err).Str("user_id", user.ID).Msg("Failed to refresh user profile")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{
			ID:        utils.GenerateID(),
			SlackID:   payload.Identity.ID,
			Email:     email,
			Name:      name,
			FirstName: payload.Identity.FirstName,
			LastName:  payload.Identity.LastName,
		}
		if err := database.DB.Create(&user).Error; err != nil {
			logger.Error().Err(err).Str("email", email).Msg("Failed to create user during OAuth")
			c.Redirect(http.StatusFound, config.AppConfig.FrontendURL+"/login?error=oauth_failed")
			return
		}
		logger.Info().Str("user_id", user.ID).Str("email", email).Msg("New user registered via OAuth")
	default:
		logger.Error().Err(err).Msg("User lookup failed during OAuth")
		c.Redirect(http.StatusFound, config.AppConfig.FrontendURL+"/login?error=oauth_failed")
		return
	}

	finishLogin(c, &user)
}

// DevLogin logs in as a seeded local user. Only available in development.
func DevLogin(c *gin.Context) {
	if os.Getenv("GO_ENV") == "production" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Dev login only available in development"})
		return
	}

	var user models.User
	err := database.DB.Where("email = ?", "dev@localhost").First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		first, last := "Dev", "User"
		user = models.User{
			ID:        utils.GenerateID(),
			SlackID:   "dev-local",
			Email:     "dev@localhost",
			Name:      "Dev User",
			FirstName: &first,
			LastName:  &last,
		}
		err = database.DB.Create(&user).Error
	}
	if err != nil {
		logger.Error().Err(err).Msg("Failed to resolve dev user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create dev user"})
		return
	}

	finishLogin(c, &user)
}

func finishLogin(c *gin.Context, user *models.User) {
	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to sign session token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	secure := os.Getenv("GO_ENV") == "production"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(utils.SessionDuration.Seconds()), "/", "", secure, true)

	logger.Info().Str("user_id", user.ID).Msg("User logged in")

	c.Redirect(http.StatusFound, config.AppConfig.FrontendURL+"/dashboard")
}

// Logout clears the session cookie.
func Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me returns the authenticated user.
func Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
