package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Las-Vejas/shawty/internal/config"
	"github.com/Las-Vejas/shawty/internal/database"
	"github.com/Las-Vejas/shawty/internal/middleware"
	"github.com/Las-Vejas/shawty/internal/models"
	"github.com/Las-Vejas/shawty/internal/services"
	apperrors "github.com/Las-Vejas/shawty/pkg/errors"
	"github.com/Las-Vejas/shawty/pkg/logger"
	"github.com/Las-Vejas/shawty/pkg/utils"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// maxSlugAttempts bounds the regenerate-on-collision loop for random slugs.
// Five misses in a 36^6 space means something is wrong with the store, so we
// give up with a 500 instead of spinning.
const maxSlugAttempts = 5

// newSlug is swapped out in tests to force collisions.
var newSlug = utils.GenerateRandomSlug

func appHostnames() []string {
	if config.AppConfig == nil {
		return nil
	}
	return config.AppConfig.Hostnames()
}

func fail(c *gin.Context, e *apperrors.AppError) {
	c.JSON(e.Code, gin.H{"error": e.Message})
}

type CreateLinkInput struct {
	URL        string `json:"url"`
	CustomSlug string `json:"customSlug"`
	Password   string `json:"password"`
}

// CreateLink handles POST /api/links.
// Validation runs in a fixed order: auth (middleware), required fields,
// format, uniqueness, self-reference policy. The first failure wins.
func CreateLink(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		fail(c, apperrors.ErrUnauthorized)
		return
	}

	var input CreateLinkInput
	_ = c.ShouldBindJSON(&input)

	if input.URL == "" {
		fail(c, apperrors.ErrMissingURL)
		return
	}

	longURL, ok := utils.NormalizeURL(input.URL)
	if !ok {
		fail(c, apperrors.ErrInvalidURLFormat)
		return
	}

	customSlug := strings.TrimSpace(input.CustomSlug)
	isCustom := customSlug != ""

	shortCode := customSlug
	if isCustom {
		if !utils.ValidateCustomSlug(customSlug) {
			fail(c, apperrors.ErrInvalidSlugFormat)
			return
		}

		var existing models.Link
		if err := database.DB.Select("id").Where("short_code = ?", customSlug).First(&existing).Error; err == nil {
			fail(c, apperrors.ErrSlugTaken)
			return
		}
	} else {
		shortCode = newSlug()
	}

	if utils.IsSelfReferencing(longURL, appHostnames()) {
		go services.SendLoopProtectionAlert(user, "Create new link")
		fail(c, apperrors.ErrSelfReferencing)
		return
	}

	var password *string
	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to hash link password")
			fail(c, apperrors.ErrInternalServer)
			return
		}
		h := string(hashed)
		password = &h
	}

	link := models.Link{
		ID:            utils.GenerateID(),
		ShortCode:     shortCode,
		LongURL:       longURL,
		UserID:        user.ID,
		Clicks:        0,
		OnLeaderboard: false,
		CustomSlug:    isCustom,
		Password:      password,
	}

	if appErr := insertLink(&link, isCustom); appErr != nil {
		fail(c, appErr)
		return
	}

	logger.Info().Str("user_id", user.ID).Str("short_code", link.ShortCode).Bool("custom", isCustom).Msg("Short link created")

	c.JSON(http.StatusCreated, gin.H{"shortCode": link.ShortCode})
}

// insertLink persists the link, regenerating random codes on unique-key
// collisions up to maxSlugAttempts. A collision on a custom slug means
// another insert raced the uniqueness pre-check; the user sees SlugTaken
// either way.
func insertLink(link *models.Link, isCustom bool) *apperrors.AppError {
	for attempt := 0; ; attempt++ {
		err := database.DB.Create(link).Error
		if err == nil {
			return nil
		}

		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if isCustom {
				return apperrors.ErrSlugTaken
			}
			if attempt+1 < maxSlugAttempts {
				link.ShortCode = newSlug()
				continue
			}
		}

		logger.Error().Err(err).Str("user_id", link.UserID).Msg("Failed to create short link")
		return apperrors.ErrInternalServer
	}
}

// ListLinks handles GET /api/links?page&limit, scoped to the owner,
// newest first.
func ListLinks(c *gin.Context) {
	userID := c.GetString("userId")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := database.DB.Model(&models.Link{}).Where("user_id = ?", userID)

	var total int64
	query.Count(&total)

	var links []models.Link
	if err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&links).Error; err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("Failed to fetch links")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch links"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"links": links,
		"page":  page,
		"limit": limit,
		"total": total,
	})
}

type UpdateLinkInput struct {
	NewURL string `json:"newUrl"`
}

// UpdateLink handles PUT /api/links/:id, replacing the destination URL.
// The lookup pairs (id, owner) so a mismatched owner reads as not-found
// rather than silently succeeding against zero rows.
func UpdateLink(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		fail(c, apperrors.ErrUnauthorized)
		return
	}

	linkID := c.Param("id")
	if linkID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Link ID is required"})
		return
	}

	var input UpdateLinkInput
	_ = c.ShouldBindJSON(&input)

	if strings.TrimSpace(input.NewURL) == "" {
		fail(c, apperrors.ErrMissingURL)
		return
	}

	longURL, ok := utils.NormalizeURL(input.NewURL)
	if !ok {
		fail(c, apperrors.ErrInvalidURLFormat)
		return
	}

	if utils.IsSelfReferencing(longURL, appHostnames()) {
		go services.SendLoopProtectionAlert(user, "Update existing link")
		fail(c, apperrors.ErrSelfReferencing)
		return
	}

	var link models.Link
	if err := database.DB.Where("id = ? AND user_id = ?", linkID, user.ID).First(&link).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
		return
	}

	if err := database.DB.Model(&link).Update("long_url", longURL).Error; err != nil {
		logger.Error().Err(err).Str("link_id", linkID).Msg("Failed to update link")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update link"})
		return
	}

	if err := database.CacheInvalidate(linkCacheKey(link.ShortCode)); err != nil {
		logger.Debug().Err(err).Str("code", link.ShortCode).Msg("Link cache invalidation failed")
	}

	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// ToggleLeaderboard handles POST /api/links/:id/leaderboard, flipping the
// opt-in flag. Same (id, owner) scoping as UpdateLink.
func ToggleLeaderboard(c *gin.Context) {
	userID := c.GetString("userId")
	linkID := c.Param("id")

	var link models.Link
	if err := database.DB.Where("id = ? AND user_id = ?", linkID, userID).First(&link).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
		return
	}

	if err := database.DB.Model(&link).Update("on_leaderboard", !link.OnLeaderboard).Error; err != nil {
		logger.Error().Err(err).Str("link_id", linkID).Msg("Failed to toggle leaderboard status")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update leaderboard status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"toggled": true, "on_leaderboard": !link.OnLeaderboard})
}

// DeleteLink handles DELETE /api/links/:id. Click events are left in place;
// retention is not this service's concern.
func DeleteLink(c *gin.Context) {
	userID := c.GetString("userId")
	linkID := c.Param("id")

	var link models.Link
	if err := database.DB.Where("id = ? AND user_id = ?", linkID, userID).First(&link).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
		return
	}

	if err := database.DB.Delete(&link).Error; err != nil {
		logger.Error().Err(err).Str("link_id", linkID).Msg("Failed to delete link")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete link"})
		return
	}

	if err := database.CacheInvalidate(linkCacheKey(link.ShortCode)); err != nil {
		logger.Debug().Err(err).Str("code", link.ShortCode).Msg("Link cache invalidation failed")
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
