package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Las-Vejas/shawty/internal/database"
	"github.com/Las-Vejas/shawty/internal/models"
	"github.com/Las-Vejas/shawty/internal/services"
	"github.com/Las-Vejas/shawty/pkg/logger"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const linkCacheTTL = 5 * time.Minute

func linkCacheKey(code string) string {
	return "link:" + code
}

// cachedLink is the cache-side shape of a resolved link. The API model hides
// the password hash from JSON, and the cache round-trips through JSON, so
// caching models.Link directly would strip the hash and disarm the password
// gate on every cache hit.
type cachedLink struct {
	ID        string  `json:"id"`
	ShortCode string  `json:"short_code"`
	LongURL   string  `json:"long_url"`
	Password  *string `json:"password"`
}

func toCachedLink(l *models.Link) *cachedLink {
	return &cachedLink{
		ID:        l.ID,
		ShortCode: l.ShortCode,
		LongURL:   l.LongURL,
		Password:  l.Password,
	}
}

func (cl *cachedLink) link() models.Link {
	return models.Link{
		ID:        cl.ID,
		ShortCode: cl.ShortCode,
		LongURL:   cl.LongURL,
		Password:  cl.Password,
	}
}

// RedirectLink handles GET /:code — the redirect-and-log pipeline.
// Resolution failures end in a 404 with no click recorded; once the link is
// resolved, delivering the 302 is the primary obligation and analytics
// failures only get logged.
func RedirectLink(c *gin.Context) {
	code := c.Param("code")

	var link models.Link
	var entry cachedLink
	if err := database.CacheGet(linkCacheKey(code), &entry); err == nil && entry.ID != "" {
		link = entry.link()
	} else {
		if err := database.DB.Where("short_code = ?", code).First(&link).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Error().Err(err).Str("code", code).Msg("Link lookup failed")
			}
			c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
			return
		}
		if err := database.CacheSet(linkCacheKey(code), toCachedLink(&link), linkCacheTTL); err != nil {
			logger.Debug().Err(err).Str("code", code).Msg("Link cache write failed")
		}
	}

	// Password gate. No click is recorded until the visitor gets through.
	if link.Password != nil && *link.Password != "" {
		key := c.Query("key")
		if key == "" || bcrypt.CompareHashAndPassword([]byte(*link.Password), []byte(key)) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "This link is password protected"})
			return
		}
	}

	recordClick(c, &link)

	c.Redirect(http.StatusFound, link.LongURL)
}

// recordClick gathers request metadata, writes one LinkClick row and bumps
// the counter. The insert and the increment are independent writes; either
// may fail without rolling back the other, and neither blocks the redirect.
func recordClick(c *gin.Context, link *models.Link) {
	ua := c.Request.UserAgent()
	referrer := c.Request.Referer()
	ip := services.GetClientIP(c.Request.Header)

	info := services.ParseUserAgent(ua)
	loc := services.LookupLocation(c.Request.Context(), ip)

	click := models.LinkClick{
		LinkID:    link.ID,
		IPAddress: ip,
		Country:   loc.Country,
		City:      loc.City,
		Device:    info.Device,
		OS:        info.OS,
		Browser:   info.Browser,
		UserAgent: ua,
		Referrer:  referrer,
		ClickedAt: time.Now(),
	}

	if err := database.DB.Create(&click).Error; err != nil {
		logger.Error().Err(err).Str("link_id", link.ID).Msg("Failed to record click event")
	}

	// Atomic increment at the store, so concurrent redirects on the same
	// link cannot under-count each other.
	if err := database.DB.Model(&models.Link{}).
		Where("id = ?", link.ID).
		UpdateColumn("clicks", gorm.Expr("clicks + ?", 1)).Error; err != nil {
		logger.Error().Err(err).Str("link_id", link.ID).Msg("Failed to increment click counter")
	}
}
