package handlers

import (
	"net/http"

	"github.com/Las-Vejas/shawty/internal/database"
	"github.com/Las-Vejas/shawty/internal/models"
	"github.com/Las-Vejas/shawty/pkg/logger"
	"github.com/gin-gonic/gin"
)

// LinkAnalytics aggregates a link's click events into per-category counts.
type LinkAnalytics struct {
	TotalClicks int64            `json:"totalClicks"`
	ByCountry   map[string]int64 `json:"byCountry"`
	ByDevice    map[string]int64 `json:"byDevice"`
	ByOS        map[string]int64 `json:"byOS"`
	ByBrowser   map[string]int64 `json:"byBrowser"`
	ByDate      map[string]int64 `json:"byDate"`
}

func bucket(m map[string]int64, key string) {
	if key == "" {
		key = "Unknown"
	}
	m[key]++
}

// GetLinkAnalytics handles GET /api/links/:id/analytics. The lookup pairs
// (id, owner), so another user's link id reads as not-found.
func GetLinkAnalytics(c *gin.Context) {
	userID := c.GetString("userId")
	linkID := c.Param("id")

	var link models.Link
	if err := database.DB.Where("id = ? AND user_id = ?", linkID, userID).First(&link).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
		return
	}

	var clicks []models.LinkClick
	if err := database.DB.Where("link_id = ?", linkID).Order("clicked_at desc").Find(&clicks).Error; err != nil {
		logger.Error().Err(err).Str("link_id", linkID).Msg("Failed to fetch click events")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch analytics"})
		return
	}

	analytics := LinkAnalytics{
		TotalClicks: int64(len(clicks)),
		ByCountry:   map[string]int64{},
		ByDevice:    map[string]int64{},
		ByOS:        map[string]int64{},
		ByBrowser:   map[string]int64{},
		ByDate:      map[string]int64{},
	}

	for _, click := range clicks {
		bucket(analytics.ByCountry, click.Country)
		bucket(analytics.ByDevice, click.Device)
		bucket(analytics.ByOS, click.OS)
		bucket(analytics.ByBrowser, click.Browser)
		bucket(analytics.ByDate, click.ClickedAt.Local().Format("2006-01-02"))
	}

	c.JSON(http.StatusOK, gin.H{
		"link":      link,
		"clicks":    clicks,
		"analytics": analytics,
	})
}

// GetLeaderboard handles GET /api/leaderboard — the public ranking of links
// whose owners opted in.
func GetLeaderboard(c *gin.Context) {
	var links []models.Link
	if err := database.DB.Where("on_leaderboard = ?", true).Order("clicks desc").Limit(50).Find(&links).Error; err != nil {
		logger.Error().Err(err).Msg("Failed to fetch leaderboard")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"links": links})
}
