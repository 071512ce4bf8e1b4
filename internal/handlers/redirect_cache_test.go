package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Las-Vejas/shawty/internal/database"
	"github.com/Las-Vejas/shawty/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func withCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	database.Redis = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { database.Redis = nil })
	return mr
}

func TestRedirectLink_ServesFromCache(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)
	withCache(t)
	user := makeUser("cache_hit")

	database.DB.Create(&models.Link{
		ID: "rc_hit", ShortCode: "rc-hit", LongURL: "https://example.com/cached", UserID: user.ID,
	})

	// First request resolves from the DB and primes the cache
	c, w := redirectContext(t, "rc-hit")
	RedirectLink(c)
	assert.Equal(t, http.StatusFound, w.Code)

	// Drop the row; within the TTL the cached copy still answers
	database.DB.Where("id = ?", "rc_hit").Delete(&models.Link{})

	c, w = redirectContext(t, "rc-hit")
	RedirectLink(c)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://example.com/cached", w.Header().Get("Location"))
}

func TestRedirectLink_PasswordGateSurvivesCacheHit(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)
	withCache(t)
	user := makeUser("cache_pw")

	hashed, _ := bcrypt.GenerateFromPassword([]byte("opensesame"), bcrypt.DefaultCost)
	pw := string(hashed)
	database.DB.Create(&models.Link{
		ID: "rc_pw", ShortCode: "rc-pw", LongURL: "https://example.com/secret", UserID: user.ID, Password: &pw,
	})

	// First keyless request resolves from the DB, primes the cache, gets gated
	c, w := redirectContext(t, "rc-pw")
	RedirectLink(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// The cached copy must still carry the hash: a second keyless request
	// takes the cache-hit branch and must be gated all the same
	raw, err := database.Redis.Get(database.Ctx, "link:rc-pw").Result()
	assert.NoError(t, err)
	var entry map[string]interface{}
	json.Unmarshal([]byte(raw), &entry)
	assert.NotEmpty(t, entry["password"])

	c, w = redirectContext(t, "rc-pw")
	RedirectLink(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var count int64
	database.DB.Model(&models.LinkClick{}).Where("link_id = ?", "rc_pw").Count(&count)
	assert.EqualValues(t, 0, count)

	// Correct key passes through the cache-hit branch too
	c, w = redirectContext(t, "rc-pw")
	c.Request = httptest.NewRequest("GET", "/rc-pw?key=opensesame", nil)
	RedirectLink(c)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://example.com/secret", w.Header().Get("Location"))
}

func TestRedirectLink_CacheInvalidatedOnUpdate(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)
	withCache(t)
	user := makeUser("cache_update")

	database.DB.Create(&models.Link{
		ID: "rc_upd", ShortCode: "rc-upd", LongURL: "https://example.com/old", UserID: user.ID,
	})

	c, w := redirectContext(t, "rc-upd")
	RedirectLink(c)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://example.com/old", w.Header().Get("Location"))

	body := []byte(`{"newUrl": "https://example.com/new"}`)
	c, w = authedContext(t, "PUT", "/api/links/rc_upd", body, user)
	c.Params = gin.Params{{Key: "id", Value: "rc_upd"}}
	UpdateLink(c)
	assert.Equal(t, http.StatusOK, w.Code)

	// The stale cache entry is gone, so the next redirect sees the new URL
	c, w = redirectContext(t, "rc-upd")
	RedirectLink(c)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://example.com/new", w.Header().Get("Location"))
}

func TestRedirectLink_CacheInvalidatedOnDelete(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)
	withCache(t)
	user := makeUser("cache_delete")

	database.DB.Create(&models.Link{
		ID: "rc_del", ShortCode: "rc-del", LongURL: "https://example.com", UserID: user.ID,
	})

	c, w := redirectContext(t, "rc-del")
	RedirectLink(c)
	assert.Equal(t, http.StatusFound, w.Code)

	c, w = authedContext(t, "DELETE", "/api/links/rc_del", nil, user)
	c.Params = gin.Params{{Key: "id", Value: "rc_del"}}
	DeleteLink(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = redirectContext(t, "rc-del")
	RedirectLink(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
