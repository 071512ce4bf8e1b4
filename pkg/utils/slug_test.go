package utils

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeURL(t *testing.T) {
	normalized, ok := NormalizeURL("example.com")
	assert.True(t, ok)
	assert.Equal(t, "https://example.com", normalized)

	normalized, ok = NormalizeURL("http://example.com/path?q=1#frag")
	assert.True(t, ok)
	assert.Equal(t, "http://example.com/path?q=1#frag", normalized)

	_, ok = NormalizeURL("ht tp://example.com")
	assert.False(t, ok)

	_, ok = NormalizeURL(":invalid")
	assert.False(t, ok)
}

func TestValidateURL(t *testing.T) {
	assert.True(t, ValidateURL("https://example.com"))
	assert.True(t, ValidateURL("http://example.com"))
	assert.True(t, ValidateURL("example.com"))
	assert.True(t, ValidateURL("https://subdomain.example.com:8080/path?query=value#section"))
	assert.False(t, ValidateURL(":invalid"))
	assert.False(t, ValidateURL("ht tp://example.com"))
}

func TestValidateCustomSlug(t *testing.T) {
	assert.True(t, ValidateCustomSlug("abc"))
	assert.True(t, ValidateCustomSlug("my-link"))
	assert.True(t, ValidateCustomSlug("link-123-abc"))
	assert.True(t, ValidateCustomSlug("MyLink"))
	assert.True(t, ValidateCustomSlug(strings.Repeat("a", 20)))
	assert.True(t, ValidateCustomSlug("  my-link  "), "surrounding whitespace is trimmed")

	assert.False(t, ValidateCustomSlug(""))
	assert.False(t, ValidateCustomSlug("ab"))
	assert.False(t, ValidateCustomSlug(strings.Repeat("a", 21)))
	assert.False(t, ValidateCustomSlug("my_link"))
	assert.False(t, ValidateCustomSlug("my@link"))
	assert.False(t, ValidateCustomSlug("my link"))
	assert.False(t, ValidateCustomSlug("   "))
}

func TestGenerateRandomSlug(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z0-9]{6}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		slug := GenerateRandomSlug()
		assert.Regexp(t, pattern, slug)
		seen[slug] = true
	}

	// Probabilistic: 100 draws from a 36^6 space should barely collide
	assert.Greater(t, len(seen), 95)
}

func TestHostname(t *testing.T) {
	assert.Equal(t, "example.com", Hostname("https://example.com/path"))
	assert.Equal(t, "example.com", Hostname("https://Example.COM/path"))
	assert.Equal(t, "sub.example.com", Hostname("https://sub.example.com"))
	assert.Equal(t, "example.com", Hostname("https://example.com:8080"))
}

func TestIsSelfReferencing(t *testing.T) {
	hostnames := []string{"sho.rt", "www.sho.rt"}

	assert.True(t, IsSelfReferencing("https://sho.rt/abc123", hostnames))
	assert.True(t, IsSelfReferencing("https://SHO.RT/abc123", hostnames))
	assert.True(t, IsSelfReferencing("https://www.sho.rt", hostnames))
	assert.False(t, IsSelfReferencing("https://example.com", hostnames))
	assert.False(t, IsSelfReferencing("https://sho.rt.evil.com", hostnames))
	assert.False(t, IsSelfReferencing("https://example.com", nil))
}
