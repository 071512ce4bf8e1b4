package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHostnames_IncludesPublicURL(t *testing.T) {
	c := &Config{
		PublicURL:        "https://Sho.RT",
		ServiceHostnames: " sho.rt , Example.COM ,",
	}

	assert.Equal(t, []string{"sho.rt", "example.com"}, c.Hostnames())
}

func TestHostnames_PublicURLOnly(t *testing.T) {
	c := &Config{PublicURL: "https://sho.rt:8080/base"}

	assert.Equal(t, []string{"sho.rt"}, c.Hostnames())
}

func TestHostnames_Empty(t *testing.T) {
	c := &Config{}

	assert.Empty(t, c.Hostnames())
}

func TestHostnames_UnparsablePublicURL(t *testing.T) {
	c := &Config{PublicURL: "://nope", ServiceHostnames: "sho.rt"}

	assert.Equal(t, []string{"sho.rt"}, c.Hostnames())
}
