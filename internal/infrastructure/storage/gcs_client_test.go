package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObjectName(t *testing.T) {
	now := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)
	name := ObjectName("product-images", "image/png", now)

	assert.True(t, strings.HasPrefix(name, "public/product-images/"))
	assert.True(t, strings.HasSuffix(name, "-20261016093000.png"))
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".jpg", Extension("image/jpeg"))
	assert.Equal(t, ".webp", Extension("image/webp"))
	assert.Equal(t, ".bin", Extension("application/zip"))
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t,
		"https://storage.googleapis.com/stacksphere-media/public/a.png",
		PublicURL("stacksphere-media", "public/a.png"))
}
