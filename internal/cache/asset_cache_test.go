package cache

import (
	"testing"
	"time"

	"github.com/getmentor/companyforms/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestAssetCache_SetGet(t *testing.T) {
	ac := NewAssetCache(time.Minute)
	key := ContentKey("image/png", []byte("png-bytes"))

	_, found := ac.Get(key)
	assert.False(t, found)

	ref := models.AssetRef{StorageKey: "company-logos/a.png", DisplayURL: "http://cdn/company-logos/a.png"}
	ac.Set(key, ref)

	got, found := ac.Get(key)
	assert.True(t, found)
	assert.Equal(t, ref, got)
	assert.Equal(t, 1, ac.Len())
}

func TestAssetCache_Expires(t *testing.T) {
	ac := NewAssetCache(10 * time.Millisecond)
	key := ContentKey("image/png", []byte("x"))
	ac.Set(key, models.AssetRef{StorageKey: "k"})

	assert.Eventually(t, func() bool {
		_, found := ac.Get(key)
		return !found
	}, time.Second, 5*time.Millisecond)
}

func TestContentKey(t *testing.T) {
	a := ContentKey("image/png", []byte("same"))
	b := ContentKey("image/png", []byte("same"))
	c := ContentKey("image/jpeg", []byte("same"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
