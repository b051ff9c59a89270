// Package assets - Test đường dẫn object và ánh xạ URL công khai.
package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectPath(t *testing.T) {
	assert.Equal(t, "images/questions/abc123.png", ObjectPath("questions", "abc123", "png"))
	assert.Equal(t, "images/questions/abc123.png", ObjectPath("questions", "abc123", ".PNG"), "phần mở rộng được chuẩn hóa")
	assert.Equal(t, "images/questions/abc123.jpg", ObjectPath("questions", "abc123", " jpg "))
}

func TestExtForContentType(t *testing.T) {
	ext, err := ExtForContentType("image/png")
	assert.NoError(t, err)
	assert.Equal(t, "png", ext)

	ext, err = ExtForContentType("IMAGE/JPEG")
	assert.NoError(t, err)
	assert.Equal(t, "jpg", ext)

	_, err = ExtForContentType("application/pdf")
	assert.Error(t, err, "content type không phải ảnh được hỗ trợ phải bị từ chối")
}

func TestPublicURL(t *testing.T) {
	url := PublicURL("my-bucket", "images/questions/abc.png")
	assert.Equal(t, "https://storage.googleapis.com/my-bucket/images/questions/abc.png", url)
}

func TestObjectPathFromURL(t *testing.T) {
	path, ok := objectPathFromURL("https://storage.googleapis.com/my-bucket/images/questions/abc.png")
	assert.True(t, ok)
	assert.Equal(t, "images/questions/abc.png", path)

	// URL ngoài bucket ảnh của hệ thống bị bỏ qua
	_, ok = objectPathFromURL("https://example.com/images/questions/abc.png")
	assert.False(t, ok)

	_, ok = objectPathFromURL("https://storage.googleapis.com/my-bucket/other/abc.png")
	assert.False(t, ok)

	_, ok = objectPathFromURL("not a url ://")
	assert.False(t, ok)

	_, ok = objectPathFromURL("https://storage.googleapis.com/bucket-only")
	assert.False(t, ok)
}
