package api

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPhotoPNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 120, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadProfilePhoto(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ts.signIn(t, "alice")

	resp := ts.api.Post("/api/v1/profile/photo",
		"Content-Type: image/png",
		bytes.NewReader(testPhotoPNG(t)),
	)
	assert.Equal(t, http.StatusAccepted, resp.Code, resp.Body.String())

	// Processing is asynchronous; wait for it to land on the session.
	ts.services.Identity.WaitForUploads()

	sessionResp := ts.api.Get("/api/v1/session")
	assert.True(t, strings.Contains(sessionResp.Body.String(), "data:image/png;base64,"))
	assert.Contains(t, sessionResp.Body.String(), "photo_blurhash")
}

func TestUploadProfilePhoto_RequiresAuthentication(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Post("/api/v1/profile/photo",
		"Content-Type: image/png",
		bytes.NewReader(testPhotoPNG(t)),
	)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestUploadProfilePhoto_RejectsUnsupportedType(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ts.signIn(t, "alice")

	resp := ts.api.Post("/api/v1/profile/photo",
		"Content-Type: text/plain",
		bytes.NewReader([]byte("definitely not an image")),
	)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
