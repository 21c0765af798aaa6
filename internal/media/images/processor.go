package images

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"log/slog"
)

// maxPhotoBytes is the upload size limit for profile photos (5 MiB).
const maxPhotoBytes = 5 * 1024 * 1024

// Sentinel errors for photo validation failures.
var (
	ErrTooLarge          = errors.New("images: photo exceeds size limit")
	ErrUnsupportedFormat = errors.New("images: unsupported image format")
)

// Photo is a processed profile photo ready to attach to an account.
type Photo struct {
	// DataURL is the photo encoded as a base64 data URL, servable
	// directly to clients.
	DataURL string

	// BlurHash is a compact placeholder for progressive loading.
	BlurHash string

	// Hash is the SHA256 of the raw bytes, for cache validation.
	Hash string
}

// Processor validates and processes uploaded profile photos.
type Processor struct {
	storage *Storage
	logger  *slog.Logger
}

// NewProcessor creates a new Processor instance.
func NewProcessor(storage *Storage, logger *slog.Logger) *Processor {
	return &Processor{
		storage: storage,
		logger:  logger,
	}
}

// Process validates an uploaded photo, stores the original bytes under
// the account's ID, and returns the encoded result. Accepts JPEG, PNG,
// GIF, and WebP.
func (p *Processor) Process(accountID string, data []byte) (*Photo, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("photo data cannot be empty")
	}
	if len(data) > maxPhotoBytes {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrTooLarge, len(data), maxPhotoBytes)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	blurHash, err := ComputeBlurHash(img)
	if err != nil {
		p.logger.Warn("failed to compute blurhash",
			"account_id", accountID,
			"error", err,
		)
		// A photo without a placeholder is still usable.
		blurHash = ""
	}

	if err := p.storage.Save(accountID, data); err != nil {
		return nil, fmt.Errorf("failed to save photo: %w", err)
	}

	hash, err := p.storage.Hash(accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute photo hash: %w", err)
	}

	p.logger.Debug("processed profile photo",
		"account_id", accountID,
		"format", format,
		"size", len(data),
		"hash", hash[:8]+"...",
	)

	return &Photo{
		DataURL:  "data:image/" + format + ";base64," + base64.StdEncoding.EncodeToString(data),
		BlurHash: blurHash,
		Hash:     hash,
	}, nil
}

// Remove deletes a stored photo. Removing a photo that was never
// uploaded is not an error.
func (p *Processor) Remove(accountID string) error {
	return p.storage.Delete(accountID)
}
