package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerProfileRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "uploadProfilePhoto",
		Method:        http.MethodPost,
		Path:          "/api/v1/profile/photo",
		Summary:       "Upload profile photo",
		Description:   "Accepts an image for the signed-in account. Processing happens in the background; a session event announces the finished photo.",
		Tags:          []string{"Profile"},
		DefaultStatus: http.StatusAccepted,
	}, s.handleUploadProfilePhoto)
}

// UploadPhotoInput contains the photo upload request.
type UploadPhotoInput struct {
	ContentType string `header:"Content-Type" doc:"Image content type"`
	RawBody     []byte
}

func (s *Server) handleUploadProfilePhoto(ctx context.Context, input *UploadPhotoInput) (*MessageOutput, error) {
	if !isValidImageType(input.ContentType) {
		s.logger.Warn("Rejected photo upload",
			"content_type", input.ContentType,
			"body_size", len(input.RawBody),
		)
		return nil, huma.Error400BadRequest(
			fmt.Sprintf("invalid image type '%s', must be image/jpeg, image/png, image/gif, or image/webp", input.ContentType),
		)
	}

	if err := s.services.Identity.UploadProfilePhoto(ctx, input.RawBody); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Photo accepted for processing"}}, nil
}

// isValidImageType checks the upload content type against the decoders
// the image processor registers.
func isValidImageType(contentType string) bool {
	base := contentType
	if i := strings.Index(contentType, ";"); i >= 0 {
		base = contentType[:i]
	}
	switch strings.TrimSpace(base) {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	}
	return false
}
