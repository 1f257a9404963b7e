package util

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"socialite/internal/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

type CloudinaryClient struct {
	cld *cloudinary.Cloudinary
	cfg *config.Config
}

func NewCloudinaryClient(cfg *config.Config) (*CloudinaryClient, error) {
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not configured")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &CloudinaryClient{cld: cld, cfg: cfg}, nil
}

// UploadMedia uploads an image or video read from r and returns the
// delivery URL. Used for avatars and message attachments.
func (c *CloudinaryClient) UploadMedia(r io.Reader, filename string) (string, error) {
	resourceType := "image"
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp4", ".mov", ".webm":
		resourceType = "video"
	}

	result, err := c.cld.Upload.Upload(context.Background(), r, uploader.UploadParams{
		Folder:       c.cfg.CloudinaryFolder,
		PublicID:     uuid.New().String(),
		ResourceType: resourceType,
	})
	if err != nil {
		return "", fmt.Errorf("error uploading to cloudinary: %w", err)
	}
	return result.SecureURL, nil
}
