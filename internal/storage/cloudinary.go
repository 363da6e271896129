package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/gabadev/furduncinho047-api/internal/config"
)

type CloudinaryStore struct {
	client *cloudinary.Cloudinary
}

func NewCloudinaryStore(conf *config.CloudinaryConfig) (*CloudinaryStore, error) {
	client, err := cloudinary.NewFromParams(conf.CloudName, conf.APIKey, conf.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary.NewFromParams -> %w", err)
	}

	return &CloudinaryStore{
		client: client,
	}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, data []byte, folder string) (string, error) {
	resp, err := s.client.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder: folder,
	})
	if err != nil {
		return "", fmt.Errorf("s.client.Upload.Upload -> %w", err)
	}

	// The SDK reports some API failures in the response body instead of err.
	if resp.Error.Message != "" {
		return "", fmt.Errorf("s.client.Upload.Upload -> %w", errors.New(resp.Error.Message))
	}
	if resp.SecureURL == "" {
		return "", errors.New("upload returned no secure URL")
	}

	return resp.SecureURL, nil
}
