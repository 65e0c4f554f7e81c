// Package storage uploads listing images to a Google Cloud Storage bucket
// and hands back Firebase-style download URLs.
package storage

import (
	"context"
	"fmt"
	"net/url"
	"path"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

type ImageStore struct {
	client *gcs.Client
	bucket string
}

func NewImageStore(ctx context.Context, bucket, credentialsFile string) (*ImageStore, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage bucket is not configured")
	}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &ImageStore{client: client, bucket: bucket}, nil
}

func (s *ImageStore) Close() error {
	return s.client.Close()
}

// Upload writes data under a random object name and returns a tokenized
// download URL that can be stored on the listing as-is.
func (s *ImageStore) Upload(ctx context.Context, data []byte, contentType, ext string) (string, error) {
	token := uuid.NewString()
	objectPath := path.Join("listings", uuid.NewString()+ext)
	obj := s.client.Bucket(s.bucket).Object(objectPath)
	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{
		"firebaseStorageDownloadTokens": token,
	}
	if _, err := w.Write(data); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	escapedPath := url.PathEscape(objectPath)
	publicURL := fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		s.bucket, escapedPath, token)
	return publicURL, nil
}
