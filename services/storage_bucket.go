package services

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/google/uuid"
)

type StorageBucket struct {
	*storage.BucketHandle
	name string
}

func NewStorageBucket(ctx context.Context, app *firebase.App, bucketName string) (*StorageBucket, error) {
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, err
	}
	bucketHandle, err := client.Bucket(bucketName)
	if err != nil {
		return nil, err
	}

	return &StorageBucket{
		BucketHandle: bucketHandle,
		name:         bucketName,
	}, nil
}

// UploadImage stores an image under the uploader's path prefix and returns
// its public URL
func (sb *StorageBucket) UploadImage(ctx context.Context, userId, ext, contentType string, r io.Reader) (string, error) {
	blobName := fmt.Sprintf("%v/%v%v", userId, uuid.New().String(), ext)
	w := sb.Object(blobName).NewWriter(ctx)
	w.ContentType = contentType
	w.PredefinedACL = "publicRead"
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return fmt.Sprintf("https://storage.googleapis.com/%v/%v", sb.name, blobName), nil
}

// DeleteImageByURL removes the blob a stored image URL points at
func (sb *StorageBucket) DeleteImageByURL(ctx context.Context, rawUrl string) error {
	blobName, err := BlobNameFromURL(rawUrl)
	if err != nil {
		return err
	}
	return sb.Object(blobName).Delete(ctx)
}

// BlobNameFromURL recovers the object name from a public image URL: the last
// two path segments are the uploader id and the file name
func BlobNameFromURL(rawUrl string) (string, error) {
	parsed, err := url.Parse(rawUrl)
	if err != nil {
		return "", err
	}
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) < 2 {
		return "", fmt.Errorf("image url %q has no user prefix", rawUrl)
	}
	return path.Join(segments[len(segments)-2], segments[len(segments)-1]), nil
}
