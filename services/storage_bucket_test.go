package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlobNameFromURL(t *testing.T) {
	blobName, err := BlobNameFromURL("https://storage.googleapis.com/post-images/uid123/abc.png")
	require.NoError(t, err)
	assert.Equal(t, "uid123/abc.png", blobName)
}

func TestBlobNameFromURLDeepPath(t *testing.T) {
	blobName, err := BlobNameFromURL("https://example.com/v1/buckets/post-images/uid123/abc.png")
	require.NoError(t, err)
	assert.Equal(t, "uid123/abc.png", blobName)
}

func TestBlobNameFromURLTooShort(t *testing.T) {
	_, err := BlobNameFromURL("https://example.com/abc.png")
	assert.Error(t, err)
}
