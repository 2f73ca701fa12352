package assets

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "calmicasa-api/pkg/errors"
)

type fakeObjectStore struct {
	putInput    *s3.PutObjectInput
	putErr      error
	deleteInput *s3.DeleteObjectInput
	deleteErr   error
}

func (f *fakeObjectStore) PutObjectWithContext(_ aws.Context, input *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	f.putInput = input
	return &s3.PutObjectOutput{}, f.putErr
}

func (f *fakeObjectStore) DeleteObjectWithContext(_ aws.Context, input *s3.DeleteObjectInput, _ ...request.Option) (*s3.DeleteObjectOutput, error) {
	f.deleteInput = input
	return &s3.DeleteObjectOutput{}, f.deleteErr
}

func newTestGateway(svc objectStore) *Gateway {
	return &Gateway{svc: svc, bucket: "calmicasa", region: "eu-central-1"}
}

func TestBuildObjectKey(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	assert.Equal(t, "1700000000000-photo.jpg", buildObjectKey(now, "photo.jpg"))
	assert.Equal(t, "1700000000000-myhome.jpg", buildObjectKey(now, "my home!.jpg"))
	assert.Equal(t, "1700000000000-a-b.png", buildObjectKey(now, "a-b.png"))
	assert.Equal(t, "1700000000000-", buildObjectKey(now, "日本語"))
}

func TestKeyFromAddress(t *testing.T) {
	key, ok := keyFromAddress("https://s3.eu-central-1.amazonaws.com/calmicasa/170-a.jpg", "calmicasa")
	require.True(t, ok)
	assert.Equal(t, "170-a.jpg", key)

	// Any host works as long as the bucket shows up as a path segment.
	key, ok = keyFromAddress("https://cdn.example.com/calmicasa/nested/170-a.jpg", "calmicasa")
	require.True(t, ok)
	assert.Equal(t, "nested/170-a.jpg", key)

	_, ok = keyFromAddress("https://other-bucket.example.com/170-a.jpg", "calmicasa")
	assert.False(t, ok)

	_, ok = keyFromAddress("https://x/calmicasa/", "calmicasa")
	assert.False(t, ok, "empty remainder is not a key")
}

func TestGateway_Upload(t *testing.T) {
	store := &fakeObjectStore{}
	g := newTestGateway(store)

	url, err := g.Upload(context.Background(), strings.NewReader("bytes"), "photo.jpg", "image/jpeg")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "https://s3.eu-central-1.amazonaws.com/calmicasa/"))
	assert.True(t, strings.HasSuffix(url, "-photo.jpg"))

	require.NotNil(t, store.putInput)
	assert.Equal(t, "calmicasa", aws.StringValue(store.putInput.Bucket))
	assert.Equal(t, "image/jpeg", aws.StringValue(store.putInput.ContentType))
}

func TestGateway_Upload_Failure(t *testing.T) {
	store := &fakeObjectStore{putErr: errors.New("access denied")}
	g := newTestGateway(store)

	url, err := g.Upload(context.Background(), strings.NewReader("bytes"), "photo.jpg", "image/jpeg")

	assert.Empty(t, url)
	assert.ErrorIs(t, err, apperrors.ErrUpload)
}

func TestGateway_DeleteByAddress(t *testing.T) {
	store := &fakeObjectStore{}
	g := newTestGateway(store)

	err := g.DeleteByAddress(context.Background(), "https://s3.eu-central-1.amazonaws.com/calmicasa/170-a.jpg")
	require.NoError(t, err)

	require.NotNil(t, store.deleteInput)
	assert.Equal(t, "170-a.jpg", aws.StringValue(store.deleteInput.Key))
}

func TestGateway_DeleteByAddress_UnparseableIgnored(t *testing.T) {
	store := &fakeObjectStore{}
	g := newTestGateway(store)

	assert.NoError(t, g.DeleteByAddress(context.Background(), "https://elsewhere.example.com/a.jpg"))
	assert.Nil(t, store.deleteInput, "no delete call for an address we cannot map to a key")
}

func TestGateway_DeleteByAddress_EmptyAddress(t *testing.T) {
	store := &fakeObjectStore{}
	g := newTestGateway(store)

	assert.NoError(t, g.DeleteByAddress(context.Background(), ""))
	assert.Nil(t, store.deleteInput)
}

func TestGateway_DeleteByAddress_StoreFailure(t *testing.T) {
	store := &fakeObjectStore{deleteErr: errors.New("unavailable")}
	g := newTestGateway(store)

	err := g.DeleteByAddress(context.Background(), "https://s3.eu-central-1.amazonaws.com/calmicasa/170-a.jpg")
	assert.Error(t, err)
}
