package assets

import (
	"context"
	"fmt"
	"io"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"calmicasa-api/internal/config"
	apperrors "calmicasa-api/pkg/errors"
)

const emptyAWSSessionToken = ""

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// objectStore is the slice of the S3 API the gateway needs.
type objectStore interface {
	PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
	DeleteObjectWithContext(ctx aws.Context, input *s3.DeleteObjectInput, opts ...request.Option) (*s3.DeleteObjectOutput, error)
}

// Gateway uploads blobs into a single fixed bucket and deletes them again by
// the public address it handed out. Keys are `{unix-millis}-{sanitized name}`,
// so a key is never reused and uploads never overwrite.
type Gateway struct {
	svc    objectStore
	bucket string
	region string
}

func NewGateway(cfg *config.AWSConfig) (*Gateway, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			emptyAWSSessionToken,
		),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &Gateway{
		svc:    s3.New(sess),
		bucket: cfg.Bucket,
		region: cfg.Region,
	}, nil
}

// Upload stores the blob under a fresh key and returns its public address.
func (g *Gateway) Upload(ctx context.Context, body io.ReadSeeker, originalName, contentType string) (string, error) {
	key := buildObjectKey(time.Now(), originalName)

	_, err := g.svc.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(g.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})

	if err != nil {
		return "", apperrors.Upload("failed to upload object", err)
	}

	return g.publicURL(key), nil
}

// DeleteByAddress derives the storage key from a previously returned public
// address and deletes the object. An address that does not contain the bucket
// segment is logged and ignored; the caller treats the whole call as
// best-effort either way.
func (g *Gateway) DeleteByAddress(ctx context.Context, address string) error {
	if address == "" {
		return nil
	}

	key, ok := keyFromAddress(address, g.bucket)
	if !ok {
		log.Printf("asset delete skipped, cannot derive key from address: %s", address)
		return nil
	}

	_, err := g.svc.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(key),
	})

	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}

	return nil
}

// publicURL renders the path-style address. Path style keeps the bucket as a
// path segment, which is what keyFromAddress splits on when deleting.
func (g *Gateway) publicURL(key string) string {
	return fmt.Sprintf("https://s3.%s.amazonaws.com/%s/%s", g.region, g.bucket, key)
}

// buildObjectKey prefixes the sanitized original filename with a millisecond
// timestamp. Everything outside [a-zA-Z0-9.-] is stripped from the name.
func buildObjectKey(now time.Time, originalName string) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), unsafeKeyChars.ReplaceAllString(originalName, ""))
}

// keyFromAddress inverts a public address back to its storage key by locating
// the bucket segment and taking the remainder.
func keyFromAddress(address, bucket string) (string, bool) {
	parts := strings.SplitN(address, bucket+"/", 2)
	if len(parts) < 2 || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
