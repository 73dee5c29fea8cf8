package media

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"ecoreport/internal/config"
	"ecoreport/internal/core/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v2/log"
)

// objectAPI is the slice of the S3 client the store needs
type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store uploads media to an S3-compatible bucket
type S3Store struct {
	client    objectAPI
	bucket    string
	publicURL string
	now       func() time.Time
}

// NewS3Store builds an S3 client from static credentials. A custom
// endpoint switches to path-style addressing for MinIO/B2.
func NewS3Store(cfg config.S3Config) (*S3Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsConfig, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = defaultPublicURL(cfg)
	}

	log.Infof("🪣 S3 media store for bucket: %s", cfg.Bucket)
	return newS3Store(client, cfg.Bucket, publicURL), nil
}

func newS3Store(client objectAPI, bucket, publicURL string) *S3Store {
	return &S3Store{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		now:       time.Now,
	}
}

// Store uploads the blob and returns its public reference
func (s *S3Store) Store(ctx context.Context, blob []byte, mimeType string) (domain.MediaRef, error) {
	accepted, err := Classify(blob, mimeType)
	if err != nil {
		return domain.MediaRef{}, err
	}

	key := "complaints/" + objectKey(s.now(), accepted.Extension)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(blob),
		ContentType:   aws.String(accepted.MimeType),
		ContentLength: aws.Int64(int64(len(blob))),
	})
	if err != nil {
		return domain.MediaRef{}, fmt.Errorf("%w: upload %s: %v", domain.ErrCollaborator, key, err)
	}

	return domain.MediaRef{
		Type:        accepted.Type,
		URL:         s.publicURL + "/" + key,
		ReferenceID: key,
	}, nil
}

// Delete removes an uploaded object. S3 reports success for missing keys.
func (s *S3Store) Delete(ctx context.Context, referenceID string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(referenceID),
	})
	if err != nil {
		return fmt.Errorf("%w: delete %s: %v", domain.ErrCollaborator, referenceID, err)
	}
	return nil
}

func defaultPublicURL(cfg config.S3Config) string {
	if cfg.Endpoint != "" {
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
}
