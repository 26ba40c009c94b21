package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	sc "github.com/eulark/eulark/internal/server/config"
	"github.com/google/uuid"
	"github.com/samber/oops"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const logoURLValidity = 15 * time.Minute

var allowedLogoExtensions = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".gif":  "image/gif",
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}

	now = time.Now
)

// LogoUpload is a presigned PUT target for a sponsor logo. The admin UI
// uploads to URL and then stores Key on the sponsor.
type LogoUpload struct {
	Key         string    `json:"key"`
	URL         string    `json:"url"`
	ContentType string    `json:"content_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// SponsorLogoService hands out presigned object storage URLs for logos.
type SponsorLogoService struct {
	config *sc.Config
}

func NewSponsorLogoService(config *sc.Config) *SponsorLogoService {
	return &SponsorLogoService{config: config}
}

// NewLogoKey returns a date-partitioned random key with the file extension kept.
func NewLogoKey(ext string) string {
	d := now()
	return fmt.Sprintf("sponsors/%d/%d/%d/%v%s", d.Year(), d.Month(), d.Day(), uuid.New(), ext)
}

func (s *SponsorLogoService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// PresignLogoUpload validates the file name and returns a PUT URL for a new key.
func (s *SponsorLogoService) PresignLogoUpload(ctx context.Context, fileName string) (*LogoUpload, error) {
	ext := strings.ToLower(path.Ext(strings.TrimSpace(fileName)))
	contentType, ok := allowedLogoExtensions[ext]
	if !ok {
		return nil, invalid("logo must be a png, jpg, webp or gif file")
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, oops.Code("S3_CONFIG_FAILED").Wrap(err)
	}

	bucket := s.config.S3Bucket
	key := NewLogoKey(ext)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: &contentType,
	}, s3.WithPresignExpires(logoURLValidity))
	if err != nil {
		return nil, oops.Code("S3_PRESIGN_FAILED").With("key", key).Wrap(err)
	}

	return &LogoUpload{
		Key:         key,
		URL:         req.URL,
		ContentType: contentType,
		ExpiresAt:   now().Add(logoURLValidity),
	}, nil
}

// PresignedLogoURL returns a GET URL for an uploaded logo.
func (s *SponsorLogoService) PresignedLogoURL(ctx context.Context, key string) (string, error) {
	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(logoURLValidity))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
