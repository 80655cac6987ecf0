package cloud

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jlexm/turtle-tracker-svc/common"
	"github.com/jlexm/turtle-tracker-svc/common/logging"
	"github.com/jlexm/turtle-tracker-svc/common/utils"
	"go.opencensus.io/trace"
	"go.uber.org/zap"
	"log"
	"os"
	"strings"
	"time"
)

// S3Config holds the construction parameters of the blob store.
// Endpoint and PathStyle allow S3 compatible backends such as GCS interoperability or MinIO.
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	PathStyle       bool
	AccessKeyID     string
	SecretAccessKey string
	// PublicBaseURL, when set, makes GetURL return PublicBaseURL/path instead of a presigned URL
	PublicBaseURL string
	PresignExpiry time.Duration
}

type S3Repository struct {
	client        *s3.Client
	presign       *s3.PresignClient
	bucket        string
	publicBaseURL string
	presignExpiry time.Duration
	logger        *zap.SugaredLogger
}

var S3RepositoryObj *S3Repository

// GetS3ConfigFromEnv reads the blob store configuration from the environment
func GetS3ConfigFromEnv() S3Config {
	return S3Config{
		Bucket:          os.Getenv(common.EnvBlobS3Bucket),
		Region:          os.Getenv(common.EnvBlobS3Region),
		Endpoint:        os.Getenv(common.EnvBlobS3Endpoint),
		PathStyle:       strings.EqualFold(os.Getenv(common.EnvBlobS3PathStyle), "true"),
		AccessKeyID:     os.Getenv(common.EnvBlobS3AccessKeyID),
		SecretAccessKey: os.Getenv(common.EnvBlobS3SecretAccessKey),
		PublicBaseURL:   os.Getenv(common.EnvBlobPublicBaseURL),
	}
}

// NewS3Repository returns the shared S3Repository built from the environment
func NewS3Repository(ctx context.Context) *S3Repository {
	ctx, span := trace.StartSpan(ctx, utils.GetSpanName("s3.NewS3Repository"))
	defer span.End()
	if S3RepositoryObj != nil {
		S3RepositoryObj.logger = logging.GetLoggerFromContext(ctx)

		return S3RepositoryObj
	}
	repository, err := NewS3RepositoryWithConfig(ctx, GetS3ConfigFromEnv())
	if err != nil {
		log.Fatalf("Failed to create s3 client: %v", err)
	}
	S3RepositoryObj = repository

	return S3RepositoryObj
}

// NewS3RepositoryWithConfig creates an S3Repository for the passed configuration
func NewS3RepositoryWithConfig(ctx context.Context, cfg S3Config) (*S3Repository, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = common.DefaultS3Region
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	expiry := cfg.PresignExpiry
	if expiry <= 0 {
		expiry = common.DefaultPresignExpiry
	}

	return &S3Repository{
		client:        client,
		presign:       s3.NewPresignClient(client),
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
		presignExpiry: expiry,
		logger:        logging.GetLoggerFromContext(ctx),
	}, nil
}

// Put writes data under path, replacing any object already stored there
func (s *S3Repository) Put(ctx context.Context, path string, data []byte, contentType string) error {
	ctx, span := trace.StartSpan(ctx, utils.GetSpanName("s3.Put"))
	defer span.End()
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(path),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		s.logger.Errorf("Error occurred while uploading %s to bucket %s : %v", path, s.bucket, err)

		return fmt.Errorf("upload %s: %w", path, err)
	}
	s.logger.Debugf("Uploaded %d bytes to %s", len(data), path)

	return nil
}

// GetURL returns a retrievable URL for path, either under the public base URL or presigned
func (s *S3Repository) GetURL(ctx context.Context, path string) (string, error) {
	ctx, span := trace.StartSpan(ctx, utils.GetSpanName("s3.GetURL"))
	defer span.End()
	if s.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s", s.publicBaseURL, path), nil
	}
	request, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	}, func(po *s3.PresignOptions) { po.Expires = s.presignExpiry })
	if err != nil {
		s.logger.Errorf("Error occurred while presigning %s : %v", path, err)

		return "", err
	}

	return request.URL, nil
}
