package cas

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.trai.ch/coil/internal/core/domain"
	"go.trai.ch/coil/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CacheStore = (*S3Store)(nil)

// ObjectAPI is the subset of the S3 client the store uses.
type ObjectAPI interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store keeps entries as objects "<prefix>/<key>.js" in a bucket.
// It does not support listing or purging.
type S3Store struct {
	api    ObjectAPI
	bucket string
	prefix string
}

// NewS3Store loads the AWS configuration chain and creates a store for bucket.
// An empty region defers to the chain.
func NewS3Store(ctx context.Context, bucket, prefix, region string) (*S3Store, error) {
	if bucket == "" {
		return nil, zerr.With(domain.ErrMissingBackendConfig, "setting", "COIL_S3_BUCKET")
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	return NewS3StoreWithAPI(s3.NewFromConfig(cfg), bucket, prefix), nil
}

// NewS3StoreWithAPI creates a store on an existing client.
func NewS3StoreWithAPI(api ObjectAPI, bucket, prefix string) *S3Store {
	return &S3Store{api: api, bucket: bucket, prefix: prefix}
}

// Exists reports whether the object for key is present.
func (s *S3Store) Exists(ctx context.Context, key domain.CacheKey) (bool, error) {
	_, err := s.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}
	return true, nil
}

// Read returns the object for key, or domain.ErrCacheMiss.
func (s *S3Store) Read(ctx context.Context, key domain.CacheKey) (*domain.CompiledArtifact, error) {
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrCacheMiss
		}
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}
	defer func() { _ = out.Body.Close() }()

	code, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}
	return &domain.CompiledArtifact{Code: code}, nil
}

// Write uploads the artifact's code under key. S3 replaces whole objects,
// so readers never observe a partial entry.
func (s *S3Store) Write(ctx context.Context, key domain.CacheKey, artifact *domain.CompiledArtifact) error {
	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.objectKey(key)),
		Body:          bytes.NewReader(artifact.Code),
		ContentLength: aws.Int64(int64(len(artifact.Code))),
		ContentType:   aws.String("application/javascript"),
	})
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	return nil
}

func (s *S3Store) objectKey(key domain.CacheKey) string {
	if s.prefix == "" {
		return key.FileName()
	}
	return path.Join(s.prefix, key.FileName())
}

func isNotFound(err error) bool {
	var notFound *types.NotFound
	var noSuchKey *types.NoSuchKey
	return errors.As(err, &notFound) || errors.As(err, &noSuchKey)
}
