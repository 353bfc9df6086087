// Package s3 implements a blob.Provider for S3-compatible object storage
// services using aws-sdk-go-v2.
package s3

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/DrSkyle/hold/pkg/blob"
)

// Config carries the adapter settings. Only Bucket is required; an empty
// Region, Endpoint or credential pair falls back to the SDK default
// resolution chain (environment, shared config, instance metadata).
type Config struct {
	Bucket          string
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string

	// UsePathStyle addresses the bucket as a path segment instead of a
	// subdomain. Required by most non-AWS S3 implementations (MinIO,
	// LocalStack).
	UsePathStyle bool
}

// Client is the subset of the S3 API the provider drives. Declared as an
// interface so tests can substitute a mock per operation.
type Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Provider stores blobs as objects in a single bucket. Safe for concurrent
// use; connection pooling lives inside the SDK client.
type Provider struct {
	api    Client
	bucket string
	tracer trace.Tracer
}

// New builds a provider from cfg, loading the SDK default config with the
// overrides cfg specifies.
func New(ctx context.Context, cfg Config) (*Provider, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.Endpoint != "" {
		opts = append(opts, awsconfig.WithBaseEndpoint(cfg.Endpoint))
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, &blob.ProviderError{Err: err}
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
	})
	return NewFromClient(client, cfg.Bucket), nil
}

// NewFromClient wraps an already configured S3 client.
func NewFromClient(api Client, bucket string) *Provider {
	return &Provider{
		api:    api,
		bucket: bucket,
		tracer: otel.Tracer("hold/provider/s3"),
	}
}

// GetBlob fetches the object under key. GetObject signals absence with a
// distinguished NoSuchKey error; that becomes (nil, nil), everything else a
// ProviderError. A success response without a body is a BodyError.
func (p *Provider) GetBlob(ctx context.Context, key string) (*blob.Blob, error) {
	ctx, span := p.tracer.Start(ctx, "GetBlob", trace.WithAttributes(
		attribute.String("blob.key", key),
		attribute.String("s3.bucket", p.bucket),
	))
	defer span.End()
	slog.Debug("Fetching blob", "key", key)

	out, err := p.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			slog.Debug("Blob not found", "key", key)
			return nil, nil
		}
		span.RecordError(err)
		return nil, &blob.ProviderError{Err: err}
	}

	if out.Body == nil {
		return nil, &blob.BodyError{Message: "no body found in S3 response"}
	}
	return blob.New(key, aws.ToInt64(out.ContentLength), out.Body), nil
}

// StoreBlob uploads the payload with PutObject. The result is an empty blob
// carrying just key and size; the payload is not echoed back.
func (p *Provider) StoreBlob(ctx context.Context, b *blob.Blob) (*blob.Blob, error) {
	key := b.Key()
	size := b.Size()
	ctx, span := p.tracer.Start(ctx, "StoreBlob", trace.WithAttributes(
		attribute.String("blob.key", key),
		attribute.Int64("blob.size", size),
		attribute.String("s3.bucket", p.bucket),
	))
	defer span.End()
	slog.Debug("Storing blob", "key", key, "size", size)

	content := b.Content()
	defer content.Close()

	_, err := p.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(key),
		Body:          content,
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		span.RecordError(err)
		return nil, &blob.ProviderError{Err: err}
	}
	return blob.Empty(key, size), nil
}

// IsBlobPresent checks existence with HeadObject. HEAD responses carry no
// body, so absence arrives in two shapes: the modeled NotFound error and a
// raw 404 status. Both become (false, nil); anything else a ProviderError.
func (p *Provider) IsBlobPresent(ctx context.Context, key string) (bool, error) {
	ctx, span := p.tracer.Start(ctx, "IsBlobPresent", trace.WithAttributes(
		attribute.String("blob.key", key),
		attribute.String("s3.bucket", p.bucket),
	))
	defer span.End()
	slog.Debug("Checking blob presence", "key", key)

	_, err := p.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}

	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		slog.Debug("Blob not found", "key", key)
		return false, nil
	}
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == 404 {
		slog.Debug("Blob not found", "key", key)
		return false, nil
	}

	span.RecordError(err)
	return false, &blob.ProviderError{Err: err}
}

// DeleteBlob removes the object under key. S3 DeleteObject succeeds whether
// or not the key exists, which gives the contract its idempotency for free.
func (p *Provider) DeleteBlob(ctx context.Context, key string) error {
	ctx, span := p.tracer.Start(ctx, "DeleteBlob", trace.WithAttributes(
		attribute.String("blob.key", key),
		attribute.String("s3.bucket", p.bucket),
	))
	defer span.End()
	slog.Debug("Deleting blob", "key", key)

	_, err := p.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		span.RecordError(err)
		return &blob.ProviderError{Err: err}
	}
	return nil
}

var _ blob.Provider = (*Provider)(nil)
