package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	s3aws "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrymomot/onboarding/core/storage"
	"github.com/dmitrymomot/onboarding/core/validator"
)

var _ storage.Storage = (*Storage)(nil)

// Client is the subset of the S3 API the document store uses.
type Client interface {
	PutObject(ctx context.Context, params *s3aws.PutObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3aws.GetObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3aws.HeadObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3aws.DeleteObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3aws.ListObjectsV2Input, optFns ...func(*s3aws.Options)) (*s3aws.ListObjectsV2Output, error)
}

// Paginator walks the pages of a ListObjectsV2 call.
type Paginator interface {
	HasMorePages() bool
	NextPage(ctx context.Context, optFns ...func(*s3aws.Options)) (*s3aws.ListObjectsV2Output, error)
}

// PaginatorFactory builds a Paginator for a client.
type PaginatorFactory func(client Client, params *s3aws.ListObjectsV2Input) Paginator

// Storage keeps onboarding documents in an S3 or S3-compatible bucket.
type Storage struct {
	client           Client
	bucket           string
	region           string
	endpoint         string
	baseURL          string
	forcePathStyle   bool
	uploadTimeout    time.Duration
	paginatorFactory PaginatorFactory
}

// Config is read from the environment with core/config.
type Config struct {
	Bucket         string `env:"S3_BUCKET,required" validate:"required;max:63"`
	Region         string `env:"S3_REGION" envDefault:"me-central-1" validate:"required"`
	AccessKeyID    string `env:"S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"S3_SECRET_KEY"`
	Endpoint       string `env:"S3_ENDPOINT" validate:"prefix:http://,https://"`
	BaseURL        string `env:"S3_BASE_URL" validate:"prefix:http://,https://"`
	ForcePathStyle bool   `env:"S3_FORCE_PATH_STYLE" envDefault:"false"`
}

// Option configures Storage.
type Option func(*options)

type options struct {
	httpClient       *http.Client
	client           Client
	configOptions    []func(*config.LoadOptions) error
	clientOptions    []func(*s3aws.Options)
	paginatorFactory PaginatorFactory
	uploadTimeout    time.Duration
}

// WithClient sets a pre-configured client, typically a mock in tests.
func WithClient(client Client) Option {
	return func(o *options) {
		o.client = client
	}
}

// WithHTTPClient sets the HTTP client used for S3 requests.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithConfigOption adds an AWS config load option.
func WithConfigOption(option func(*config.LoadOptions) error) Option {
	return func(o *options) {
		o.configOptions = append(o.configOptions, option)
	}
}

// WithClientOption adds an S3 client option.
func WithClientOption(option func(*s3aws.Options)) Option {
	return func(o *options) {
		o.clientOptions = append(o.clientOptions, option)
	}
}

// WithPaginatorFactory replaces the list paginator. Mock clients need one.
func WithPaginatorFactory(factory PaginatorFactory) Option {
	return func(o *options) {
		o.paginatorFactory = factory
	}
}

// WithUploadTimeout bounds each Save call.
func WithUploadTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.uploadTimeout = timeout
	}
}

// New creates a bucket-backed document store.
func New(ctx context.Context, cfg Config, opts ...Option) (*Storage, error) {
	if err := validator.ValidateStruct(&cfg); err != nil {
		return nil, errors.Join(storage.ErrInvalidConfig, err)
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	client := o.client
	if client == nil {
		loadOpts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			loadOpts = append(loadOpts, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
			))
		}
		if o.httpClient != nil {
			loadOpts = append(loadOpts, config.WithHTTPClient(o.httpClient))
		}
		loadOpts = append(loadOpts, o.configOptions...)

		awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, fmt.Errorf("%w: load AWS config: %w", storage.ErrInvalidConfig, err)
		}
		client = s3aws.NewFromConfig(awsCfg, func(so *s3aws.Options) {
			if cfg.Endpoint != "" {
				so.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			so.UsePathStyle = cfg.ForcePathStyle
			for _, opt := range o.clientOptions {
				opt(so)
			}
		})
	}

	factory := o.paginatorFactory
	if factory == nil {
		factory = func(c Client, params *s3aws.ListObjectsV2Input) Paginator {
			if rc, ok := c.(*s3aws.Client); ok {
				return s3aws.NewListObjectsV2Paginator(rc, params)
			}
			return nil
		}
	}

	return &Storage{
		client:           client,
		bucket:           cfg.Bucket,
		region:           cfg.Region,
		endpoint:         cfg.Endpoint,
		baseURL:          cfg.BaseURL,
		forcePathStyle:   cfg.ForcePathStyle,
		uploadTimeout:    o.uploadTimeout,
		paginatorFactory: factory,
	}, nil
}

// Save uploads an object with its content type and metadata.
func (s *Storage) Save(ctx context.Context, obj storage.Object) (*storage.File, error) {
	if s.uploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.uploadTimeout)
		defer cancel()
	}

	key, err := storage.CleanKey(obj.Key)
	if err != nil {
		return nil, err
	}
	if obj.Body == nil {
		return nil, storage.ErrNilBody
	}

	contentType := obj.ContentType
	if contentType == "" {
		contentType = storage.ContentTypeOf(key)
	}

	in := &s3aws.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        obj.Body,
		ContentType: aws.String(contentType),
		Metadata:    obj.Metadata,
	}
	if obj.Size > 0 {
		in.ContentLength = aws.Int64(obj.Size)
	}
	if _, err := s.client.PutObject(ctx, in); err != nil {
		return nil, classifyError(err, "upload")
	}

	return &storage.File{
		Key:          key,
		Size:         obj.Size,
		ContentType:  contentType,
		Metadata:     obj.Metadata,
		LastModified: time.Now().UTC(),
	}, nil
}

// Open streams an object's content.
func (s *Storage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	key, err := storage.CleanKey(key)
	if err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &s3aws.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, classifyError(err, "download")
	}
	return out.Body, nil
}

// Stat returns an object's size, content type and metadata.
func (s *Storage) Stat(ctx context.Context, key string) (*storage.File, error) {
	key, err := storage.CleanKey(key)
	if err != nil {
		return nil, err
	}
	out, err := s.client.HeadObject(ctx, &s3aws.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, classifyError(err, "stat")
	}
	return &storage.File{
		Key:          key,
		Size:         aws.ToInt64(out.ContentLength),
		ContentType:  aws.ToString(out.ContentType),
		Metadata:     out.Metadata,
		LastModified: aws.ToTime(out.LastModified),
	}, nil
}

// Delete removes an object after checking that it exists, so a missing
// key reports ErrFileNotFound rather than succeeding silently.
func (s *Storage) Delete(ctx context.Context, key string) error {
	key, err := storage.CleanKey(key)
	if err != nil {
		return err
	}
	if _, err := s.client.HeadObject(ctx, &s3aws.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return classifyError(err, "delete")
	}
	if _, err := s.client.DeleteObject(ctx, &s3aws.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return classifyError(err, "delete")
	}
	return nil
}

// Exists reports whether an object is present.
func (s *Storage) Exists(ctx context.Context, key string) (bool, error) {
	if _, err := s.Stat(ctx, key); err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// List returns every object under prefix across all pages.
func (s *Storage) List(ctx context.Context, prefix string) ([]storage.Entry, error) {
	prefix = strings.TrimPrefix(prefix, "/")
	if strings.Contains(prefix, "..") {
		return nil, fmt.Errorf("%w: %s", storage.ErrInvalidPath, prefix)
	}

	p := s.paginatorFactory(s.client, &s3aws.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	if p == nil {
		return nil, storage.ErrPaginatorNil
	}

	var entries []storage.Entry
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, classifyError(err, "list")
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if key == "" || strings.HasSuffix(key, "/") {
				continue
			}
			entries = append(entries, storage.Entry{
				Key:          key,
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}
	}
	return entries, nil
}

// URL returns the public address of a key: under BaseURL when set, else
// path-style or virtual-hosted-style on the endpoint or AWS.
func (s *Storage) URL(key string) string {
	key = strings.TrimPrefix(key, "/")

	if s.baseURL != "" {
		return strings.TrimSuffix(s.baseURL, "/") + "/" + key
	}

	if s.endpoint != "" {
		endpoint := strings.TrimSuffix(s.endpoint, "/")
		scheme := "https://"
		if after, ok := strings.CutPrefix(endpoint, "http://"); ok {
			scheme = "http://"
			endpoint = after
		} else if after, ok := strings.CutPrefix(endpoint, "https://"); ok {
			endpoint = after
		}
		if s.forcePathStyle {
			return fmt.Sprintf("%s%s/%s/%s", scheme, endpoint, s.bucket, key)
		}
		return fmt.Sprintf("%s%s.%s/%s", scheme, s.bucket, endpoint, key)
	}

	if s.forcePathStyle {
		return fmt.Sprintf("https://s3.%s.amazonaws.com/%s/%s", s.region, s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
