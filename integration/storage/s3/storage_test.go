package s3_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3aws "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/onboarding/core/storage"
	"github.com/dmitrymomot/onboarding/core/validator"
	"github.com/dmitrymomot/onboarding/integration/storage/s3"
)

type object struct {
	body        []byte
	contentType string
	metadata    map[string]string
}

type fakeClient struct {
	objects map[string]object
	putErr  error
}

func newFakeClient() *fakeClient {
	return &fakeClient{objects: make(map[string]object)}
}

func (f *fakeClient) PutObject(_ context.Context, in *s3aws.PutObjectInput, _ ...func(*s3aws.Options)) (*s3aws.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = object{body: body, contentType: aws.ToString(in.ContentType), metadata: in.Metadata}
	return &s3aws.PutObjectOutput{}, nil
}

func (f *fakeClient) GetObject(_ context.Context, in *s3aws.GetObjectInput, _ ...func(*s3aws.Options)) (*s3aws.GetObjectOutput, error) {
	obj, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3aws.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(obj.body))}, nil
}

func (f *fakeClient) HeadObject(_ context.Context, in *s3aws.HeadObjectInput, _ ...func(*s3aws.Options)) (*s3aws.HeadObjectOutput, error) {
	obj, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NotFound{}
	}
	return &s3aws.HeadObjectOutput{
		ContentLength: aws.Int64(int64(len(obj.body))),
		ContentType:   aws.String(obj.contentType),
		Metadata:      obj.metadata,
	}, nil
}

func (f *fakeClient) DeleteObject(_ context.Context, in *s3aws.DeleteObjectInput, _ ...func(*s3aws.Options)) (*s3aws.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Key))
	return &s3aws.DeleteObjectOutput{}, nil
}

func (f *fakeClient) ListObjectsV2(_ context.Context, in *s3aws.ListObjectsV2Input, _ ...func(*s3aws.Options)) (*s3aws.ListObjectsV2Output, error) {
	out := &s3aws.ListObjectsV2Output{}
	for key, obj := range f.objects {
		if strings.HasPrefix(key, aws.ToString(in.Prefix)) {
			out.Contents = append(out.Contents, types.Object{Key: aws.String(key), Size: aws.Int64(int64(len(obj.body)))})
		}
	}
	return out, nil
}

// pager returns the fake client's listing split into one page per object.
type pager struct {
	pages []*s3aws.ListObjectsV2Output
	err   error
}

func (p *pager) HasMorePages() bool { return len(p.pages) > 0 || p.err != nil }

func (p *pager) NextPage(context.Context, ...func(*s3aws.Options)) (*s3aws.ListObjectsV2Output, error) {
	if p.err != nil {
		err := p.err
		p.err = nil
		return nil, err
	}
	page := p.pages[0]
	p.pages = p.pages[1:]
	return page, nil
}

func pagerFactory(c s3.Client, in *s3aws.ListObjectsV2Input) s3.Paginator {
	all, _ := c.ListObjectsV2(context.Background(), in)
	p := &pager{}
	for _, obj := range all.Contents {
		p.pages = append(p.pages, &s3aws.ListObjectsV2Output{Contents: []types.Object{obj}})
	}
	return p
}

func newStorage(t *testing.T, client *fakeClient, cfg s3.Config) *s3.Storage {
	t.Helper()
	if cfg.Bucket == "" {
		cfg.Bucket = "dfsa-documents"
	}
	if cfg.Region == "" {
		cfg.Region = "me-central-1"
	}
	s, err := s3.New(context.Background(), cfg, s3.WithClient(client), s3.WithPaginatorFactory(pagerFactory))
	require.NoError(t, err)
	return s
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cfg   s3.Config
		field string
	}{
		{"missing bucket", s3.Config{Region: "me-central-1"}, "Bucket"},
		{"missing region", s3.Config{Bucket: "dfsa-documents"}, "Region"},
		{"bucket name too long", s3.Config{Bucket: strings.Repeat("b", 64), Region: "me-central-1"}, "Bucket"},
		{"endpoint without scheme", s3.Config{Bucket: "dfsa-documents", Region: "me-central-1", Endpoint: "minio:9000"}, "Endpoint"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := s3.New(context.Background(), tt.cfg, s3.WithClient(newFakeClient()))
			require.ErrorIs(t, err, storage.ErrInvalidConfig)
			assert.True(t, validator.ExtractValidationErrors(err).Has(tt.field), err.Error())
		})
	}
}

func TestStorage_Lifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := newFakeClient()
	s := newStorage(t, client, s3.Config{})

	file, err := s.Save(ctx, storage.Object{
		Key:      "/accounts/a1/business_plan/1700000000000-plan.pdf",
		Body:     strings.NewReader("%PDF-1.7"),
		Size:     8,
		Metadata: map[string]string{"category": "business_plan"},
	})
	require.NoError(t, err)
	assert.Equal(t, "accounts/a1/business_plan/1700000000000-plan.pdf", file.Key)
	assert.Equal(t, storage.MIMEPDF, file.ContentType)

	ok, err := s.Exists(ctx, file.Key)
	require.NoError(t, err)
	assert.True(t, ok)

	stat, err := s.Stat(ctx, file.Key)
	require.NoError(t, err)
	assert.Equal(t, int64(8), stat.Size)
	assert.Equal(t, "business_plan", stat.Metadata["category"])

	rc, err := s.Open(ctx, file.Key)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "%PDF-1.7", string(body))

	require.NoError(t, s.Delete(ctx, file.Key))
	ok, err = s.Exists(ctx, file.Key)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, s.Delete(ctx, file.Key), storage.ErrFileNotFound)
	_, err = s.Open(ctx, file.Key)
	assert.ErrorIs(t, err, storage.ErrFileNotFound)
}

func TestStorage_SaveErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := newFakeClient()
	s := newStorage(t, client, s3.Config{})

	_, err := s.Save(ctx, storage.Object{Key: "../etc/passwd", Body: strings.NewReader("x")})
	assert.ErrorIs(t, err, storage.ErrInvalidPath)

	_, err = s.Save(ctx, storage.Object{Key: "a.pdf"})
	assert.ErrorIs(t, err, storage.ErrNilBody)

	client.putErr = &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"}
	_, err = s.Save(ctx, storage.Object{Key: "a.pdf", Body: strings.NewReader("x")})
	assert.ErrorIs(t, err, storage.ErrAccessDenied)

	client.putErr = context.DeadlineExceeded
	_, err = s.Save(ctx, storage.Object{Key: "a.pdf", Body: strings.NewReader("x")})
	assert.ErrorIs(t, err, storage.ErrOperationTimeout)

	client.putErr = errors.New("connection reset")
	_, err = s.Save(ctx, storage.Object{Key: "a.pdf", Body: strings.NewReader("x")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upload failed")
}

func TestStorage_List(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := newFakeClient()
	s := newStorage(t, client, s3.Config{})

	for _, key := range []string{"accounts/a1/aml/1-a.pdf", "accounts/a1/cert/2-b.pdf", "accounts/a2/cert/3-c.pdf"} {
		_, err := s.Save(ctx, storage.Object{Key: key, Body: strings.NewReader("x"), Size: 1})
		require.NoError(t, err)
	}

	entries, err := s.List(ctx, "accounts/a1/")
	require.NoError(t, err)
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.Key)
	}
	assert.ElementsMatch(t, []string{"accounts/a1/aml/1-a.pdf", "accounts/a1/cert/2-b.pdf"}, keys)

	_, err = s.List(ctx, "../")
	assert.ErrorIs(t, err, storage.ErrInvalidPath)
}

func TestStorage_ListWithoutPaginator(t *testing.T) {
	t.Parallel()

	s, err := s3.New(context.Background(), s3.Config{Bucket: "b", Region: "r"}, s3.WithClient(newFakeClient()))
	require.NoError(t, err)
	_, err = s.List(context.Background(), "accounts/")
	assert.ErrorIs(t, err, storage.ErrPaginatorNil)
}

func TestStorage_URL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  s3.Config
		want string
	}{
		{"aws virtual hosted", s3.Config{Bucket: "docs", Region: "me-central-1"},
			"https://docs.s3.me-central-1.amazonaws.com/a/b.pdf"},
		{"aws path style", s3.Config{Bucket: "docs", Region: "me-central-1", ForcePathStyle: true},
			"https://s3.me-central-1.amazonaws.com/docs/a/b.pdf"},
		{"base url", s3.Config{Bucket: "docs", Region: "me-central-1", BaseURL: "https://cdn.example.com/"},
			"https://cdn.example.com/a/b.pdf"},
		{"minio", s3.Config{Bucket: "docs", Region: "us-east-1", Endpoint: "http://localhost:9000", ForcePathStyle: true},
			"http://localhost:9000/docs/a/b.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := newStorage(t, newFakeClient(), tt.cfg)
			assert.Equal(t, tt.want, s.URL("/a/b.pdf"))
		})
	}
}
