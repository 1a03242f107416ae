package catalog

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLoader is a mock implementation of the Loader interface for testing.
type mockLoader struct {
	loadFunc func(ctx context.Context, path string) (*Set, error)
}

func (m *mockLoader) Load(ctx context.Context, path string) (*Set, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx, path)
	}
	return nil, errors.New("not implemented")
}

// fakeS3 serves a single object from memory.
type fakeS3 struct {
	bucket, key string
	body        []byte
	err         error
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	if *in.Bucket != f.bucket || *in.Key != f.key {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(f.body))}, nil
}

func gzipLines(t *testing.T, lines ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	for _, l := range lines {
		_, err := w.Write([]byte(l + "\n"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func setWith(ids ...string) *Set {
	s := NewSet(len(ids))
	for _, id := range ids {
		s.products[id] = productFixture(id)
	}
	return s
}

func TestS3Loader_Load(t *testing.T) {
	client := &fakeS3{
		bucket: "rentlify-data",
		key:    "catalog/products.gz",
		body:   gzipLines(t, `{"id":"s3-sofa","name":"Sofa","rentPrice":899,"available":true}`),
	}
	loader := NewS3LoaderWithClient(client, "rentlify-data", zerolog.Nop())

	set, err := loader.Load(context.Background(), "catalog/products.gz")

	require.NoError(t, err)
	assert.Equal(t, 1, set.Size())
	p, _ := set.GetByID(context.Background(), "s3-sofa")
	require.NotNil(t, p)
	assert.Equal(t, "Sofa", p.Name)
}

func TestS3Loader_Load_MissingObject(t *testing.T) {
	client := &fakeS3{bucket: "rentlify-data", key: "catalog/products.gz"}
	loader := NewS3LoaderWithClient(client, "rentlify-data", zerolog.Nop())

	set, err := loader.Load(context.Background(), "catalog/other.gz")

	assert.Error(t, err)
	assert.Nil(t, set)
	assert.Contains(t, err.Error(), "bucket=rentlify-data")
}

func TestFallbackLoader_S3Success(t *testing.T) {
	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) (*Set, error) {
			assert.Equal(t, "catalog/products.gz", path, "S3 key should have prefix")
			return setWith("s3-item"), nil
		},
	}
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) (*Set, error) {
			t.Error("file loader should not be called when S3 succeeds")
			return nil, errors.New("should not be called")
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "catalog/", zerolog.Nop())

	set, err := fallback.Load(context.Background(), "products.gz")
	require.NoError(t, err)
	assert.Equal(t, 1, set.Size())
}

func TestFallbackLoader_S3FailsFallsBackToLocal(t *testing.T) {
	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) (*Set, error) {
			return nil, errors.New("S3 connection failed")
		},
	}
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) (*Set, error) {
			assert.Equal(t, "products.gz", path, "local path should not have prefix")
			return setWith("local-item"), nil
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "catalog/", zerolog.Nop())

	set, err := fallback.Load(context.Background(), "products.gz")
	require.NoError(t, err)
	p, _ := set.GetByID(context.Background(), "local-item")
	assert.NotNil(t, p)
}

func TestFallbackLoader_S3LoaderNil(t *testing.T) {
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) (*Set, error) {
			return setWith("local-only"), nil
		},
	}

	fallback := NewFallbackLoader(nil, fileLoader, "catalog/", zerolog.Nop())

	set, err := fallback.Load(context.Background(), "products.gz")
	require.NoError(t, err)
	assert.Equal(t, 1, set.Size())
}

func TestFallbackLoader_BothFail(t *testing.T) {
	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) (*Set, error) {
			return nil, errors.New("S3 error")
		},
	}
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) (*Set, error) {
			return nil, errors.New("file not found")
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "catalog/", zerolog.Nop())

	set, err := fallback.Load(context.Background(), "products.gz")
	assert.Error(t, err)
	assert.Nil(t, set)
	assert.Contains(t, err.Error(), "file not found")
}
