package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/dmitrijs2005/cadastro/internal/storage/storagetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 is an in-memory objectAPI. pageSize forces pagination.
type fakeS3 struct {
	mu       sync.Mutex
	objects  map[string][]byte
	pageSize int
	getErr   error
}

func newFake() *fakeS3 { return &fakeS3{objects: map[string][]byte{}, pageSize: 2} }

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	b, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("missing")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(b))}, nil
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Key)] = b
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	prefix := aws.ToString(in.Prefix)
	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	start := 0
	if tok := aws.ToString(in.ContinuationToken); tok != "" {
		start = sort.SearchStrings(keys, tok)
	}
	end := min(start+f.pageSize, len(keys))

	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(end < len(keys))}
	for _, k := range keys[start:end] {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
	}
	if end < len(keys) {
		out.NextContinuationToken = aws.String(keys[end])
	}
	return out, nil
}

func TestContract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storagetest.Store {
		return New(newFake(), "cadastro", "kv/")
	})
}

func TestPrefixIsolation(t *testing.T) {
	fake := newFake()
	fake.objects["unrelated/blob"] = []byte("keep")
	s := New(fake, "cadastro", "kv/")
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "@fromHook:cadastro", []byte(`[]`)))
	_, ok := fake.objects["kv/@fromHook:cadastro"]
	assert.True(t, ok)

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"@fromHook:cadastro": []byte(`[]`)}, all)

	require.NoError(t, s.Clear(ctx))
	assert.Equal(t, []byte("keep"), fake.objects["unrelated/blob"])
}

func TestListPaginates(t *testing.T) {
	s := New(newFake(), "cadastro", "")
	ctx := context.Background()
	for _, k := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, s.Set(ctx, k, []byte(k)))
	}

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestGet_Error(t *testing.T) {
	fake := newFake()
	fake.getErr = errors.New("throttled")
	s := New(fake, "cadastro", "")

	_, err := s.Get(context.Background(), "k")
	require.ErrorContains(t, err, "throttled")
}

func TestOpen_RequiresBucket(t *testing.T) {
	_, err := Open(context.Background(), Config{})
	require.Error(t, err)
}

func TestOpen_StaticCredentials(t *testing.T) {
	s, err := Open(context.Background(), Config{
		Bucket:    "cadastro",
		Endpoint:  "http://127.0.0.1:9000",
		AccessKey: "AKIA",
		SecretKey: "SECRET",
		Prefix:    "kv/",
	})
	require.NoError(t, err)
	assert.Equal(t, "cadastro", s.bucket)
	assert.Equal(t, "kv/", s.prefix)
}

func TestIsNotFound(t *testing.T) {
	assert.False(t, isNotFound(nil))
	assert.True(t, isNotFound(&types.NoSuchKey{}))
	assert.True(t, isNotFound(&types.NotFound{}))
	assert.False(t, isNotFound(errors.New("other")))
}
