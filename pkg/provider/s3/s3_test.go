package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	"github.com/DrSkyle/hold/pkg/blob"
)

// MockClient implements Client for testing classification per operation.
type MockClient struct {
	GetObjectFunc    func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObjectFunc    func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObjectFunc   func(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObjectFunc func(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

func (m *MockClient) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	return m.GetObjectFunc(ctx, params, optFns...)
}

func (m *MockClient) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	return m.PutObjectFunc(ctx, params, optFns...)
}

func (m *MockClient) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	return m.HeadObjectFunc(ctx, params, optFns...)
}

func (m *MockClient) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	return m.DeleteObjectFunc(ctx, params, optFns...)
}

func statusError(code int, msg string) error {
	return &awshttp.ResponseError{
		ResponseError: &smithyhttp.ResponseError{
			Response: &smithyhttp.Response{Response: &http.Response{StatusCode: code}},
			Err:      errors.New(msg),
		},
	}
}

func TestGetBlobNoSuchKeyIsAbsence(t *testing.T) {
	p := NewFromClient(&MockClient{
		GetObjectFunc: func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
			return nil, &types.NoSuchKey{}
		},
	}, "bucket")

	got, err := p.GetBlob(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Expected absence, not an error: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil blob, got %+v", got)
	}
}

func TestGetBlobTransportErrorIsProviderError(t *testing.T) {
	cause := errors.New("connection reset by peer")
	p := NewFromClient(&MockClient{
		GetObjectFunc: func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
			return nil, cause
		},
	}, "bucket")

	_, err := p.GetBlob(context.Background(), "key")
	var perr *blob.ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("Expected ProviderError, got %T: %v", err, err)
	}
	if !errors.Is(err, cause) {
		t.Error("Expected the transport error to be the chained cause")
	}
}

func TestGetBlobMissingBodyIsBodyError(t *testing.T) {
	p := NewFromClient(&MockClient{
		GetObjectFunc: func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
			return &s3.GetObjectOutput{Body: nil, ContentLength: aws.Int64(5)}, nil
		},
	}, "bucket")

	_, err := p.GetBlob(context.Background(), "key")
	var berr *blob.BodyError
	if !errors.As(err, &berr) {
		t.Fatalf("Expected BodyError, got %T: %v", err, err)
	}
}

func TestGetBlobSuccess(t *testing.T) {
	p := NewFromClient(&MockClient{
		GetObjectFunc: func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
			if aws.ToString(params.Bucket) != "bucket" || aws.ToString(params.Key) != "a/b.txt" {
				t.Errorf("Unexpected request: %+v", params)
			}
			return &s3.GetObjectOutput{
				Body:          io.NopCloser(bytes.NewReader([]byte("hello"))),
				ContentLength: aws.Int64(5),
			}, nil
		},
	}, "bucket")

	got, err := p.GetBlob(context.Background(), "a/b.txt")
	if err != nil {
		t.Fatalf("GetBlob failed: %v", err)
	}
	if got.Key() != "a/b.txt" || got.Size() != 5 {
		t.Errorf("Unexpected blob: key=%q size=%d", got.Key(), got.Size())
	}
	data, err := io.ReadAll(got.Content())
	if err != nil || string(data) != "hello" {
		t.Errorf("Unexpected content %q (err=%v)", data, err)
	}
}

func TestStoreBlobReturnsEmptyEcho(t *testing.T) {
	var uploaded []byte
	p := NewFromClient(&MockClient{
		PutObjectFunc: func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
			if aws.ToInt64(params.ContentLength) != 5 {
				t.Errorf("Expected ContentLength 5, got %d", aws.ToInt64(params.ContentLength))
			}
			var err error
			uploaded, err = io.ReadAll(params.Body)
			return &s3.PutObjectOutput{}, err
		},
	}, "bucket")

	stored, err := p.StoreBlob(context.Background(), blob.FromBytes("a/b.txt", []byte("hello")))
	if err != nil {
		t.Fatalf("StoreBlob failed: %v", err)
	}
	if string(uploaded) != "hello" {
		t.Errorf("Expected payload to be uploaded, got %q", uploaded)
	}
	if stored.Key() != "a/b.txt" || stored.Size() != 5 {
		t.Errorf("Unexpected store result: key=%q size=%d", stored.Key(), stored.Size())
	}
	// The echo carries no payload bytes.
	data, err := io.ReadAll(stored.Content())
	if err != nil || len(data) != 0 {
		t.Errorf("Expected an empty echo, got %q (err=%v)", data, err)
	}
}

func TestStoreBlobFailureIsProviderError(t *testing.T) {
	cause := errors.New("AccessDenied")
	p := NewFromClient(&MockClient{
		PutObjectFunc: func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
			return nil, cause
		},
	}, "bucket")

	_, err := p.StoreBlob(context.Background(), blob.FromBytes("k", []byte("v")))
	var perr *blob.ProviderError
	if !errors.As(err, &perr) || !errors.Is(err, cause) {
		t.Errorf("Expected ProviderError chaining the cause, got %v", err)
	}
}

func TestIsBlobPresentAbsenceShapes(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "modeled NotFound", err: &types.NotFound{}},
		{name: "raw 404 status", err: statusError(404, "Not Found")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewFromClient(&MockClient{
				HeadObjectFunc: func(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
					return nil, tt.err
				},
			}, "bucket")

			present, err := p.IsBlobPresent(context.Background(), "missing")
			if err != nil {
				t.Fatalf("Expected absence, not an error: %v", err)
			}
			if present {
				t.Error("Expected absence")
			}
		})
	}
}

func TestIsBlobPresentTrue(t *testing.T) {
	p := NewFromClient(&MockClient{
		HeadObjectFunc: func(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
			return &s3.HeadObjectOutput{ContentLength: aws.Int64(5)}, nil
		},
	}, "bucket")

	present, err := p.IsBlobPresent(context.Background(), "a/b.txt")
	if err != nil || !present {
		t.Errorf("Expected presence, got present=%v err=%v", present, err)
	}
}

func TestIsBlobPresentNon404StatusIsProviderError(t *testing.T) {
	p := NewFromClient(&MockClient{
		HeadObjectFunc: func(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
			return nil, statusError(403, "Forbidden")
		},
	}, "bucket")

	_, err := p.IsBlobPresent(context.Background(), "key")
	var perr *blob.ProviderError
	if !errors.As(err, &perr) {
		t.Errorf("A 403 must not be reclassified as absence, got %v", err)
	}
}

func TestDeleteBlob(t *testing.T) {
	deleted := false
	p := NewFromClient(&MockClient{
		DeleteObjectFunc: func(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
			deleted = true
			return &s3.DeleteObjectOutput{}, nil
		},
	}, "bucket")

	if err := p.DeleteBlob(context.Background(), "a/b.txt"); err != nil {
		t.Fatalf("DeleteBlob failed: %v", err)
	}
	if !deleted {
		t.Error("Expected DeleteObject to be called")
	}
}

func TestDeleteBlobFailureIsProviderError(t *testing.T) {
	cause := errors.New("InternalError")
	p := NewFromClient(&MockClient{
		DeleteObjectFunc: func(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
			return nil, cause
		},
	}, "bucket")

	err := p.DeleteBlob(context.Background(), "key")
	var perr *blob.ProviderError
	if !errors.As(err, &perr) || !errors.Is(err, cause) {
		t.Errorf("Expected ProviderError chaining the cause, got %v", err)
	}
}
