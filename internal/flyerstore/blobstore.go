package flyerstore

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/guonaihong/gout"
	"github.com/pkg/errors"

	"github.com/coverlane/coverlane/config"
)

// BlobStore abstracts the external object store holding flyer images.
type BlobStore interface {
	Put(ctx context.Context, key string, contentType string, data []byte) (url string, err error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]string, error)
	Exists(ctx context.Context, key string) (bool, error)
}

const (
	storeTimeout   = 15 * time.Second
	storeAttempts  = 3 // initial call plus two retries
	storeRetryWait = 500 * time.Millisecond
)

// HTTPBlobStore talks to an S3-style object store over its REST API.
// Calls are bounded by storeTimeout and retried on transient failures.
type HTTPBlobStore struct {
	endpoint  string
	bucket    string
	apikey    string
	publicURL string
}

func NewHTTPBlobStore(cfg config.StorageConfig) *HTTPBlobStore {
	return &HTTPBlobStore{
		endpoint:  strings.TrimRight(cfg.Endpoint, "/"),
		bucket:    cfg.Bucket,
		apikey:    cfg.Apikey,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}
}

func (s *HTTPBlobStore) objectURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
}

// PublicURL returns the public address of a stored blob.
func (s *HTTPBlobStore) PublicURL(key string) string {
	return s.publicURL + "/" + key
}

func (s *HTTPBlobStore) Put(ctx context.Context, key string, contentType string, data []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var code int
	err := gout.PUT(s.objectURL(key)).
		WithContext(ctx).
		SetHeader(gout.H{
			"Content-Type":  contentType,
			"Authorization": "Bearer " + s.apikey,
		}).
		SetBody(data).
		Code(&code).
		F().Retry().Attempt(storeAttempts).WaitTime(storeRetryWait).MaxWaitTime(storeTimeout).
		Do()
	if err != nil {
		return "", errors.Wrap(err, "blob put")
	}
	if code < 200 || code >= 300 {
		return "", errors.Errorf("blob put: unexpected status %d", code)
	}
	return s.PublicURL(key), nil
}

func (s *HTTPBlobStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var code int
	err := gout.DELETE(s.objectURL(key)).
		WithContext(ctx).
		SetHeader(gout.H{"Authorization": "Bearer " + s.apikey}).
		Code(&code).
		F().Retry().Attempt(storeAttempts).WaitTime(storeRetryWait).MaxWaitTime(storeTimeout).
		Do()
	if err != nil {
		return errors.Wrap(err, "blob delete")
	}
	if code == http.StatusNotFound {
		return ErrNotFound
	}
	if code < 200 || code >= 300 {
		return errors.Errorf("blob delete: unexpected status %d", code)
	}
	return nil
}

func (s *HTTPBlobStore) Exists(ctx context.Context, key string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var code int
	err := gout.HEAD(s.objectURL(key)).
		WithContext(ctx).
		SetHeader(gout.H{"Authorization": "Bearer " + s.apikey}).
		Code(&code).
		Do()
	if err != nil {
		return false, errors.Wrap(err, "blob head")
	}
	return code >= 200 && code < 300, nil
}

type listResponse struct {
	Keys []string `json:"keys"`
}

func (s *HTTPBlobStore) List(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var code int
	var body listResponse
	err := gout.GET(fmt.Sprintf("%s/%s", s.endpoint, s.bucket)).
		WithContext(ctx).
		SetHeader(gout.H{"Authorization": "Bearer " + s.apikey}).
		Code(&code).
		BindJSON(&body).
		F().Retry().Attempt(storeAttempts).WaitTime(storeRetryWait).MaxWaitTime(storeTimeout).
		Do()
	if err != nil {
		return nil, errors.Wrap(err, "blob list")
	}
	if code < 200 || code >= 300 {
		return nil, errors.Errorf("blob list: unexpected status %d", code)
	}
	return body.Keys, nil
}
