package flyerstore

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/coverlane/coverlane/config"
	"github.com/pkg/errors"
)

func TestHTTPBlobStore(t *testing.T) {
	objects := map[string][]byte{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		key := r.URL.Path
		switch r.Method {
		case http.MethodPut:
			buf, _ := io.ReadAll(r.Body)
			objects[key] = buf
			w.WriteHeader(http.StatusOK)
		case http.MethodDelete:
			if _, ok := objects[key]; !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			delete(objects, key)
			w.WriteHeader(http.StatusNoContent)
		case http.MethodHead:
			if _, ok := objects[key]; !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	store := NewHTTPBlobStore(config.StorageConfig{
		Endpoint:  srv.URL,
		Bucket:    "flyers",
		Apikey:    "test-key",
		PublicURL: "https://cdn.example/flyers",
	})
	ctx := context.Background()

	url, err := store.Put(ctx, "term-life_0_abc.png", "image/png", []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if url != "https://cdn.example/flyers/term-life_0_abc.png" {
		t.Errorf("public url = %q", url)
	}

	ok, err := store.Exists(ctx, "term-life_0_abc.png")
	if err != nil || !ok {
		t.Errorf("exists = %v, %v", ok, err)
	}

	if err := store.Delete(ctx, "term-life_0_abc.png"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, "term-life_0_abc.png"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}
