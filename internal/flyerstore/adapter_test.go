package flyerstore

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/coverlane/coverlane/internal/domain"
)

type fakeBlobStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	failPut bool
	failDel bool
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: make(map[string][]byte)}
}

func (f *fakeBlobStore) Put(_ context.Context, key, _ string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPut {
		return "", errors.New("put refused")
	}
	f.objects[key] = data
	return "https://cdn.example/flyers/" + key, nil
}

func (f *fakeBlobStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDel {
		return errors.New("delete refused")
	}
	if _, ok := f.objects[key]; !ok {
		return ErrNotFound
	}
	delete(f.objects, key)
	return nil
}

func (f *fakeBlobStore) List(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.objects))
	for k := range f.objects {
		keys = append(keys, k)
	}
	return keys, nil
}

func (f *fakeBlobStore) Exists(_ context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[key]
	return ok, nil
}

func (f *fakeBlobStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(domain.Tables...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testAdapter(t *testing.T) (*Adapter, *fakeBlobStore, *gorm.DB) {
	t.Helper()
	blobs := newFakeBlobStore()
	db := testDB(t)
	return NewAdapter(db, blobs, nil), blobs, db
}

var pngBytes = bytes.Repeat([]byte{0x89}, 128)

func TestUploadAndList(t *testing.T) {
	adapter, blobs, _ := testAdapter(t)
	ctx := context.Background()

	res, err := adapter.Upload(ctx, pngBytes, "image/png", "term-life", 3)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if res.Filename == "" || res.URL == "" {
		t.Fatalf("upload result incomplete: %+v", res)
	}
	if blobs.count() != 1 {
		t.Fatalf("blob count = %d, want 1", blobs.count())
	}

	if err := adapter.UpdateMetadata(ctx, "term-life", 3, "A", "B", res.URL); err != nil {
		t.Fatalf("update metadata: %v", err)
	}

	grouped, err := adapter.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	entries := grouped["term-life"]
	if len(entries) != 1 {
		t.Fatalf("term-life entries = %d, want 1", len(entries))
	}
	if entries[0].Name != "A" || entries[0].Description != "B" {
		t.Errorf("metadata round trip: %+v", entries[0])
	}
}

func TestUploadValidation(t *testing.T) {
	adapter, blobs, _ := testAdapter(t)
	ctx := context.Background()

	cases := []struct {
		name        string
		data        []byte
		contentType string
		product     string
		index       int
		want        error
	}{
		{"oversized", make([]byte, MaxUploadSize+1), "image/png", "term-life", 0, ErrInvalidFile},
		{"empty", nil, "image/png", "term-life", 0, ErrInvalidFile},
		{"bad type", pngBytes, "application/pdf", "term-life", 0, ErrUnsupportedType},
		{"unknown product", pngBytes, "image/png", "boat-insurance", 0, ErrValidation},
		{"negative index", pngBytes, "image/png", "term-life", -1, ErrValidation},
		{"index past slots", pngBytes, "image/png", "term-life", 30, ErrValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := adapter.Upload(ctx, tc.data, tc.contentType, tc.product, tc.index)
			if !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
	if blobs.count() != 0 {
		t.Errorf("rejected uploads must not write blobs, count = %d", blobs.count())
	}
}

func TestReuploadReplacesSlot(t *testing.T) {
	adapter, blobs, db := testAdapter(t)
	ctx := context.Background()

	first, err := adapter.Upload(ctx, pngBytes, "image/png", "whole-life", 0)
	if err != nil {
		t.Fatal(err)
	}
	second, err := adapter.Upload(ctx, pngBytes, "image/jpeg", "whole-life", 0)
	if err != nil {
		t.Fatal(err)
	}
	if first.Filename == second.Filename {
		t.Error("replacement filename should differ")
	}

	var count int64
	db.Model(&domain.FlyerSlot{}).Where("product_type = ? and flyer_index = ?", "whole-life", 0).Count(&count)
	if count != 1 {
		t.Errorf("slot rows = %d, want exactly 1 after re-upload", count)
	}
	// replaced blob was cleaned up
	if blobs.count() != 1 {
		t.Errorf("blob count = %d, want 1 after replacement", blobs.count())
	}
	if ok, _ := blobs.Exists(ctx, second.Filename); !ok {
		t.Error("new blob missing")
	}
}

func TestUploadCompensatesOnMetadataFailure(t *testing.T) {
	blobs := newFakeBlobStore()
	db := testDB(t)
	adapter := NewAdapter(db, blobs, nil)
	ctx := context.Background()

	// Drop the table to force the upsert to fail after the blob write.
	if err := db.Migrator().DropTable(&domain.FlyerSlot{}); err != nil {
		t.Fatal(err)
	}

	_, err := adapter.Upload(ctx, pngBytes, "image/png", "term-life", 1)
	if !errors.Is(err, ErrMetadataWrite) {
		t.Fatalf("err = %v, want ErrMetadataWrite", err)
	}
	if blobs.count() != 0 {
		t.Errorf("compensating delete did not run, blob count = %d", blobs.count())
	}
}

func TestUploadSurfacesOrphanWhenCompensationFails(t *testing.T) {
	blobs := newFakeBlobStore()
	db := testDB(t)
	adapter := NewAdapter(db, blobs, nil)
	ctx := context.Background()

	if err := db.Migrator().DropTable(&domain.FlyerSlot{}); err != nil {
		t.Fatal(err)
	}
	blobs.failDel = true

	_, err := adapter.Upload(ctx, pngBytes, "image/png", "term-life", 1)
	if !errors.Is(err, ErrMetadataWrite) {
		t.Fatalf("err = %v, want ErrMetadataWrite", err)
	}
	if !bytes.Contains([]byte(err.Error()), []byte("orphaned")) {
		t.Errorf("error should name the orphaned blob: %v", err)
	}
}

func TestDeleteTraversalRejected(t *testing.T) {
	adapter, blobs, _ := testAdapter(t)
	ctx := context.Background()

	for _, name := range []string{"../../etc/passwd", "a/b.png", `a\b.png`, ".."} {
		if err := adapter.Delete(ctx, name); !errors.Is(err, ErrInvalidFilename) {
			t.Errorf("Delete(%q) err = %v, want ErrInvalidFilename", name, err)
		}
	}
	if blobs.count() != 0 {
		t.Error("traversal attempts must not reach storage")
	}
}

func TestDeleteNotFound(t *testing.T) {
	adapter, _, _ := testAdapter(t)
	if err := adapter.Delete(context.Background(), "missing.png"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteRemovesBlobAndRow(t *testing.T) {
	adapter, blobs, db := testAdapter(t)
	ctx := context.Background()

	res, err := adapter.Upload(ctx, pngBytes, "image/gif", "final-expense", 5)
	if err != nil {
		t.Fatal(err)
	}
	if err := adapter.Delete(ctx, res.Filename); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if blobs.count() != 0 {
		t.Error("blob not removed")
	}
	var count int64
	db.Model(&domain.FlyerSlot{}).Count(&count)
	if count != 0 {
		t.Error("row not removed")
	}
}

func TestUpdateMetadataValidation(t *testing.T) {
	adapter, _, _ := testAdapter(t)
	ctx := context.Background()
	if err := adapter.UpdateMetadata(ctx, "", 0, "n", "d", ""); !errors.Is(err, ErrValidation) {
		t.Errorf("empty product err = %v, want ErrValidation", err)
	}
	if err := adapter.UpdateMetadata(ctx, "term-life", -1, "n", "d", ""); !errors.Is(err, ErrValidation) {
		t.Errorf("negative index err = %v, want ErrValidation", err)
	}
}

func TestSweepOrphans(t *testing.T) {
	adapter, blobs, _ := testAdapter(t)
	ctx := context.Background()

	res, err := adapter.Upload(ctx, pngBytes, "image/png", "term-life", 2)
	if err != nil {
		t.Fatal(err)
	}
	// plant two orphans
	_, _ = blobs.Put(ctx, "term-life_9_stale1.png", "image/png", pngBytes)
	_, _ = blobs.Put(ctx, "term-life_9_stale2.png", "image/png", pngBytes)

	removed, err := adapter.SweepOrphans(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	if ok, _ := blobs.Exists(ctx, res.Filename); !ok {
		t.Error("sweep must keep referenced blobs")
	}
}
