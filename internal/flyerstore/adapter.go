// Package flyerstore manages flyer image blobs and their metadata rows as a
// pair. Blobs live in an external object store, metadata in the database;
// the adapter keeps the two consistent with a compensating delete when the
// metadata write fails after the blob write succeeded.
package flyerstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/coverlane/coverlane/internal/catalog"
	"github.com/coverlane/coverlane/internal/domain"
	"github.com/coverlane/coverlane/pkg/common"
)

const (
	// MaxUploadSize caps a single flyer image.
	MaxUploadSize = 10 << 20

	EventUploaded = "flyer.uploaded"
	EventDeleted  = "flyer.deleted"
)

var extByContentType = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// Publisher is the event-bus surface the adapter needs.
type Publisher interface {
	Publish(topic string, args ...interface{})
}

type Adapter struct {
	db    *gorm.DB
	blobs BlobStore
	bus   Publisher
}

func NewAdapter(db *gorm.DB, blobs BlobStore, bus Publisher) *Adapter {
	return &Adapter{db: db, blobs: blobs, bus: bus}
}

// UploadResult reports a stored flyer reference.
type UploadResult struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// Upload validates the file, writes the blob, then upserts the metadata row
// keyed by (productType, flyerIndex). The generated filename carries a
// snowflake suffix so concurrent uploads to the same slot never collide in
// the object store. The replaced blob, if any, is removed best-effort after
// the upsert succeeds.
func (a *Adapter) Upload(ctx context.Context, data []byte, contentType, productType string, flyerIndex int) (*UploadResult, error) {
	if len(data) == 0 || len(data) > MaxUploadSize {
		return nil, ErrInvalidFile
	}
	ext, ok := extByContentType[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return nil, ErrUnsupportedType
	}
	if !catalog.Exists(productType) {
		return nil, ErrValidation
	}
	product, _ := catalog.Lookup(productType)
	if flyerIndex < 0 || flyerIndex >= product.FlyerCount {
		return nil, ErrValidation
	}

	// The previous blob key for this slot, needed for cleanup after replace.
	var prev domain.FlyerSlot
	prevErr := a.db.WithContext(ctx).
		Where("product_type = ? and flyer_index = ?", productType, flyerIndex).
		First(&prev).Error

	filename := fmt.Sprintf("%s_%d_%s.%s", productType, flyerIndex, common.UUIDBase32(), ext)
	url, err := a.blobs.Put(ctx, filename, contentType, data)
	if err != nil {
		return nil, errors.Wrap(err, "upload flyer blob")
	}

	slot := domain.FlyerSlot{
		ID:          common.UUIDint64(),
		ProductType: productType,
		FlyerIndex:  flyerIndex,
		ImageURL:    url,
		ImageKey:    filename,
	}
	err = a.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_type"}, {Name: "flyer_index"}},
		DoUpdates: clause.AssignmentColumns([]string{"image_url", "image_key", "updated_at"}),
	}).Create(&slot).Error
	if err != nil {
		// Compensate: the blob made it but the row did not. Surface both
		// failures when the cleanup fails too, never hide the orphan.
		if delErr := a.blobs.Delete(ctx, filename); delErr != nil {
			return nil, errors.Wrapf(ErrMetadataWrite,
				"upsert: %v; compensating blob delete failed, orphaned %s: %v", err, filename, delErr)
		}
		return nil, errors.Wrapf(ErrMetadataWrite, "upsert: %v", err)
	}

	if prevErr == nil && prev.ImageKey != "" && prev.ImageKey != filename {
		if delErr := a.blobs.Delete(ctx, prev.ImageKey); delErr != nil && !errors.Is(delErr, ErrNotFound) {
			zap.L().Warn("failed to remove replaced flyer blob, sweep job will collect it",
				zap.String("key", prev.ImageKey), zap.Error(delErr))
		}
	}

	if a.bus != nil {
		a.bus.Publish(EventUploaded, productType, flyerIndex, filename)
	}
	return &UploadResult{Filename: filename, URL: url}, nil
}

// UpdateMetadata upserts the display name and description of a slot without
// touching the blob.
func (a *Adapter) UpdateMetadata(ctx context.Context, productType string, flyerIndex int, name, description, imageURL string) error {
	if strings.TrimSpace(productType) == "" || flyerIndex < 0 {
		return ErrValidation
	}
	slot := domain.FlyerSlot{
		ID:          common.UUIDint64(),
		ProductType: productType,
		FlyerIndex:  flyerIndex,
		Name:        name,
		Description: description,
		ImageURL:    imageURL,
	}
	err := a.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_type"}, {Name: "flyer_index"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "description", "image_url", "updated_at"}),
	}).Create(&slot).Error
	if err != nil {
		return errors.Wrapf(ErrMetadataWrite, "upsert: %v", err)
	}
	return nil
}

// Delete removes the blob named by filename and its metadata row. Filenames
// carrying traversal sequences are rejected before any storage call.
func (a *Adapter) Delete(ctx context.Context, filename string) error {
	if filename == "" ||
		strings.Contains(filename, "..") ||
		strings.ContainsAny(filename, `/\`) {
		return ErrInvalidFilename
	}

	var slot domain.FlyerSlot
	err := a.db.WithContext(ctx).Where("image_key = ?", filename).First(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return errors.Wrap(err, "lookup flyer")
	}

	if err := a.blobs.Delete(ctx, filename); err != nil && !errors.Is(err, ErrNotFound) {
		return errors.Wrap(err, "delete flyer blob")
	}
	if err := a.db.WithContext(ctx).Delete(&domain.FlyerSlot{}, slot.ID).Error; err != nil {
		return errors.Wrap(err, "delete flyer row")
	}

	if a.bus != nil {
		a.bus.Publish(EventDeleted, slot.ProductType, slot.FlyerIndex, filename)
	}
	return nil
}

// ListAll returns every non-empty slot grouped by product identifier,
// ordered by upload time within each product. Grouping reads the stored
// product_type column only.
func (a *Adapter) ListAll(ctx context.Context) (map[string][]domain.FlyerEntry, error) {
	var rows []domain.FlyerSlot
	if err := a.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "list flyers")
	}
	grouped := make(map[string][]domain.FlyerEntry)
	for _, row := range rows {
		if row.ImageURL == "" {
			continue
		}
		grouped[row.ProductType] = append(grouped[row.ProductType], domain.FlyerEntry{
			Name:        row.Name,
			Description: row.Description,
			ImageURL:    row.ImageURL,
		})
	}
	return grouped, nil
}

// ListSlots returns the raw slot rows for one product ordered by index,
// used by the admin dashboard and export.
func (a *Adapter) ListSlots(ctx context.Context, productType string) ([]domain.FlyerSlot, error) {
	var rows []domain.FlyerSlot
	err := a.db.WithContext(ctx).
		Where("product_type = ?", productType).
		Order("flyer_index ASC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "list flyer slots")
	}
	return rows, nil
}

// SweepOrphans removes blobs no metadata row references. Run from the
// nightly cron job; re-upload races leave at most one stale blob per slot,
// which this collects.
func (a *Adapter) SweepOrphans(ctx context.Context) (removed int, err error) {
	keys, err := a.blobs.List(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "sweep: list blobs")
	}
	if len(keys) == 0 {
		return 0, nil
	}

	var referenced []string
	if err := a.db.WithContext(ctx).Model(&domain.FlyerSlot{}).
		Where("image_key <> ''").
		Pluck("image_key", &referenced).Error; err != nil {
		return 0, errors.Wrap(err, "sweep: list referenced keys")
	}
	refSet := make(map[string]struct{}, len(referenced))
	for _, k := range referenced {
		refSet[k] = struct{}{}
	}

	start := time.Now()
	for _, key := range keys {
		if _, ok := refSet[key]; ok {
			continue
		}
		if err := a.blobs.Delete(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
			zap.L().Warn("sweep: failed to remove orphaned blob", zap.String("key", key), zap.Error(err))
			continue
		}
		removed++
	}
	if removed > 0 {
		zap.L().Info("sweep: removed orphaned flyer blobs",
			zap.Int("count", removed), zap.Duration("elapsed", time.Since(start)))
	}
	return removed, nil
}
