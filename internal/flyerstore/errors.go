package flyerstore

import "github.com/pkg/errors"

var (
	ErrInvalidFile     = errors.New("file exceeds the maximum upload size")
	ErrUnsupportedType = errors.New("unsupported file type, only images are allowed")
	ErrValidation      = errors.New("invalid product or slot index")
	ErrInvalidFilename = errors.New("invalid filename")
	ErrNotFound        = errors.New("flyer not found")
	ErrMetadataWrite   = errors.New("metadata write failed")
)
