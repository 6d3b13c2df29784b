package adminapi

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/coverlane/coverlane/internal/flyerstore"
	"github.com/coverlane/coverlane/internal/webserver"
)

type metadataPayload struct {
	ProductType string `json:"productType" form:"productType"`
	Index       int    `json:"index" form:"index"`
	Metadata    struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		ImageURL    string `json:"imageUrl"`
	} `json:"metadata"`
}

// registerFlyerRoutes registers flyer asset management endpoints
func registerFlyerRoutes() {
	webserver.ApiGET("/flyers", listFlyers)
	webserver.ApiGET("/flyers/:productType", listFlyerSlots)
	webserver.ApiPOST("/flyers", uploadFlyer)
	webserver.ApiPUT("/flyers/metadata", updateFlyerMetadata)
	webserver.ApiDELETE("/flyers", deleteFlyer)
}

// listFlyers returns every stored flyer grouped by product identifier
func listFlyers(c echo.Context) error {
	grouped, err := GetApp(c).Flyers().ListAll(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list flyers", err.Error())
	}
	return ok(c, grouped)
}

func listFlyerSlots(c echo.Context) error {
	rows, err := GetApp(c).Flyers().ListSlots(c.Request().Context(), c.Param("productType"))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list flyer slots", err.Error())
	}
	return ok(c, rows)
}

// uploadFlyer accepts multipart form data with fields file, productType
// and flyerIndex, stores the blob and upserts the slot metadata.
func uploadFlyer(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Missing file field", err.Error())
	}
	productType := c.FormValue("productType")
	flyerIndex, err := strconv.Atoi(c.FormValue("flyerIndex"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "flyerIndex must be a number", nil)
	}

	if fileHeader.Size > flyerstore.MaxUploadSize {
		return fail(c, http.StatusBadRequest, "INVALID_FILE", "File exceeds the 10 MiB limit", nil)
	}
	src, err := fileHeader.Open()
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_FILE", "Unable to read uploaded file", err.Error())
	}
	defer src.Close()
	data, err := io.ReadAll(io.LimitReader(src, flyerstore.MaxUploadSize+1))
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_FILE", "Unable to read uploaded file", err.Error())
	}

	contentType := fileHeader.Header.Get("Content-Type")
	result, err := GetApp(c).Flyers().Upload(c.Request().Context(), data, contentType, productType, flyerIndex)
	if err != nil {
		return flyerError(c, err, "Upload failed")
	}
	return ok(c, result)
}

func updateFlyerMetadata(c echo.Context) error {
	var payload metadataPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse metadata", err.Error())
	}
	err := GetApp(c).Flyers().UpdateMetadata(c.Request().Context(),
		payload.ProductType, payload.Index,
		payload.Metadata.Name, payload.Metadata.Description, payload.Metadata.ImageURL)
	if err != nil {
		return flyerError(c, err, "Metadata update failed")
	}
	return ok(c, nil)
}

// deleteFlyer removes the blob named by the filename query parameter and
// its metadata row.
func deleteFlyer(c echo.Context) error {
	filename := c.QueryParam("filename")
	if err := GetApp(c).Flyers().Delete(c.Request().Context(), filename); err != nil {
		return flyerError(c, err, "Delete failed")
	}
	return ok(c, map[string]interface{}{"filename": filename})
}

// flyerError maps adapter errors to HTTP error payloads with messages
// safe to show an operator.
func flyerError(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, flyerstore.ErrInvalidFile):
		return fail(c, http.StatusBadRequest, "INVALID_FILE", "File is empty or exceeds the 10 MiB limit", nil)
	case errors.Is(err, flyerstore.ErrUnsupportedType):
		return fail(c, http.StatusBadRequest, "UNSUPPORTED_TYPE", "Only jpeg, png, gif and webp images are accepted", nil)
	case errors.Is(err, flyerstore.ErrValidation):
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown product or flyer index out of range", nil)
	case errors.Is(err, flyerstore.ErrInvalidFilename):
		return fail(c, http.StatusBadRequest, "INVALID_FILENAME", "Invalid filename", nil)
	case errors.Is(err, flyerstore.ErrNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Flyer not found", nil)
	default:
		return fail(c, http.StatusInternalServerError, "UPSTREAM_FAILURE", fallback, err.Error())
	}
}
