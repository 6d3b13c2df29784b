// Package publicapi serves the unauthenticated JSON endpoints behind the
// marketing site: flyer listings, quote submission, the detailed contact
// form and the flyer download proxy.
package publicapi

import (
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/coverlane/coverlane/internal/domain"
	"github.com/coverlane/coverlane/internal/webserver"
	"github.com/coverlane/coverlane/pkg/metrics"
)

// downloadClient fetches stored blobs for the download proxy. Bodies are
// copied straight to the response, never buffered whole.
var downloadClient = &http.Client{Timeout: 30 * time.Second}

// InitRouter registers the public API routes
func InitRouter() {
	webserver.PubGET("/flyers", listFlyers)
	webserver.PubPOST("/quote", submitQuote)
	webserver.PubPOST("/contact", submitContact)
	webserver.PubGET("/download", downloadFlyer)
}

// listFlyers returns every stored flyer grouped by product identifier
func listFlyers(c echo.Context) error {
	grouped, err := webserver.GetApp(c).Flyers().ListAll(c.Request().Context())
	if err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list flyers", err.Error())
	}
	return webserver.OK(c, grouped)
}

// submitQuote validates the lead form and emails the operator inbox. Field
// errors come back per field; delivery failures return a generic message.
func submitQuote(c echo.Context) error {
	var lead domain.QuoteLead
	if err := c.Bind(&lead); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unable to parse request", err.Error())
	}
	result := webserver.GetApp(c).QuoteIntake().Submit(c.Request().Context(), lead)
	status := http.StatusOK
	if result.Success {
		metrics.Incr(metrics.QuoteSubmit)
	} else if result.FieldErrors != nil {
		status = http.StatusBadRequest
	} else {
		status = http.StatusBadGateway
	}
	return c.JSON(status, result)
}

// submitContact handles the detailed quote-request form with coverage
// preferences. Same response contract as submitQuote.
func submitContact(c echo.Context) error {
	var lead domain.ContactLead
	if err := c.Bind(&lead); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unable to parse request", err.Error())
	}
	result := webserver.GetApp(c).QuoteIntake().SubmitContact(c.Request().Context(), lead)
	status := http.StatusOK
	if result.Success {
		metrics.Incr(metrics.ContactSubmit)
	} else if result.FieldErrors != nil {
		status = http.StatusBadRequest
	} else {
		status = http.StatusBadGateway
	}
	return c.JSON(status, result)
}

// downloadFlyer streams a stored blob back with an attachment disposition
// so browsers save instead of render. Only URLs under the configured
// storage public base are proxied.
func downloadFlyer(c echo.Context) error {
	rawURL := strings.TrimSpace(c.QueryParam("url"))
	if rawURL == "" {
		return webserver.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing url parameter", nil)
	}

	base := strings.TrimRight(webserver.GetApp(c).Config().Storage.PublicURL, "/")
	if base == "" || !strings.HasPrefix(rawURL, base+"/") {
		return webserver.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "URL is not a stored flyer", nil)
	}

	req, err := http.NewRequestWithContext(c.Request().Context(), http.MethodGet, rawURL, nil)
	if err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Malformed url parameter", err.Error())
	}
	resp, err := downloadClient.Do(req)
	if err != nil {
		return webserver.Fail(c, http.StatusBadGateway, "UPSTREAM_FAILURE", "Download failed, please try again later",
			fmt.Sprintf("fetch %s: %v", rawURL, err))
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return webserver.Fail(c, http.StatusBadGateway, "UPSTREAM_FAILURE", "Download failed, please try again later",
			fmt.Sprintf("fetch %s: code=%d", rawURL, resp.StatusCode))
	}

	filename := path.Base(rawURL)
	header := c.Response().Header()
	header.Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	header.Set(echo.HeaderContentType, "application/octet-stream")
	if cl := resp.Header.Get(echo.HeaderContentLength); cl != "" {
		header.Set(echo.HeaderContentLength, cl)
	}
	c.Response().WriteHeader(http.StatusOK)
	_, err = io.Copy(c.Response(), resp.Body)
	return err
}
