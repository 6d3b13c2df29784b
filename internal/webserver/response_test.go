package webserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestOKEnvelope(t *testing.T) {
	c, rec := newTestContext(t)
	if err := OK(c, map[string]string{"hello": "world"}); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"success":true`) || !strings.Contains(body, `"hello":"world"`) {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestFailHidesDetail(t *testing.T) {
	c, rec := newTestContext(t)
	err := Fail(c, http.StatusBadGateway, "UPSTREAM_FAILURE", "Upload failed", "535 smtp auth rejected for user x")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "535") {
		t.Errorf("internal detail leaked: %s", body)
	}
	if !strings.Contains(body, `"success":false`) || !strings.Contains(body, "UPSTREAM_FAILURE") {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestPagedEnvelope(t *testing.T) {
	c, rec := newTestContext(t)
	if err := Paged(c, []int{1, 2, 3}, 42, 2, 3); err != nil {
		t.Fatal(err)
	}
	body := rec.Body.String()
	for _, want := range []string{`"total":42`, `"page":2`, `"page_size":3`} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %s: %s", want, body)
		}
	}
}
