package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/coverlane/coverlane/internal/catalog"
	"github.com/coverlane/coverlane/internal/webserver"
)

// registerProductRoutes registers catalog browsing endpoints. The catalog
// is compiled in, so there is no create or update surface.
func registerProductRoutes() {
	webserver.ApiGET("/products", listCatalogProducts)
	webserver.ApiGET("/products/:type", getCatalogProduct)
}

func listCatalogProducts(c echo.Context) error {
	category := c.QueryParam("category")
	if category != "" {
		if category != catalog.CategoryHealth && category != catalog.CategoryLife {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unknown category", nil)
		}
		return ok(c, catalog.ByCategory(category))
	}
	return ok(c, catalog.All())
}

func getCatalogProduct(c echo.Context) error {
	product, found := catalog.Lookup(c.Param("type"))
	if !found {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, product)
}
