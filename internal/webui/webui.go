// Package webui renders the marketing site and admin dashboard from
// embedded templates.
package webui

import (
	"embed"
	"html/template"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/coverlane/coverlane/internal/catalog"
	"github.com/coverlane/coverlane/internal/domain"
	"github.com/coverlane/coverlane/internal/webserver"
	"github.com/coverlane/coverlane/pkg/metrics"
)

//go:embed templates/*.html
var templateFS embed.FS

type renderer struct {
	templates *template.Template
}

func (r *renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// InitRouter installs the template renderer and registers all page routes.
func InitRouter() {
	webserver.SetRenderer(&renderer{
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	})

	webserver.PageGET("/", homePage, false)
	webserver.PageGET("/health-insurance", categoryPage(catalog.CategoryHealth, "Health Insurance"), false)
	webserver.PageGET("/life-insurance", categoryPage(catalog.CategoryLife, "Life Insurance"), false)
	webserver.PageGET("/products/:type", productPage, false)
	webserver.PageGET("/quote", quotePage, false)
	webserver.PageGET("/admin/login", adminLoginPage, false)
	webserver.PageGET("/admin", adminDashboardPage, true)
}

func homePage(c echo.Context) error {
	metrics.Incr(metrics.PageView)
	return c.Render(http.StatusOK, "home.html", map[string]interface{}{
		"Health": catalog.ByCategory(catalog.CategoryHealth),
		"Life":   catalog.ByCategory(catalog.CategoryLife),
	})
}

func categoryPage(category, title string) echo.HandlerFunc {
	return func(c echo.Context) error {
		metrics.Incr(metrics.PageView)
		return c.Render(http.StatusOK, "category.html", map[string]interface{}{
			"Title":    title,
			"Products": catalog.ByCategory(category),
		})
	}
}

// flyerTile is one cell of the product page grid, either an uploaded
// flyer or a colored placeholder.
type flyerTile struct {
	Index       int
	Name        string
	Description string
	ImageURL    string
	Hue         int
}

func productPage(c echo.Context) error {
	metrics.Incr(metrics.PageView)
	product, found := catalog.Lookup(c.Param("type"))
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}

	slots, err := webserver.GetApp(c).Flyers().ListSlots(c.Request().Context(), product.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load flyers")
	}
	byIndex := make(map[int]domain.FlyerSlot, len(slots))
	for _, s := range slots {
		byIndex[s.FlyerIndex] = s
	}

	page := 1
	if p := c.QueryParam("page"); p != "" {
		page = cast.ToInt(p)
	}
	pg := Paginate(product.FlyerCount, page)

	tiles := make([]flyerTile, 0, PageSize)
	for i := pg.Start; i < pg.End; i++ {
		tile := flyerTile{Index: i, Hue: PlaceholderHue(i)}
		if s, ok := byIndex[i]; ok && s.ImageURL != "" {
			tile.Name = s.Name
			tile.Description = s.Description
			tile.ImageURL = s.ImageURL
		}
		tiles = append(tiles, tile)
	}

	return c.Render(http.StatusOK, "product.html", map[string]interface{}{
		"Product": product,
		"Tiles":   tiles,
		"Pg":      pg,
	})
}

func quotePage(c echo.Context) error {
	metrics.Incr(metrics.PageView)
	return c.Render(http.StatusOK, "quote.html", map[string]interface{}{
		"Products": catalog.All(),
	})
}

func adminLoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "admin_login.html", nil)
}

func adminDashboardPage(c echo.Context) error {
	return c.Render(http.StatusOK, "admin_dashboard.html", map[string]interface{}{
		"Products": catalog.All(),
	})
}
