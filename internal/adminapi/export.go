package adminapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"

	"github.com/coverlane/coverlane/internal/domain"
	"github.com/coverlane/coverlane/internal/webserver"
)

// registerExportRoutes registers flyer inventory export endpoints
func registerExportRoutes() {
	webserver.ApiGET("/flyers/export/xlsx", exportFlyersXlsx)
	webserver.ApiGET("/flyers/export/csv", exportFlyersCsv)
}

type flyerExportRow struct {
	ProductType string `csv:"product_type"`
	FlyerIndex  int    `csv:"flyer_index"`
	Name        string `csv:"name"`
	Description string `csv:"description"`
	ImageURL    string `csv:"image_url"`
	UpdatedAt   string `csv:"updated_at"`
}

func flyerExportRows(c echo.Context) ([]flyerExportRow, error) {
	var slots []domain.FlyerSlot
	err := GetDB(c).Order("product_type ASC, flyer_index ASC").Find(&slots).Error
	if err != nil {
		return nil, err
	}
	rows := make([]flyerExportRow, 0, len(slots))
	for _, s := range slots {
		rows = append(rows, flyerExportRow{
			ProductType: s.ProductType,
			FlyerIndex:  s.FlyerIndex,
			Name:        s.Name,
			Description: s.Description,
			ImageURL:    s.ImageURL,
			UpdatedAt:   s.UpdatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return rows, nil
}

func exportFlyersXlsx(c echo.Context) error {
	rows, err := flyerExportRows(c)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to export flyers", err.Error())
	}

	xlsx := excelize.NewFile()
	sheet := "Sheet1"
	headers := []string{"Product", "Index", "Name", "Description", "Image URL", "Updated"}
	for i, h := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		xlsx.SetCellValue(sheet, cell, h)
	}
	for i, row := range rows {
		r := i + 2
		xlsx.SetCellValue(sheet, fmt.Sprintf("A%d", r), row.ProductType)
		xlsx.SetCellValue(sheet, fmt.Sprintf("B%d", r), row.FlyerIndex)
		xlsx.SetCellValue(sheet, fmt.Sprintf("C%d", r), row.Name)
		xlsx.SetCellValue(sheet, fmt.Sprintf("D%d", r), row.Description)
		xlsx.SetCellValue(sheet, fmt.Sprintf("E%d", r), row.ImageURL)
		xlsx.SetCellValue(sheet, fmt.Sprintf("F%d", r), row.UpdatedAt)
	}

	filename := fmt.Sprintf("flyers-%s.xlsx", time.Now().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)
	return xlsx.Write(c.Response())
}

func exportFlyersCsv(c echo.Context) error {
	rows, err := flyerExportRows(c)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to export flyers", err.Error())
	}

	filename := fmt.Sprintf("flyers-%s.csv", time.Now().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().WriteHeader(http.StatusOK)
	return gocsv.Marshal(rows, c.Response())
}
