package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"aydamarket.com/api/internal/modules/products"
)

// Export handles GET /api/admin/products/export: the full catalog as a
// spreadsheet for the admin panel.
func (h *ProductsHandler) Export(c *gin.Context) {
	items, err := h.Products.List(c.Request.Context(), false)
	if err != nil {
		fail(c, err)
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		fail(c, err)
		return
	}

	headers := []string{"ID", "Name", "Slug", "PriceCents", "Stock", "Sold", "Active", "CategoryID", "FirstImage", "CreatedAt"}
	headerRow := sheet.AddRow()
	for _, hd := range headers {
		headerRow.AddCell().SetValue(hd)
	}

	for _, p := range items {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.Slug)
		row.AddCell().SetValue(p.PriceCents)
		row.AddCell().SetValue(p.Stock)
		row.AddCell().SetValue(p.Sold)
		row.AddCell().SetValue(fmt.Sprintf("%t", p.Active))
		row.AddCell().SetValue(categoryRef(p))
		row.AddCell().SetValue(firstImage(p))
		row.AddCell().SetValue(p.CreatedAt.Format(time.RFC3339))
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		fail(c, err)
		return
	}

	filename := "products-" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func categoryRef(p products.Product) string {
	if p.CategoryID == nil {
		return ""
	}
	return *p.CategoryID
}

func firstImage(p products.Product) string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}
