package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aydamarket.com/api/internal/modules/products"
	"aydamarket.com/api/internal/shared/apperr"
	"aydamarket.com/api/internal/storage"
)

const maxImageSize = 10 << 20 // 10 MiB

// ProductImagesHandler uploads and removes product images through the blob
// store.
type ProductImagesHandler struct {
	Products *products.Service
	Blobs    storage.Storage
}

func NewProductImagesHandler(svc *products.Service, blobs storage.Storage) *ProductImagesHandler {
	return &ProductImagesHandler{Products: svc, Blobs: blobs}
}

// Upload handles POST /api/admin/products/:id/images (multipart field "image").
func (h *ProductImagesHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		fail(c, apperr.InvalidErr("An image file is required.", nil))
		return
	}
	if fh.Size > maxImageSize {
		fail(c, apperr.InvalidErr("Image is too large.", nil))
		return
	}

	f, err := fh.Open()
	if err != nil {
		fail(c, err)
		return
	}
	defer f.Close()

	res, err := h.Blobs.Put(c.Request.Context(), f, storage.PutInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
	})
	if err != nil {
		fail(c, err)
		return
	}

	im, err := h.Products.AddImage(c.Request.Context(), c.Param("id"), res.Key, res.URL)
	if err != nil {
		// best effort: don't leave an orphan blob behind
		_ = h.Blobs.Delete(c.Request.Context(), res.Key)
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, im)
}

// Delete handles DELETE /api/admin/products/:id/images/:imageID.
func (h *ProductImagesHandler) Delete(c *gin.Context) {
	productID := c.Param("id")
	imageID := c.Param("imageID")

	im, err := h.Products.GetImage(c.Request.Context(), productID, imageID)
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.Products.DeleteImage(c.Request.Context(), productID, imageID); err != nil {
		fail(c, err)
		return
	}
	_ = h.Blobs.Delete(c.Request.Context(), im.StorageKey)
	c.Status(http.StatusNoContent)
}
