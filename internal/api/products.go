package api

import (
	"errors"
	"net/http"

	"github.com/ericogr/arena-battles/internal/catalog"
	"github.com/ericogr/arena-battles/internal/constants"
	"github.com/ericogr/arena-battles/internal/logging"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	catalog *catalog.Catalog
}

func NewProductHandler(c *catalog.Catalog) *ProductHandler {
	return &ProductHandler{catalog: c}
}

func (h *ProductHandler) List(c *gin.Context) {
	items, err := h.catalog.Products(c.Request.Context())
	if err != nil {
		if errors.Is(err, catalog.ErrFileNotFound) {
			c.JSON(http.StatusNotFound, errorBody(constants.ErrProductsFileNotFound, constants.CodeFileNotFound, ""))
			return
		}
		logging.Error("failed to load products", err, logging.Fields{constants.LogFieldSource: h.catalog.Path()})
		c.JSON(http.StatusInternalServerError, errorBody(constants.ErrFailedLoadProducts, constants.CodeInternal, err.Error()))
		return
	}
	c.Header(constants.CacheControlHeader, constants.CacheControlNoCache)
	c.JSON(http.StatusOK, gin.H{
		constants.JSONKeyData:  items,
		constants.JSONKeyCount: len(items),
	})
}
