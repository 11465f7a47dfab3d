package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger_app/internal/dto"
)

type productHandler struct {
	productService portssvc.ProductSvcFacade
}

func registerProductRoutes(rg *gin.RouterGroup, productService portssvc.ProductSvcFacade) {
	h := &productHandler{productService: productService}
	rg.GET("/products", h.listProducts)
}

type listProductsParams struct {
	ActiveOnly bool `form:"activeOnly,default=true"`
}

// listProducts godoc
// @Summary List catalog products
// @Tags products
// @Produce  json
// @Param   activeOnly query bool false "Only active products (default true)"
// @Success 200 {array} dto.ProductResponse
// @Security BearerAuth
// @Router /products [get]
func (h *productHandler) listProducts(c *gin.Context) {
	var params listProductsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "ListProducts")
		return
	}

	products, err := h.productService.ListProducts(c.Request.Context(), params.ActiveOnly)
	if err != nil {
		respondError(c, err, "Failed to list products")
		return
	}
	c.JSON(http.StatusOK, dto.ToListProductResponse(products))
}
