package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger_app/internal/dto"
	"github.com/SscSPs/bank_ledger_app/internal/middleware"
)

// favoriteHandler handles HTTP requests related to saved destination accounts.
type favoriteHandler struct {
	favoriteService portssvc.FavoriteSvcFacade
	movementService portssvc.MovementSvcFacade
}

func newFavoriteHandler(fs portssvc.FavoriteSvcFacade, ms portssvc.MovementSvcFacade) *favoriteHandler {
	return &favoriteHandler{
		favoriteService: fs,
		movementService: ms,
	}
}

// registerFavoriteRoutes registers routes related to favorites.
func registerFavoriteRoutes(rg *gin.RouterGroup, favoriteService portssvc.FavoriteSvcFacade, movementService portssvc.MovementSvcFacade) {
	h := newFavoriteHandler(favoriteService, movementService)

	favorites := rg.Group("/favorites")
	{
		favorites.POST("", h.addFavorite)
		favorites.GET("", h.listFavorites)
		favorites.GET("/search", h.searchFavorites)
		favorites.GET("/check/:accountNumber", h.checkFavorite)
		favorites.PUT("/:favoriteID", h.updateFavorite)
		favorites.DELETE("/:favoriteID", h.removeFavorite)
		favorites.POST("/transfer", middleware.RequireRole(domain.RoleUser), h.transferToFavorite)
	}
}

// addFavorite godoc
// @Summary Save a favorite account
// @Tags favorites
// @Accept  json
// @Produce  json
// @Param   favorite body dto.AddFavoriteRequest true "Account number and optional alias"
// @Success 201 {object} dto.FavoriteResponse
// @Failure 400 {object} map[string]string "Invalid input or own account"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Account or alias already saved"
// @Security BearerAuth
// @Router /favorites [post]
func (h *favoriteHandler) addFavorite(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "AddFavorite")
		return
	}

	favorite, err := h.favoriteService.AddFavorite(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err, "Failed to add favorite")
		return
	}
	c.JSON(http.StatusCreated, dto.ToFavoriteResponse(favorite))
}

type searchFavoritesParams struct {
	Query string `form:"q" binding:"required,max=50"`
}

// searchFavorites godoc
// @Summary Search my favorites
// @Description Case-insensitive match on alias or account number
// @Tags favorites
// @Produce  json
// @Param   q query string true "Search term"
// @Success 200 {array} dto.FavoriteResponse
// @Failure 400 {object} map[string]string "Missing search term"
// @Security BearerAuth
// @Router /favorites/search [get]
func (h *favoriteHandler) searchFavorites(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var params searchFavoritesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "SearchFavorites")
		return
	}

	favorites, err := h.favoriteService.SearchFavorites(c.Request.Context(), caller, params.Query)
	if err != nil {
		respondError(c, err, "Failed to search favorites")
		return
	}
	c.JSON(http.StatusOK, dto.ToListFavoriteResponse(favorites))
}

// checkFavorite godoc
// @Summary Check whether an account is a favorite
// @Tags favorites
// @Produce  json
// @Param   accountNumber path string true "Account number"
// @Success 200 {object} dto.FavoriteCheckResponse
// @Security BearerAuth
// @Router /favorites/check/{accountNumber} [get]
func (h *favoriteHandler) checkFavorite(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	favorite, found, err := h.favoriteService.IsFavorite(c.Request.Context(), caller, c.Param("accountNumber"))
	if err != nil {
		respondError(c, err, "Failed to check favorite")
		return
	}
	c.JSON(http.StatusOK, dto.ToFavoriteCheckResponse(favorite, found))
}

// listFavorites godoc
// @Summary List my favorites
// @Tags favorites
// @Produce  json
// @Success 200 {array} dto.FavoriteResponse
// @Security BearerAuth
// @Router /favorites [get]
func (h *favoriteHandler) listFavorites(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	favorites, err := h.favoriteService.ListFavorites(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err, "Failed to list favorites")
		return
	}
	c.JSON(http.StatusOK, dto.ToListFavoriteResponse(favorites))
}

// updateFavorite godoc
// @Summary Rename a favorite
// @Tags favorites
// @Accept  json
// @Produce  json
// @Param   favoriteID path string true "Favorite ID"
// @Param   favorite body dto.UpdateFavoriteRequest true "New alias"
// @Success 200 {object} dto.FavoriteResponse
// @Failure 404 {object} map[string]string "Favorite not found"
// @Failure 409 {object} map[string]string "Alias already used"
// @Security BearerAuth
// @Router /favorites/{favoriteID} [put]
func (h *favoriteHandler) updateFavorite(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.UpdateFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "UpdateFavorite")
		return
	}

	favorite, err := h.favoriteService.UpdateFavorite(c.Request.Context(), caller, c.Param("favoriteID"), req)
	if err != nil {
		respondError(c, err, "Failed to update favorite")
		return
	}
	c.JSON(http.StatusOK, dto.ToFavoriteResponse(favorite))
}

// removeFavorite godoc
// @Summary Remove a favorite
// @Tags favorites
// @Param   favoriteID path string true "Favorite ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Favorite not found"
// @Security BearerAuth
// @Router /favorites/{favoriteID} [delete]
func (h *favoriteHandler) removeFavorite(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	if err := h.favoriteService.RemoveFavorite(c.Request.Context(), caller, c.Param("favoriteID")); err != nil {
		respondError(c, err, "Failed to remove favorite")
		return
	}
	c.Status(http.StatusNoContent)
}

// transferToFavorite godoc
// @Summary Transfer to a favorite
// @Description Transfers from the caller's account to the account saved under the alias
// @Tags favorites
// @Accept  json
// @Produce  json
// @Param   transfer body dto.FavoriteTransferRequest true "Alias and amount"
// @Success 201 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Favorite not found"
// @Failure 422 {object} map[string]string "Insufficient funds or daily limit exceeded"
// @Security BearerAuth
// @Router /favorites/transfer [post]
func (h *favoriteHandler) transferToFavorite(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.FavoriteTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "TransferToFavorite")
		return
	}

	txn, err := h.movementService.TransferToFavorite(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err, "Failed to transfer to favorite")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}
