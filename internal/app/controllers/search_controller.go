package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/znurfzh/ethic-sub000/internal/app/services"
	"github.com/znurfzh/ethic-sub000/internal/middleware"
)

// SearchController handles the global search box
type SearchController struct {
	searchService services.SearchService
}

// NewSearchController creates a new SearchController
func NewSearchController(searchService services.SearchService) *SearchController {
	return &SearchController{searchService: searchService}
}

// Search finds posts, users and topics containing the query
// @Summary Search
// @Description Case-insensitive substring match, at most 5 results per category
// @Tags search
// @Produce json
// @Param q query string true "Search text"
// @Success 200 {object} dto.SearchResponse
// @Failure 400 {object} dto.ErrorResponse "Missing query"
// @Failure 500 {object} dto.ErrorResponse "Search failed"
// @Router /search [get]
func (c *SearchController) Search(ctx *gin.Context) {
	results, err := c.searchService.Search(ctx.Request.Context(), ctx.Query("q"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, results)
}
