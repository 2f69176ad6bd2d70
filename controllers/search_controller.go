package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio/services"
)

type SearchRequest struct {
	Query string `form:"q" binding:"required"`
	TopK  int    `form:"topk"`
}

type SearchResponse struct {
	Results []services.ArticleSummary `json:"results"`
}

type SearchController struct {
	search *services.SearchService
}

func NewSearchController(search *services.SearchService) *SearchController {
	return &SearchController{search: search}
}

func (c *SearchController) Search(ctx *gin.Context) {
	var req SearchRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.TopK <= 0 {
		req.TopK = services.DefaultTopK
	}

	ctx.JSON(http.StatusOK, SearchResponse{Results: c.search.Search(req.Query, req.TopK)})
}
