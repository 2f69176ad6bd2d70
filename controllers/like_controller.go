package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio/services"
)

type LikeController struct {
	likes   *services.LikeService
	catalog *services.Catalog
	logger  *zap.Logger
}

func NewLikeController(likes *services.LikeService, catalog *services.Catalog, logger *zap.Logger) *LikeController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LikeController{likes: likes, catalog: catalog, logger: logger}
}

// GetLikes 返回全部点赞计数 {itemId: count}
func (c *LikeController) GetLikes(ctx *gin.Context) {
	counts, err := c.likes.Snapshot(ctx.Request.Context())
	if err != nil {
		c.logger.Error("read likes", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read likes"})
		return
	}
	ctx.JSON(http.StatusOK, counts)
}

// PostLike applies {itemId, action?} and answers with the new count.
// Validation runs before the store is touched.
func (c *LikeController) PostLike(ctx *gin.Context) {
	var body map[string]any
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	itemID, ok := body["itemId"].(string)
	if !ok || itemID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid itemId"})
		return
	}

	action := services.ActionLike
	if raw, present := body["action"]; present && raw != nil {
		s, ok := raw.(string)
		if !ok {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
			return
		}
		parsed, err := services.ParseAction(s)
		if errors.Is(err, services.ErrInvalidAction) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
			return
		}
		action = parsed
	}

	count, err := c.likes.Apply(ctx.Request.Context(), itemID, action)
	if err != nil {
		c.logger.Error("update likes", zap.String("item_id", itemID), zap.String("action", string(action)), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update likes"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"itemId": itemID, "count": count})
}

// GetTopLikes 返回 Top N 排行，并尝试附带标题
func (c *LikeController) GetTopLikes(ctx *gin.Context) {
	top, err := strconv.Atoi(ctx.DefaultQuery("top", strconv.Itoa(services.DefaultTop)))
	if err != nil || top <= 0 {
		top = services.DefaultTop
	}

	ranked, err := c.likes.Top(ctx.Request.Context(), top)
	if err != nil {
		c.logger.Error("rank likes", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read likes"})
		return
	}

	list := make([]gin.H, 0, len(ranked))
	for idx, r := range ranked {
		item := gin.H{"itemId": r.ItemID, "count": r.Count, "rank": idx + 1}
		if c.catalog != nil {
			if title := c.catalog.Title(r.ItemID); title != "" {
				item["title"] = title
			}
		}
		list = append(list, item)
	}
	ctx.JSON(http.StatusOK, gin.H{"list": list})
}
