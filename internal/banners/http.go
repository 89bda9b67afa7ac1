package banners

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type bannerReq struct {
	Title     string `json:"title" binding:"required"`
	ImageURL  string `json:"image_url" binding:"required,url"`
	LinkURL   string `json:"link_url"`
	SortOrder int    `json:"sort_order"`
	Active    *bool  `json:"active"`
}

func Register(rg *gin.RouterGroup, repo *Repo) {
	rg.GET("", func(c *gin.Context) {
		items, err := repo.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "list banners failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "banners": items})
	})

	rg.POST("", func(c *gin.Context) {
		var req bannerReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}
		b := Banner{
			Title:     req.Title,
			ImageURL:  req.ImageURL,
			LinkURL:   req.LinkURL,
			SortOrder: req.SortOrder,
			Active:    req.Active == nil || *req.Active,
		}
		out, err := repo.Create(c.Request.Context(), b)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "create banner failed"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"ok": true, "banner": out})
	})

	rg.PUT("/:id", func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid id"})
			return
		}
		var req bannerReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}
		b := Banner{
			ID:        id,
			Title:     req.Title,
			ImageURL:  req.ImageURL,
			LinkURL:   req.LinkURL,
			SortOrder: req.SortOrder,
			Active:    req.Active == nil || *req.Active,
		}
		out, err := repo.Update(c.Request.Context(), b)
		if err == ErrBannerNotFound {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "banner not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "update banner failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "banner": out})
	})

	rg.DELETE("/:id", func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid id"})
			return
		}
		ok, err := repo.Delete(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "delete banner failed"})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "banner not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
}
