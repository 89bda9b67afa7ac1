package promotions

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type couponReq struct {
	Code       string     `json:"code" binding:"required"`
	Kind       string     `json:"kind" binding:"required,oneof=percent_off amount_off"`
	Value      string     `json:"value" binding:"required"`
	MinOrder   string     `json:"min_order"`
	StartsAt   *time.Time `json:"starts_at"`
	EndsAt     *time.Time `json:"ends_at"`
	UsageLimit *int       `json:"usage_limit"`
	Active     *bool      `json:"active"`
}

type validateReq struct {
	Code     string `json:"code" binding:"required"`
	Subtotal string `json:"subtotal" binding:"required"`
}

func Register(rg *gin.RouterGroup, repo *Repo) {
	rg.GET("", func(c *gin.Context) {
		items, err := repo.List(c.Request.Context(), c.Query("active") == "true")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "list coupons failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "coupons": items})
	})

	rg.POST("", func(c *gin.Context) {
		var req couponReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}
		value, err := decimal.NewFromString(req.Value)
		if err != nil || value.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid value"})
			return
		}
		if req.Kind == KindPercentOff && value.GreaterThan(decimal.NewFromInt(100)) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "percent_off value exceeds 100"})
			return
		}
		minOrder := decimal.Zero
		if req.MinOrder != "" {
			minOrder, err = decimal.NewFromString(req.MinOrder)
			if err != nil || minOrder.IsNegative() {
				c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid min_order"})
				return
			}
		}
		if req.StartsAt != nil && req.EndsAt != nil && req.EndsAt.Before(*req.StartsAt) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "ends_at before starts_at"})
			return
		}
		cp := Coupon{
			Code:       req.Code,
			Kind:       req.Kind,
			Value:      value,
			MinOrder:   minOrder,
			StartsAt:   req.StartsAt,
			EndsAt:     req.EndsAt,
			UsageLimit: req.UsageLimit,
			Active:     req.Active == nil || *req.Active,
		}
		out, err := repo.Create(c.Request.Context(), cp)
		if errors.Is(err, ErrCouponExists) {
			c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "coupon code already exists"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "create coupon failed"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"ok": true, "coupon": out})
	})

	rg.PATCH("/:id/active", func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid id"})
			return
		}
		var req struct {
			Active *bool `json:"active" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}
		err = repo.SetActive(c.Request.Context(), id, *req.Active)
		if errors.Is(err, ErrCouponNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "coupon not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "update coupon failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	// Validate a coupon against an order subtotal and return the discount it
	// would apply. Rejections come back 200 with valid=false and a reason.
	rg.POST("/validate", func(c *gin.Context) {
		var req validateReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}
		subtotal, err := decimal.NewFromString(req.Subtotal)
		if err != nil || subtotal.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid subtotal"})
			return
		}
		cp, err := repo.GetByCode(c.Request.Context(), req.Code)
		if errors.Is(err, ErrCouponNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "coupon not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "lookup coupon failed"})
			return
		}
		if err := cp.Validate(subtotal, time.Now()); err != nil {
			c.JSON(http.StatusOK, gin.H{"ok": true, "valid": false, "reason": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"ok":       true,
			"valid":    true,
			"discount": cp.Discount(subtotal),
			"payable":  subtotal.Sub(cp.Discount(subtotal)),
		})
	})
}
