package controller

import (
	"net/http"

	"github.com/ecofinds/ecofinds-backend/internal/app/service"
	apperrors "github.com/ecofinds/ecofinds-backend/internal/errors"
	"github.com/ecofinds/ecofinds-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type SummaryController struct {
	summaryService service.SummaryService
}

func NewSummaryController(summaryService service.SummaryService) *SummaryController {
	return &SummaryController{
		summaryService: summaryService,
	}
}

// GetMyOrderSummaries lists per-order rollups for the user
// GET /api/v1/summaries/orders
func (ctrl *SummaryController) GetMyOrderSummaries(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	summaries, err := ctrl.summaryService.GetUserOrderSummaries(userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summaries": summaries,
		"count":     len(summaries),
	})
}

// GetOrderSummary returns one order rollup
// GET /api/v1/summaries/orders/:id
func (ctrl *SummaryController) GetOrderSummary(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	summary, err := ctrl.summaryService.GetUserOrderSummary(userID, orderID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary": summary,
	})
}

// GetProductSales lists marketplace-wide sales figures per product
// GET /api/v1/summaries/products
func (ctrl *SummaryController) GetProductSales(c *gin.Context) {
	summaries, err := ctrl.summaryService.GetProductSalesSummaries(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summaries": summaries,
		"count":     len(summaries),
	})
}

// GetProductSalesByID returns sales figures for one product
// GET /api/v1/summaries/products/:id
func (ctrl *SummaryController) GetProductSalesByID(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	summary, err := ctrl.summaryService.GetProductSalesSummary(productID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary": summary,
	})
}

// GetMySales lists sales figures for the authenticated seller's products
// GET /api/v1/summaries/sales/mine
func (ctrl *SummaryController) GetMySales(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	summaries, err := ctrl.summaryService.GetSellerSalesSummaries(userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summaries": summaries,
		"count":     len(summaries),
	})
}
