package handlers

import (
	"net/http"
	"strconv"

	"finance_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// @Summary      Dashboard summary
// @Description  Overall income, expense and balance across all of the caller's transactions.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  service.Summary
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/dashboard/summary [get]
// @Security     BearerAuth
func (h *Handler) dashboardSummary(c *gin.Context) {
	uid, _ := ownerID(c)
	summary, err := h.services.Dashboard.Summary(c.Request.Context(), uid)
	if err != nil {
		h.respondError(c, err, "dashboard_summary_failed", "user_id", uid)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// @Summary      Monthly breakdown
// @Description  Transactions bucketed by calendar month, ascending by month key.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, months"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/dashboard/monthly [get]
// @Security     BearerAuth
func (h *Handler) dashboardMonthly(c *gin.Context) {
	uid, _ := ownerID(c)
	months, err := h.services.Dashboard.Monthly(c.Request.Context(), uid)
	if err != nil {
		h.respondError(c, err, "dashboard_monthly_failed", "user_id", uid)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(months), "months": months})
}

// @Summary      Paged transaction listing
// @Description  Optionally filtered to one month bucket and re-sorted; fixed page size of 10, 1-based pages. Pages past the end are empty, not an error.
// @Tags         dashboard
// @Produce      json
// @Param        month  query  string  false  "Month bucket key (YYYY-MM)"
// @Param        sort   query  string  false  "Sort order"  Enums(date,amount)
// @Param        page   query  int     false  "1-based page index"
// @Success      200  {object}  service.TransactionPage
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/dashboard/transactions [get]
// @Security     BearerAuth
func (h *Handler) dashboardTransactions(c *gin.Context) {
	uid, _ := ownerID(c)

	page := 1
	if qs := c.Query("page"); qs != "" {
		if v, err := strconv.Atoi(qs); err == nil && v > 0 {
			page = v
		}
	}

	result, err := h.services.Dashboard.Page(c.Request.Context(), uid, service.PageQuery{
		MonthKey: c.Query("month"),
		SortBy:   c.Query("sort"),
		Page:     page,
	})
	if err != nil {
		h.respondError(c, err, "dashboard_page_failed", "user_id", uid)
		return
	}
	c.JSON(http.StatusOK, result)
}
