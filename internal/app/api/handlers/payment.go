package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Gyanranjan-Priyam/cms-sub002/internal/app/service/payment"
	"github.com/Gyanranjan-Priyam/cms-sub002/internal/models"
	"github.com/Gyanranjan-Priyam/cms-sub002/pkg/response"
	"github.com/Gyanranjan-Priyam/cms-sub002/pkg/types"
)

// @Summary      Submit custom payment
// @Description  Creates a pending fee payment from a student's manual UPI/QR/cheque submission.
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Param        request body payment.SubmitCustomPaymentRequest true "Custom payment submission"
// @Success      200  {object}  response.APIResponse[models.Payment]
// @Router       /api/v1/payments/custom [post]
func ApiSubmitCustomPayment(ledger payment.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req payment.SubmitCustomPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if req.StudentID == "" {
			req.StudentID = c.GetString("user_id")
		}
		p, err := ledger.SubmitCustomPayment(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.Err(err))
			return
		}
		c.JSON(http.StatusOK, response.OKT(p))
	}
}

// @Summary      Create gateway order
// @Description  Creates a pending payment bound to a gateway checkout order.
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Param        request body payment.CreateOrderRequest true "Order creation request"
// @Success      200  {object}  response.APIResponse[payment.CreateOrderResult]
// @Router       /api/v1/payments/order [post]
func ApiCreateGatewayOrder(ledger payment.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req payment.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if req.StudentID == "" {
			req.StudentID = c.GetString("user_id")
		}
		res, err := ledger.CreateGatewayOrder(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.Err(err))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Verify gateway payment
// @Description  Polls the gateway for an order's authoritative status and reconciles the local record. Idempotent.
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Param        request body payment.VerifyRequest true "Verification request"
// @Success      200  {object}  response.APIResponse[payment.VerifyResult]
// @Router       /api/v1/payments/verify [post]
func ApiVerifyGatewayPayment(ledger payment.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req payment.VerifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := ledger.VerifyGatewayPayment(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.Err(err))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Review custom payment
// @Description  Finance approval/rejection of a pending manually-submitted payment.
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Param        request body payment.ReviewRequest true "Review request"
// @Success      200  {object}  response.APIResponse[models.Payment]
// @Router       /api/v1/payments/verify-custom [post]
func ApiReviewCustomPayment(ledger payment.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req payment.ReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		req.ReviewerID = c.GetString("user_id")
		p, err := ledger.ReviewCustomPayment(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.Err(err))
			return
		}
		c.JSON(http.StatusOK, response.OKT(p))
	}
}

type updateStatusRequest struct {
	Status models.PaymentStatus `json:"status"`
}

// @Summary      Update payment status
// @Description  Administrative status override. Completing mints a receipt; re-opening erases it.
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Param        id      path  string               true "Payment id"
// @Param        request body  updateStatusRequest  true "Target status"
// @Success      200  {object}  response.APIResponse[models.Payment]
// @Router       /api/v1/payments/{id}/status [patch]
func ApiUpdatePaymentStatus(ledger payment.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		p, err := ledger.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, c.GetString("user_id"))
		if err != nil {
			c.JSON(http.StatusOK, response.Err(err))
			return
		}
		c.JSON(http.StatusOK, response.OKT(p))
	}
}

// @Summary      Get payment
// @Tags         Payment
// @Produce      json
// @Param        id path string true "Payment id"
// @Success      200  {object}  response.APIResponse[models.Payment]
// @Router       /api/v1/payments/{id} [get]
func ApiGetPayment(ledger payment.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := ledger.GetPayment(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusOK, response.Err(err))
			return
		}
		c.JSON(http.StatusOK, response.OKT(p))
	}
}

// @Summary      List payments
// @Description  Filtered, paginated listing for finance/admin pages.
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Param        request body payment.ListPaymentsRequest true "Filters and pagination"
// @Success      200  {object}  response.APIResponse[payment.ListPaymentsResponse]
// @Router       /api/v1/payments/list [post]
func ApiListPayments(ledger payment.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req payment.ListPaymentsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := ledger.ListPayments(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.Err(err))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      List a student's payments
// @Tags         Payment
// @Produce      json
// @Param        id   path  string true  "Student id"
// @Param        from query int    false "Offset"
// @Param        size query int    false "Page size"
// @Success      200  {object}  response.APIResponse[[]models.Payment]
// @Router       /api/v1/students/{id}/payments [get]
func ApiStudentPayments(ledger payment.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		studentID := c.Param("id")
		from := 0
		if v := c.Query("from"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				from = n
			}
		}
		size := 100
		if v := c.Query("size"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				size = n
			} else {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "invalid size"))
				return
			}
		}
		req := &payment.ListPaymentsRequest{
			Filters:   []*types.CommonFilter{{Field: "student_id", Operator: types.CommonFilterOperatorEq, Values: []any{studentID}}},
			From:      from,
			Size:      size,
			SortBy:    "created_at",
			SortOrder: "desc",
		}
		res, err := ledger.ListPayments(c.Request.Context(), req)
		if err != nil {
			c.JSON(http.StatusOK, response.Err(err))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res.Items))
	}
}
