package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gyanranjan-Priyam/cms-sub002/internal/app/service/payment"
	"github.com/Gyanranjan-Priyam/cms-sub002/internal/models"
	"github.com/Gyanranjan-Priyam/cms-sub002/pkg/response"
)

// @Summary      Midtrans payment notification
// @Description  Signed status notification pushed by Midtrans. The signature is carried inside the JSON body.
// @Tags         Webhook
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.APIResponse[any]
// @Router       /api/v1/webhooks/midtrans [post]
func ApiMidtransWebhook(ledger payment.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "unreadable body"))
			return
		}
		if err := ledger.HandleWebhook(c.Request.Context(), models.GatewayProviderMidtrans, body, ""); err != nil {
			c.JSON(http.StatusOK, response.Err(err))
			return
		}
		c.JSON(http.StatusOK, response.OKT[any](nil))
	}
}

// @Summary      Razorpay payment notification
// @Description  Signed event pushed by Razorpay. The HMAC signature arrives in the X-Razorpay-Signature header.
// @Tags         Webhook
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.APIResponse[any]
// @Router       /api/v1/webhooks/razorpay [post]
func ApiRazorpayWebhook(ledger payment.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "unreadable body"))
			return
		}
		sig := c.GetHeader("X-Razorpay-Signature")
		if err := ledger.HandleWebhook(c.Request.Context(), models.GatewayProviderRazorpay, body, sig); err != nil {
			c.JSON(http.StatusOK, response.Err(err))
			return
		}
		c.JSON(http.StatusOK, response.OKT[any](nil))
	}
}
