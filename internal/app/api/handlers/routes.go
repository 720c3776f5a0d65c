package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gyanranjan-Priyam/cms-sub002/internal/app/service/academic"
	"github.com/Gyanranjan-Priyam/cms-sub002/internal/app/service/account"
	"github.com/Gyanranjan-Priyam/cms-sub002/internal/app/service/directory"
	"github.com/Gyanranjan-Priyam/cms-sub002/internal/app/service/notification"
	"github.com/Gyanranjan-Priyam/cms-sub002/internal/app/service/payment"
	"github.com/Gyanranjan-Priyam/cms-sub002/internal/app/service/statistics"
	"github.com/Gyanranjan-Priyam/cms-sub002/pkg/response"
)

// ownStudentOnly blocks students from reading another student's records.
// Staff roles pass through.
func ownStudentOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") == "student" && c.Param("id") != c.GetString("user_id") {
			c.AbortWithStatusJSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodePermission, "cannot access another student's records"))
		}
	}
}

// RegisterWebhookRoutes mounts the unauthenticated gateway callbacks.
// Authenticity is established by signature verification, not by a session.
func RegisterWebhookRoutes(r gin.IRouter, ledger payment.Ledger) {
	g := r.Group("/webhooks")
	g.POST("/midtrans", ApiMidtransWebhook(ledger))
	g.POST("/razorpay", ApiRazorpayWebhook(ledger))
}

// RegisterPaymentRoutes mounts the student-initiated payment flows.
func RegisterPaymentRoutes(r gin.IRouter, ledger payment.Ledger) {
	g := r.Group("/payments")
	g.POST("/custom", ApiSubmitCustomPayment(ledger))
	g.POST("/order", ApiCreateGatewayOrder(ledger))
	g.POST("/verify", ApiVerifyGatewayPayment(ledger))
}

// RegisterFinanceRoutes mounts the review and reporting surface.
func RegisterFinanceRoutes(r gin.IRouter, ledger payment.Ledger, stats *statistics.Service) {
	g := r.Group("/payments")
	g.POST("/verify-custom", ApiReviewCustomPayment(ledger))
	g.POST("/list", ApiListPayments(ledger))
	g.GET("/:id", ApiGetPayment(ledger))
	g.PATCH("/:id/status", ApiUpdatePaymentStatus(ledger))

	r.GET("/dashboard/finance", ApiFinanceOverview(stats))
}

// RegisterAcademicRoutes mounts the faculty-facing recording endpoints.
func RegisterAcademicRoutes(r gin.IRouter, agg academic.Aggregator) {
	a := r.Group("/attendance")
	a.POST("/daily", ApiRecordDailyAttendance(agg))
	a.POST("/period", ApiRecordPeriodAttendance(agg))

	m := r.Group("/marks")
	m.POST("", ApiRecordMarks(agg))
	m.POST("/:id/publish", ApiPublishMarks(agg))

	r.POST("/results", ApiUpsertResult(agg))
}

// RegisterStudentRecordRoutes mounts the per-student read surface shared by
// students (own records only) and staff.
func RegisterStudentRecordRoutes(r gin.IRouter, ledger payment.Ledger, agg academic.Aggregator, dir *directory.Service) {
	g := r.Group("/students/:id")
	g.Use(ownStudentOnly())
	g.GET("", ApiGetStudent(dir))
	g.GET("/payments", ApiStudentPayments(ledger))
	g.GET("/attendance", ApiAttendanceSummary(agg))
	g.GET("/attendance/periods", ApiListPeriodAttendance(agg))
	g.GET("/marks", ApiListMarks(agg))
	g.GET("/results", ApiResultSummary(agg))
}

// RegisterDirectoryRoutes mounts admin student management.
func RegisterDirectoryRoutes(r gin.IRouter, dir *directory.Service) {
	r.GET("/students", ApiListStudents(dir))
	r.POST("/students", ApiCreateStudent(dir))
}

// RegisterAccountRoutes mounts the self-service endpoints every
// authenticated role shares.
func RegisterAccountRoutes(r gin.IRouter, acct *account.Service, notif *notification.Service) {
	r.POST("/account/password", ApiChangePassword(acct))

	n := r.Group("/notifications")
	n.GET("", ApiListNotifications(notif))
	n.POST("/:id/read", ApiMarkNotificationRead(notif))
	n.POST("/read-all", ApiMarkAllNotificationsRead(notif))
}
