package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Gyanranjan-Priyam/cms-sub002/internal/app/service/academic"
	"github.com/Gyanranjan-Priyam/cms-sub002/pkg/response"
)

// @Summary      Record daily attendance
// @Description  Upserts one student's subject-wise attendance for a calendar day. Resubmitting the same day replaces it.
// @Tags         Attendance
// @Accept       json
// @Produce      json
// @Param        request body academic.RecordDailyAttendanceRequest true "Daily attendance"
// @Success      200  {object}  response.APIResponse[models.AttendanceSummary]
// @Router       /api/v1/attendance/daily [post]
func ApiRecordDailyAttendance(agg academic.Aggregator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req academic.RecordDailyAttendanceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		summary, err := agg.RecordDailyAttendance(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.Err(err))
			return
		}
		c.JSON(http.StatusOK, response.OKT(summary))
	}
}

// @Summary      Record period attendance
// @Description  Marks one student for one period of one subject on one date. The same slot can be re-marked, not duplicated.
// @Tags         Attendance
// @Accept       json
// @Produce      json
// @Param        request body academic.RecordPeriodAttendanceRequest true "Period attendance"
// @Success      200  {object}  response.APIResponse[models.PeriodAttendance]
// @Router       /api/v1/attendance/period [post]
func ApiRecordPeriodAttendance(agg academic.Aggregator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req academic.RecordPeriodAttendanceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		req.MarkedBy = c.GetString("user_id")
		rec, err := agg.RecordPeriodAttendance(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.Err(err))
			return
		}
		c.JSON(http.StatusOK, response.OKT(rec))
	}
}

// @Summary      Attendance summary
// @Description  Returns the per-subject counters, percentages and bands for a student in one semester.
// @Tags         Attendance
// @Produce      json
// @Param        id       path  string true "Student id"
// @Param        semester query int    true "Semester"
// @Param        year     query string true "Academic year"
// @Success      200  {object}  response.APIResponse[models.AttendanceSummary]
// @Router       /api/v1/students/{id}/attendance [get]
func ApiAttendanceSummary(agg academic.Aggregator) gin.HandlerFunc {
	return func(c *gin.Context) {
		semester, err := strconv.Atoi(c.Query("semester"))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "invalid semester"))
			return
		}
		summary, err := agg.GetAttendanceSummary(c.Request.Context(), c.Param("id"), semester, c.Query("year"))
		if err != nil {
			c.JSON(http.StatusOK, response.Err(err))
			return
		}
		c.JSON(http.StatusOK, response.OKT(summary))
	}
}

// @Summary      List period attendance
// @Tags         Attendance
// @Produce      json
// @Param        id      path  string true  "Student id"
// @Param        subject query string false "Subject code"
// @Param        from    query string false "From date (YYYY-MM-DD)"
// @Param        to      query string false "To date (YYYY-MM-DD)"
// @Success      200  {object}  response.APIResponse[[]models.PeriodAttendance]
// @Router       /api/v1/students/{id}/attendance/periods [get]
func ApiListPeriodAttendance(agg academic.Aggregator) gin.HandlerFunc {
	return func(c *gin.Context) {
		recs, err := agg.ListPeriodAttendance(c.Request.Context(), c.Param("id"), c.Query("subject"), c.Query("from"), c.Query("to"))
		if err != nil {
			c.JSON(http.StatusOK, response.Err(err))
			return
		}
		c.JSON(http.StatusOK, response.OKT(recs))
	}
}
