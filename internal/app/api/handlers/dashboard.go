package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gyanranjan-Priyam/cms-sub002/internal/app/service/directory"
	"github.com/Gyanranjan-Priyam/cms-sub002/internal/app/service/statistics"
	"github.com/Gyanranjan-Priyam/cms-sub002/internal/models"
	"github.com/Gyanranjan-Priyam/cms-sub002/pkg/response"
)

// @Summary      Finance overview
// @Description  Daily and cumulative collection totals plus the pending review queue depth.
// @Tags         Dashboard
// @Produce      json
// @Param        day query string false "Calendar day (YYYY-MM-DD), defaults to today"
// @Success      200  {object}  response.APIResponse[statistics.FinanceOverview]
// @Router       /api/v1/dashboard/finance [get]
func ApiFinanceOverview(svc *statistics.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		day := time.Now()
		if v := c.Query("day"); v != "" {
			parsed, err := time.Parse("2006-01-02", v)
			if err != nil {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "invalid day"))
				return
			}
			day = parsed
		}
		overview, err := svc.FinanceOverviewFor(c.Request.Context(), day)
		if err != nil {
			c.JSON(http.StatusOK, response.Err(err))
			return
		}
		c.JSON(http.StatusOK, response.OKT(overview))
	}
}

// @Summary      List students
// @Tags         Directory
// @Produce      json
// @Param        branch   query string false "Branch"
// @Param        semester query int    false "Semester"
// @Param        from     query int    false "Offset"
// @Param        size     query int    false "Page size"
// @Success      200  {object}  response.APIResponse[[]models.Student]
// @Router       /api/v1/students [get]
func ApiListStudents(dir *directory.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := &directory.ListStudentsRequest{Branch: c.Query("branch")}
		req.Semester, _ = strconv.Atoi(c.Query("semester"))
		req.From, _ = strconv.Atoi(c.Query("from"))
		req.Size, _ = strconv.Atoi(c.Query("size"))
		students, _, err := dir.ListStudents(c.Request.Context(), req)
		if err != nil {
			c.JSON(http.StatusOK, response.Err(err))
			return
		}
		c.JSON(http.StatusOK, response.OKT(students))
	}
}

// @Summary      Get student
// @Tags         Directory
// @Produce      json
// @Param        id path string true "Student id"
// @Success      200  {object}  response.APIResponse[models.Student]
// @Router       /api/v1/students/{id} [get]
func ApiGetStudent(dir *directory.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := dir.GetStudent(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusOK, response.Err(err))
			return
		}
		c.JSON(http.StatusOK, response.OKT(st))
	}
}

// @Summary      Create student
// @Tags         Directory
// @Accept       json
// @Produce      json
// @Param        request body models.Student true "Student record"
// @Success      200  {object}  response.APIResponse[models.Student]
// @Router       /api/v1/students [post]
func ApiCreateStudent(dir *directory.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var st models.Student
		if err := c.ShouldBindJSON(&st); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if err := dir.CreateStudent(c.Request.Context(), &st); err != nil {
			c.JSON(http.StatusOK, response.Err(err))
			return
		}
		c.JSON(http.StatusOK, response.OKT(&st))
	}
}
