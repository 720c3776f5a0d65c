package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gyanranjan-Priyam/cms-sub002/internal/app/service/academic"
	"github.com/Gyanranjan-Priyam/cms-sub002/pkg/response"
)

// @Summary      Record marks
// @Description  Upserts one student's score for a subject and exam type. Percentage and grade are derived server-side.
// @Tags         Marks
// @Accept       json
// @Produce      json
// @Param        request body academic.RecordMarksRequest true "Marks entry"
// @Success      200  {object}  response.APIResponse[models.Mark]
// @Router       /api/v1/marks [post]
func ApiRecordMarks(agg academic.Aggregator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req academic.RecordMarksRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		req.EnteredBy = c.GetString("user_id")
		mark, err := agg.RecordMarks(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.Err(err))
			return
		}
		c.JSON(http.StatusOK, response.OKT(mark))
	}
}

// @Summary      Publish marks
// @Description  Makes a mark visible to its student. Publishing is one-way and idempotent.
// @Tags         Marks
// @Produce      json
// @Param        id path string true "Mark id"
// @Success      200  {object}  response.APIResponse[models.Mark]
// @Router       /api/v1/marks/{id}/publish [post]
func ApiPublishMarks(agg academic.Aggregator) gin.HandlerFunc {
	return func(c *gin.Context) {
		mark, err := agg.PublishMarks(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusOK, response.Err(err))
			return
		}
		c.JSON(http.StatusOK, response.OKT(mark))
	}
}

// @Summary      List a student's marks
// @Description  Students see only published marks; staff see everything.
// @Tags         Marks
// @Produce      json
// @Param        id   path  string true  "Student id"
// @Param        year query string false "Academic year"
// @Success      200  {object}  response.APIResponse[[]models.Mark]
// @Router       /api/v1/students/{id}/marks [get]
func ApiListMarks(agg academic.Aggregator) gin.HandlerFunc {
	return func(c *gin.Context) {
		publishedOnly := c.GetString("role") == "student"
		marks, err := agg.ListMarks(c.Request.Context(), c.Param("id"), c.Query("year"), publishedOnly)
		if err != nil {
			c.JSON(http.StatusOK, response.Err(err))
			return
		}
		c.JSON(http.StatusOK, response.OKT(marks))
	}
}
