package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gyanranjan-Priyam/cms-sub002/internal/app/service/academic"
	"github.com/Gyanranjan-Priyam/cms-sub002/internal/models"
	"github.com/Gyanranjan-Priyam/cms-sub002/pkg/response"
)

// @Summary      Upsert semester result
// @Description  Records or replaces one student's result sheet for a semester. A failed semester earns zero credits.
// @Tags         Results
// @Accept       json
// @Produce      json
// @Param        request body models.Result true "Semester result"
// @Success      200  {object}  response.APIResponse[models.Result]
// @Router       /api/v1/results [post]
func ApiUpsertResult(agg academic.Aggregator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var res models.Result
		if err := c.ShouldBindJSON(&res); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		saved, err := agg.UpsertResult(c.Request.Context(), &res)
		if err != nil {
			c.JSON(http.StatusOK, response.Err(err))
			return
		}
		c.JSON(http.StatusOK, response.OKT(saved))
	}
}

// @Summary      Result summary
// @Description  All semester results for a student plus the credit-weighted CGPA over passed semesters.
// @Tags         Results
// @Produce      json
// @Param        id path string true "Student id"
// @Success      200  {object}  response.APIResponse[academic.ResultSummary]
// @Router       /api/v1/students/{id}/results [get]
func ApiResultSummary(agg academic.Aggregator) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := agg.ComputeResultSummary(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusOK, response.Err(err))
			return
		}
		c.JSON(http.StatusOK, response.OKT(summary))
	}
}
