package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gyanranjan-Priyam/cms-sub002/internal/app/service/account"
	"github.com/Gyanranjan-Priyam/cms-sub002/internal/models"
	"github.com/Gyanranjan-Priyam/cms-sub002/pkg/response"
)

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// accountRole maps the token role to the backing account population.
// Every admin sub-role shares the admin table.
func accountRole(role string) models.RecipientRole {
	switch role {
	case "student":
		return models.RecipientRoleStudent
	case "faculty":
		return models.RecipientRoleFaculty
	case "head_admin", "student_management", "finance":
		return models.RecipientRoleAdmin
	default:
		return ""
	}
}

// @Summary      Change password
// @Description  Rotates the caller's own credential after verifying the current one.
// @Tags         Account
// @Accept       json
// @Produce      json
// @Param        request body changePasswordRequest true "Credential rotation"
// @Success      200  {object}  response.APIResponse[any]
// @Router       /api/v1/account/password [post]
func ApiChangePassword(svc *account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req changePasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		acct, err := svc.AccountFor(c.Request.Context(), accountRole(c.GetString("role")), c.GetString("user_id"))
		if err != nil {
			c.JSON(http.StatusOK, response.Err(err))
			return
		}
		if err := acct.ChangeCredential(c.Request.Context(), req.CurrentPassword, req.NewPassword); err != nil {
			c.JSON(http.StatusOK, response.Err(err))
			return
		}
		c.JSON(http.StatusOK, response.OKT[any](nil))
	}
}
