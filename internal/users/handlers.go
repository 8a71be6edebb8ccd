package users

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"matchday-backend/internal/apperr"
	"matchday-backend/internal/httpapi"
	"matchday-backend/internal/models"
)

// POST /api/users
func Create(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name     string `json:"name" binding:"required"`
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"omitempty,min=6"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			httpapi.Fail(c, apperr.Wrap(apperr.KindValidation, apperr.CodeInvalidRequest, err))
			return
		}
		u, err := svc.Create(c.Request.Context(), CreateUserRequest(req))
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, u)
	}
}

// GET /api/users
func List(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svc.List(c.Request.Context())
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// GET /api/users/me
func Me(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := svc.Get(c.Request.Context(), httpapi.UserID(c))
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

// GET /api/users/:id
func Get(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			httpapi.Fail(c, apperr.Wrap(apperr.KindValidation, apperr.CodeInvalidRequest, err))
			return
		}
		u, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

type updateRequest struct {
	Name      *string `json:"name"`
	Email     *string `json:"email" binding:"omitempty,email"`
	AvatarURL *string `json:"avatarUrl"`
}

// PATCH /api/users/me
func UpdateMe(svc *Service) gin.HandlerFunc {
	return update(svc, func(c *gin.Context) (uuid.UUID, error) {
		return httpapi.UserID(c), nil
	})
}

// PATCH /api/users/:id
func Update(svc *Service) gin.HandlerFunc {
	return update(svc, func(c *gin.Context) (uuid.UUID, error) {
		return uuid.Parse(c.Param("id"))
	})
}

func update(svc *Service, target func(*gin.Context) (uuid.UUID, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := target(c)
		if err != nil {
			httpapi.Fail(c, apperr.Wrap(apperr.KindValidation, apperr.CodeInvalidRequest, err))
			return
		}
		var req updateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpapi.Fail(c, apperr.Wrap(apperr.KindValidation, apperr.CodeInvalidRequest, err))
			return
		}
		u, err := svc.Update(c.Request.Context(), id, UpdateParams{
			Name:      req.Name,
			Email:     req.Email,
			AvatarURL: req.AvatarURL,
		})
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

// DELETE /api/users/:id
func Delete(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			httpapi.Fail(c, apperr.Wrap(apperr.KindValidation, apperr.CodeInvalidRequest, err))
			return
		}
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			httpapi.Fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// POST /api/users/me/change-password
func ChangePassword(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			OldPassword string `json:"oldPassword" binding:"required"`
			NewPassword string `json:"newPassword" binding:"required,min=6"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			httpapi.Fail(c, apperr.Wrap(apperr.KindValidation, apperr.CodeInvalidRequest, err))
			return
		}
		if err := svc.ChangePassword(c.Request.Context(), httpapi.UserID(c), req.OldPassword, req.NewPassword); err != nil {
			httpapi.Fail(c, err)
			return
		}
		httpapi.Message(c, http.StatusOK, "PASSWORD_CHANGED")
	}
}

// POST /api/users/:id/plan
func ChangePlan(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Plan models.PlanID `json:"plan" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			httpapi.Fail(c, apperr.Wrap(apperr.KindValidation, apperr.CodeInvalidRequest, err))
			return
		}
		changePlan(svc, c, req.Plan)
	}
}

// POST /api/users/:id/upgrade
func Upgrade(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		changePlan(svc, c, models.PlanPro)
	}
}

// POST /api/users/:id/downgrade
func Downgrade(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		changePlan(svc, c, models.PlanFree)
	}
}

func changePlan(svc *Service, c *gin.Context, plan models.PlanID) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpapi.Fail(c, apperr.Wrap(apperr.KindValidation, apperr.CodeInvalidRequest, err))
		return
	}
	role := models.Role(httpapi.UserRole(c))
	u, err := svc.ChangePlan(c.Request.Context(), role, id, plan)
	if err != nil {
		httpapi.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
