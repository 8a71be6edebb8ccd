package matches

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"matchday-backend/internal/apperr"
	"matchday-backend/internal/httpapi"
	"matchday-backend/internal/models"
)

// POST /api/matches
func Create(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			GameID            string               `json:"gameId" binding:"required"`
			TeamFormationMode models.FormationMode `json:"teamFormationMode" binding:"required,oneof=manual random"`
			TeamCount         int                  `json:"teamCount" binding:"required,min=2"`
			Players           []uuid.UUID          `json:"players" binding:"required,min=2"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			httpapi.Fail(c, apperr.Wrap(apperr.KindValidation, apperr.CodeInvalidRequest, err))
			return
		}
		m, err := svc.Create(c.Request.Context(), CreateInput{
			GameID:    req.GameID,
			Mode:      req.TeamFormationMode,
			TeamCount: req.TeamCount,
			CreatedBy: httpapi.UserID(c),
			Players:   req.Players,
		})
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, m)
	}
}

// GET /api/matches
func List(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svc.List(c.Request.Context())
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		if out == nil {
			out = []models.Match{}
		}
		c.JSON(http.StatusOK, out)
	}
}

// GET /api/matches/:id
func Get(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			httpapi.Fail(c, apperr.Wrap(apperr.KindValidation, apperr.CodeInvalidRequest, err))
			return
		}
		m, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, m)
	}
}

// PATCH /api/matches/:id
func Update(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			httpapi.Fail(c, apperr.Wrap(apperr.KindValidation, apperr.CodeInvalidRequest, err))
			return
		}
		var req struct {
			Status models.MatchStatus `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			httpapi.Fail(c, apperr.Wrap(apperr.KindValidation, apperr.CodeInvalidRequest, err))
			return
		}
		m, err := svc.UpdateStatus(c.Request.Context(), id, req.Status)
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, m)
	}
}

// DELETE /api/matches/:id
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

// POST /api/matches/:id/teams
func CreateTeamsManual(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			httpapi.Fail(c, apperr.Wrap(apperr.KindValidation, apperr.CodeInvalidRequest, err))
			return
		}
		var req struct {
			Teams []TeamSpec `json:"teams" binding:"required,min=2,dive"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			httpapi.Fail(c, apperr.Wrap(apperr.KindValidation, apperr.CodeInvalidRequest, err))
			return
		}
		m, err := svc.CreateTeamsManual(c.Request.Context(), id, req.Teams)
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, m)
	}
}

// POST /api/matches/:id/teams/random
func CreateTeamsRandom(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			httpapi.Fail(c, apperr.Wrap(apperr.KindValidation, apperr.CodeInvalidRequest, err))
			return
		}
		// The body is optional: {"seed": "..."} or nothing at all.
		var req struct {
			Seed string `json:"seed"`
		}
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			httpapi.Fail(c, apperr.Wrap(apperr.KindValidation, apperr.CodeInvalidRequest, err))
			return
		}
		m, err := svc.CreateTeamsRandom(c.Request.Context(), id, req.Seed)
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, m)
	}
}
