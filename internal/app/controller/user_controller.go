package controller

import (
	"net/http"

	"github.com/ecofinds/ecofinds-backend/internal/app/service"
	apperrors "github.com/ecofinds/ecofinds-backend/internal/errors"
	"github.com/ecofinds/ecofinds-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

type UpdateAccountRequest struct {
	Username *string `json:"username" binding:"omitempty,min=2,max=50"`
	Email    *string `json:"email" binding:"omitempty,email"`
}

type UpsertProfileRequest struct {
	Name       *string `json:"name"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	PostalCode *string `json:"postal_code"`
	Country    *string `json:"country"`
}

// GetAccount returns the authenticated user with profile
// GET /api/v1/users/me
func (ctrl *UserController) GetAccount(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	user, err := ctrl.userService.GetAccount(userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": userResponse(user),
	})
}

// UpdateAccount changes username and/or email
// PUT /api/v1/users/me
func (ctrl *UserController) UpdateAccount(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid account payload")
		return
	}

	user, err := ctrl.userService.UpdateAccount(userID, service.AccountUpdate{
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		log.Warn("Account update failed", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Account updated successfully",
		"user":    userResponse(user),
	})
}

// UpsertProfile creates or updates the user's profile
// PUT /api/v1/users/me/profile
func (ctrl *UserController) UpsertProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid profile payload")
		return
	}

	profile, err := ctrl.userService.UpsertProfile(userID, service.ProfileUpdate{
		Name:       req.Name,
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.PostalCode,
		Country:    req.Country,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile saved successfully",
		"profile": profile,
	})
}

// DeleteAccount removes the user and everything they own
// DELETE /api/v1/users/me
func (ctrl *UserController) DeleteAccount(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	email, _ := middleware.GetUserEmail(c)

	if err := ctrl.userService.DeleteAccount(userID); err != nil {
		log.Error("Account deletion failed", err, map[string]interface{}{
			"user_id": userID,
			"email":   email,
		})
		apperrors.Respond(c, err)
		return
	}

	// The row is gone after this point; log the identity from the token.
	log.Info("Account deleted", map[string]interface{}{
		"user_id": userID,
		"email":   email,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Account deleted successfully",
	})
}
