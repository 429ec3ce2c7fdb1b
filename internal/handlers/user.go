package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/buglane-dev/buglane/db"
	"github.com/buglane-dev/buglane/internal/apperrors"
	"github.com/buglane-dev/buglane/internal/authz"
	"github.com/buglane-dev/buglane/internal/guard"
	"github.com/buglane-dev/buglane/internal/models"
	"github.com/buglane-dev/buglane/internal/types"
	"github.com/buglane-dev/buglane/internal/utils"
	"github.com/buglane-dev/buglane/internal/validate"
)

// paramID parses a numeric path parameter; anything unparseable is a
// request for a resource that cannot exist.
func paramID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func ListUsers(ctx *gin.Context) {
	var users []models.User

	if err := db.DB.Find(&users).Error; err != nil {
		apperrors.Respond(ctx, apperrors.Internal(err))
		return
	}

	response := make([]types.UserResponse, 0, len(users))
	for i := range users {
		response = append(response, userResponse(&users[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetUser(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		apperrors.Respond(ctx, apperrors.NotFound("User"))
		return
	}

	var user models.User

	if err := db.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.Respond(ctx, apperrors.NotFound("User"))
			return
		}
		apperrors.Respond(ctx, apperrors.Internal(err))
		return
	}

	ctx.JSON(http.StatusOK, userResponse(&user))
}

func UpdateUser(ctx *gin.Context) {
	actor, err := utils.CurrentActor(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, ok := paramID(ctx, "id")
	if !ok {
		apperrors.Respond(ctx, apperrors.NotFound("User"))
		return
	}

	// Existence before permission: a missing target is 404 for everyone.
	var user models.User

	if err := db.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.Respond(ctx, apperrors.NotFound("User"))
			return
		}
		apperrors.Respond(ctx, apperrors.Internal(err))
		return
	}

	if err := authz.Authorize(actor, authz.ActionUpdate, &user); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	var input validate.UserUpdateInput

	if err := ctx.BindJSON(&input); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates, err := validate.UserUpdate(input)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	if newEmail, ok := updates["email"].(string); ok && newEmail != user.Email {
		var existingUser models.User
		err := db.DB.Where("email = ? AND id != ?", newEmail, user.ID).First(&existingUser).Error
		if err == nil {
			apperrors.Respond(ctx, apperrors.New(apperrors.KindConflict, apperrors.CodeEmailTaken, "Email already exists"))
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.Respond(ctx, apperrors.Internal(err))
			return
		}
	}

	if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
		apperrors.Respond(ctx, apperrors.Internal(err))
		return
	}

	if err := db.DB.First(&user, user.ID).Error; err != nil {
		apperrors.Respond(ctx, apperrors.Internal(err))
		return
	}

	ctx.JSON(http.StatusOK, userResponse(&user))
}

// DeleteUser refuses while the user still has dependents; there is no
// force-cascade for accounts.
func DeleteUser(ctx *gin.Context) {
	actor, err := utils.CurrentActor(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, ok := paramID(ctx, "id")
	if !ok {
		apperrors.Respond(ctx, apperrors.NotFound("User"))
		return
	}

	var user models.User

	if err := db.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.Respond(ctx, apperrors.NotFound("User"))
			return
		}
		apperrors.Respond(ctx, apperrors.Internal(err))
		return
	}

	if err := authz.Authorize(actor, authz.ActionDelete, &user); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	if err := guard.CheckUserDelete(guard.StoreCounter{DB: db.DB}, user.ID); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	// Hard delete so the store's SET NULL actions on remaining references
	// actually run.
	if err := db.DB.Unscoped().Delete(&user).Error; err != nil {
		apperrors.Respond(ctx, apperrors.Internal(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
