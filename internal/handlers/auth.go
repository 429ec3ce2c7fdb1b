package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/buglane-dev/buglane/db"
	"github.com/buglane-dev/buglane/internal/apperrors"
	"github.com/buglane-dev/buglane/internal/auth"
	"github.com/buglane-dev/buglane/internal/models"
	"github.com/buglane-dev/buglane/internal/types"
	"github.com/buglane-dev/buglane/internal/utils"
	"github.com/buglane-dev/buglane/internal/validate"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func userResponse(user *models.User) types.UserResponse {
	return types.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}
}

func Register(ctx *gin.Context) {
	var input validate.CredentialsInput

	if err := ctx.BindJSON(&input); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	creds, err := validate.ParseCredentials(input)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	var existingUser models.User

	err = db.DB.Where("email = ?", creds.Email).First(&existingUser).Error

	if err == nil {
		apperrors.Respond(ctx, apperrors.New(apperrors.KindConflict, apperrors.CodeEmailTaken, "Email already exists"))
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		apperrors.Respond(ctx, apperrors.Internal(err))
		return
	}

	newUser := models.User{
		Username:     creds.Username,
		Email:        creds.Email,
		PasswordHash: creds.PasswordHash,
		Role:         creds.Role,
	}

	if err := db.DB.Create(&newUser).Error; err != nil {
		apperrors.Respond(ctx, apperrors.Internal(err))
		return
	}

	token, err := auth.GenerateJWT(newUser.ID, newUser.Email, newUser.Role)

	if err != nil {
		apperrors.Respond(ctx, apperrors.Internal(err))
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  userResponse(&newUser),
	})
}

func Login(ctx *gin.Context) {
	var body LoginRequest

	if err := ctx.BindJSON(&body); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	// One generic failure for both unknown email and wrong password, so
	// login cannot be used to probe which addresses are registered.
	invalidCredentials := apperrors.New(apperrors.KindUnauthorized, apperrors.CodeInvalidCredentials, "Invalid email or password")

	var user models.User

	err := db.DB.Where("email = ?", validate.NormalizeEmail(body.Email)).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.Respond(ctx, invalidCredentials)
			return
		}
		apperrors.Respond(ctx, apperrors.Internal(err))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
		apperrors.Respond(ctx, invalidCredentials)
		return
	}

	token, err := auth.GenerateJWT(user.ID, user.Email, user.Role)

	if err != nil {
		apperrors.Respond(ctx, apperrors.Internal(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  userResponse(&user),
	})
}

func Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var user models.User

	if err := db.DB.First(&user, currentUser.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.Respond(ctx, apperrors.NotFound("User"))
			return
		}
		apperrors.Respond(ctx, apperrors.Internal(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": userResponse(&user)})
}

// ChangePassword verifies the current password before storing a new hash.
// The existing token stays valid until its natural expiry; no new token is
// issued here.
func ChangePassword(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body ChangePasswordRequest

	if err := ctx.BindJSON(&body); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var user models.User

	if err := db.DB.First(&user, currentUser.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.Respond(ctx, apperrors.NotFound("User"))
			return
		}
		apperrors.Respond(ctx, apperrors.Internal(err))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.CurrentPassword)); err != nil {
		apperrors.Respond(ctx, apperrors.New(apperrors.KindUnauthorized, apperrors.CodeInvalidCredentials, "Current password is incorrect"))
		return
	}

	if err := validate.CheckPassword(body.NewPassword); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)

	if err != nil {
		apperrors.Respond(ctx, apperrors.Internal(err))
		return
	}

	if err := db.DB.Model(&user).Update("password_hash", string(passwordHash)).Error; err != nil {
		apperrors.Respond(ctx, apperrors.Internal(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}
