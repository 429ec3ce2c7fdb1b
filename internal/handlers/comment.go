package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/buglane-dev/buglane/db"
	"github.com/buglane-dev/buglane/internal/apperrors"
	"github.com/buglane-dev/buglane/internal/authz"
	"github.com/buglane-dev/buglane/internal/models"
	"github.com/buglane-dev/buglane/internal/services"
	"github.com/buglane-dev/buglane/internal/types"
	"github.com/buglane-dev/buglane/internal/utils"
	"github.com/buglane-dev/buglane/internal/validate"
)

func commentResponse(comment *models.Comment) types.CommentResponse {
	return types.CommentResponse{
		ID:        comment.ID,
		BugID:     comment.BugID,
		UserID:    comment.UserID,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	}
}

func ListComments(ctx *gin.Context) {
	bug, ok := findBug(ctx)
	if !ok {
		return
	}

	var comments []models.Comment

	if err := db.DB.Where("bug_id = ?", bug.ID).Order("created_at ASC").Find(&comments).Error; err != nil {
		apperrors.Respond(ctx, apperrors.Internal(err))
		return
	}

	response := make([]types.CommentResponse, 0, len(comments))
	for i := range comments {
		response = append(response, commentResponse(&comments[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

// CreateComment attaches a comment to the bug in the path; the author is
// the actor. Both associations are immutable afterwards.
func CreateComment(ctx *gin.Context) {
	actor, err := utils.CurrentActor(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	bug, ok := findBug(ctx)
	if !ok {
		return
	}

	var input validate.CommentCreateInput

	if err := ctx.BindJSON(&input); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	sanitized, err := validate.CommentCreate(input)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	comment := models.Comment{
		BugID:  bug.ID,
		UserID: actor.ID,
		Text:   sanitized.Text,
	}

	if err := db.DB.Create(&comment).Error; err != nil {
		apperrors.Respond(ctx, apperrors.Internal(err))
		return
	}

	actorID := actor.ID
	services.RecordActivity(bug.ProjectID, &actorID, models.ActivityCommentCreated, map[string]interface{}{
		"bug_id":     bug.ID,
		"comment_id": comment.ID,
	})

	ctx.JSON(http.StatusCreated, commentResponse(&comment))
}

func findComment(ctx *gin.Context) (*models.Comment, bool) {
	id, ok := paramID(ctx, "id")
	if !ok {
		apperrors.Respond(ctx, apperrors.NotFound("Comment"))
		return nil, false
	}

	var comment models.Comment

	if err := db.DB.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.Respond(ctx, apperrors.NotFound("Comment"))
			return nil, false
		}
		apperrors.Respond(ctx, apperrors.Internal(err))
		return nil, false
	}

	return &comment, true
}

func UpdateComment(ctx *gin.Context) {
	actor, err := utils.CurrentActor(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	comment, ok := findComment(ctx)
	if !ok {
		return
	}

	if err := authz.Authorize(actor, authz.ActionUpdate, comment); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	var input validate.CommentUpdateInput

	if err := ctx.BindJSON(&input); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates, err := validate.CommentUpdate(input)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	if err := db.DB.Model(comment).Updates(updates).Error; err != nil {
		apperrors.Respond(ctx, apperrors.Internal(err))
		return
	}

	if err := db.DB.First(comment, comment.ID).Error; err != nil {
		apperrors.Respond(ctx, apperrors.Internal(err))
		return
	}

	ctx.JSON(http.StatusOK, commentResponse(comment))
}

func DeleteComment(ctx *gin.Context) {
	actor, err := utils.CurrentActor(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	comment, ok := findComment(ctx)
	if !ok {
		return
	}

	if err := authz.Authorize(actor, authz.ActionDelete, comment); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	if err := db.DB.Unscoped().Delete(comment).Error; err != nil {
		apperrors.Respond(ctx, apperrors.Internal(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
