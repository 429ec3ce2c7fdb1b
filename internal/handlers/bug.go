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
	"github.com/buglane-dev/buglane/internal/guard"
	"github.com/buglane-dev/buglane/internal/models"
	"github.com/buglane-dev/buglane/internal/services"
	"github.com/buglane-dev/buglane/internal/types"
	"github.com/buglane-dev/buglane/internal/utils"
	"github.com/buglane-dev/buglane/internal/validate"
)

func bugResponse(bug *models.Bug) types.BugResponse {
	return types.BugResponse{
		ID:          bug.ID,
		Title:       bug.Title,
		Description: bug.Description,
		Status:      bug.Status,
		Priority:    bug.Priority,
		ProjectID:   bug.ProjectID,
		ReportedBy:  bug.ReportedByID,
		AssignedTo:  bug.AssignedToID,
		CreatedAt:   bug.CreatedAt,
	}
}

func findBug(ctx *gin.Context) (*models.Bug, bool) {
	id, ok := paramID(ctx, "id")
	if !ok {
		apperrors.Respond(ctx, apperrors.NotFound("Bug"))
		return nil, false
	}

	var bug models.Bug

	if err := db.DB.First(&bug, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.Respond(ctx, apperrors.NotFound("Bug"))
			return nil, false
		}
		apperrors.Respond(ctx, apperrors.Internal(err))
		return nil, false
	}

	return &bug, true
}

// CreateBug is open to any authenticated user; the actor becomes the
// reporter. The project reference is validated against the store.
func CreateBug(ctx *gin.Context) {
	actor, err := utils.CurrentActor(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input validate.BugCreateInput

	if err := ctx.BindJSON(&input); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	sanitized, err := validate.BugCreate(input)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	var project models.Project

	if err := db.DB.First(&project, sanitized.ProjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.Respond(ctx, apperrors.New(apperrors.KindValidation, apperrors.CodeInvalidReference, "project_id does not reference an existing project"))
			return
		}
		apperrors.Respond(ctx, apperrors.Internal(err))
		return
	}

	if err := checkAssignee(sanitized.AssignedToID); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	reportedBy := actor.ID
	bug := models.Bug{
		Title:        sanitized.Title,
		Description:  sanitized.Description,
		Status:       sanitized.Status,
		Priority:     sanitized.Priority,
		ProjectID:    sanitized.ProjectID,
		ReportedByID: &reportedBy,
		AssignedToID: sanitized.AssignedToID,
	}

	if err := db.DB.Create(&bug).Error; err != nil {
		apperrors.Respond(ctx, apperrors.Internal(err))
		return
	}

	services.RecordActivity(bug.ProjectID, &reportedBy, models.ActivityBugCreated, map[string]interface{}{
		"bug_id": bug.ID,
		"title":  bug.Title,
	})

	ctx.JSON(http.StatusCreated, bugResponse(&bug))
}

func GetBug(ctx *gin.Context) {
	bug, ok := findBug(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, bugResponse(bug))
}

func UpdateBug(ctx *gin.Context) {
	actor, err := utils.CurrentActor(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	bug, ok := findBug(ctx)
	if !ok {
		return
	}

	if err := authz.Authorize(actor, authz.ActionUpdate, bug); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	var input validate.BugUpdateInput

	if err := ctx.BindJSON(&input); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates, err := validate.BugUpdate(input)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	if assignee, ok := updates["assigned_to_id"].(*uint); ok {
		if err := checkAssignee(assignee); err != nil {
			apperrors.Respond(ctx, err)
			return
		}
	}

	if err := db.DB.Model(bug).Updates(updates).Error; err != nil {
		apperrors.Respond(ctx, apperrors.Internal(err))
		return
	}

	if err := db.DB.First(bug, bug.ID).Error; err != nil {
		apperrors.Respond(ctx, apperrors.Internal(err))
		return
	}

	actorID := actor.ID
	services.RecordActivity(bug.ProjectID, &actorID, models.ActivityBugUpdated, map[string]interface{}{
		"bug_id": bug.ID,
		"title":  bug.Title,
	})

	ctx.JSON(http.StatusOK, bugResponse(bug))
}

func DeleteBug(ctx *gin.Context) {
	actor, err := utils.CurrentActor(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	bug, ok := findBug(ctx)
	if !ok {
		return
	}

	if err := authz.Authorize(actor, authz.ActionDelete, bug); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	force := ctx.Query("force") == "true"

	if err := guard.CheckBugDelete(guard.StoreCounter{DB: db.DB}, bug.ID, force); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	// Hard delete so the CASCADE constraint removes the bug's comments.
	if err := db.DB.Unscoped().Delete(bug).Error; err != nil {
		apperrors.Respond(ctx, apperrors.Internal(err))
		return
	}

	actorID := actor.ID
	services.RecordActivity(bug.ProjectID, &actorID, models.ActivityBugDeleted, map[string]interface{}{
		"bug_id": bug.ID,
		"title":  bug.Title,
	})

	ctx.Status(http.StatusNoContent)
}
