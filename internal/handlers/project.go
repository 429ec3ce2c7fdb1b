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
	"github.com/buglane-dev/buglane/internal/types"
	"github.com/buglane-dev/buglane/internal/utils"
	"github.com/buglane-dev/buglane/internal/validate"
)

type ProjectSummaryResponse struct {
	Project    types.ProjectResponse `json:"project"`
	TotalBugs  int64                 `json:"total_bugs"`
	ByStatus   map[string]int64      `json:"by_status"`
	ByPriority map[string]int64      `json:"by_priority"`
}

func projectResponse(project *models.Project) types.ProjectResponse {
	return types.ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		CreatedBy:   project.CreatedByID,
		AssignedTo:  project.AssignedToID,
		CreatedAt:   project.CreatedAt,
	}
}

// userExists backs the invalid-reference checks for assignee fields.
func userExists(id uint) (bool, error) {
	var user models.User

	err := db.DB.Select("id").First(&user, id).Error

	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

func checkAssignee(id *uint) error {
	if id == nil {
		return nil
	}

	exists, err := userExists(*id)
	if err != nil {
		return apperrors.Internal(err)
	}
	if !exists {
		return apperrors.New(apperrors.KindValidation, apperrors.CodeInvalidReference, "assigned_to does not reference an existing user")
	}
	return nil
}

func findProject(ctx *gin.Context) (*models.Project, bool) {
	id, ok := paramID(ctx, "id")
	if !ok {
		apperrors.Respond(ctx, apperrors.NotFound("Project"))
		return nil, false
	}

	var project models.Project

	if err := db.DB.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.Respond(ctx, apperrors.NotFound("Project"))
			return nil, false
		}
		apperrors.Respond(ctx, apperrors.Internal(err))
		return nil, false
	}

	return &project, true
}

func CreateProject(ctx *gin.Context) {
	actor, err := utils.CurrentActor(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := authz.Authorize(actor, authz.ActionCreate, &models.Project{}); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	var input validate.ProjectCreateInput

	if err := ctx.BindJSON(&input); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	sanitized, err := validate.ProjectCreate(input)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	if err := checkAssignee(sanitized.AssignedToID); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	createdBy := actor.ID
	project := models.Project{
		Name:         sanitized.Name,
		Description:  sanitized.Description,
		CreatedByID:  &createdBy,
		AssignedToID: sanitized.AssignedToID,
	}

	if err := db.DB.Create(&project).Error; err != nil {
		apperrors.Respond(ctx, apperrors.Internal(err))
		return
	}

	ctx.JSON(http.StatusCreated, projectResponse(&project))
}

func ListProjects(ctx *gin.Context) {
	var projects []models.Project

	if err := db.DB.Find(&projects).Error; err != nil {
		apperrors.Respond(ctx, apperrors.Internal(err))
		return
	}

	response := make([]types.ProjectResponse, 0, len(projects))
	for i := range projects {
		response = append(response, projectResponse(&projects[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetProject(ctx *gin.Context) {
	project, ok := findProject(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, projectResponse(project))
}

func UpdateProject(ctx *gin.Context) {
	actor, err := utils.CurrentActor(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	project, ok := findProject(ctx)
	if !ok {
		return
	}

	if err := authz.Authorize(actor, authz.ActionUpdate, project); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	var input validate.ProjectUpdateInput

	if err := ctx.BindJSON(&input); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates, err := validate.ProjectUpdate(input)
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

	if err := db.DB.Model(project).Updates(updates).Error; err != nil {
		apperrors.Respond(ctx, apperrors.Internal(err))
		return
	}

	if err := db.DB.First(project, project.ID).Error; err != nil {
		apperrors.Respond(ctx, apperrors.Internal(err))
		return
	}

	ctx.JSON(http.StatusOK, projectResponse(project))
}

// DeleteProject cascades to the project's bugs and their comments, but
// only with force=true once dependents exist.
func DeleteProject(ctx *gin.Context) {
	actor, err := utils.CurrentActor(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	project, ok := findProject(ctx)
	if !ok {
		return
	}

	if err := authz.Authorize(actor, authz.ActionDelete, project); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	force := ctx.Query("force") == "true"

	if err := guard.CheckProjectDelete(guard.StoreCounter{DB: db.DB}, project.ID, force); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	// Hard delete so the CASCADE constraints remove bugs and comments
	// atomically.
	if err := db.DB.Unscoped().Delete(project).Error; err != nil {
		apperrors.Respond(ctx, apperrors.Internal(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

func ListProjectBugs(ctx *gin.Context) {
	project, ok := findProject(ctx)
	if !ok {
		return
	}

	var bugs []models.Bug

	if err := db.DB.Where("project_id = ?", project.ID).Order("created_at DESC").Find(&bugs).Error; err != nil {
		apperrors.Respond(ctx, apperrors.Internal(err))
		return
	}

	response := make([]types.BugResponse, 0, len(bugs))
	for i := range bugs {
		response = append(response, bugResponse(&bugs[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

// GetProjectSummary aggregates bug counts by status and priority.
func GetProjectSummary(ctx *gin.Context) {
	project, ok := findProject(ctx)
	if !ok {
		return
	}

	var total int64

	if err := db.DB.Model(&models.Bug{}).Where("project_id = ?", project.ID).Count(&total).Error; err != nil {
		apperrors.Respond(ctx, apperrors.Internal(err))
		return
	}

	byStatus, err := countBugsBy(project.ID, "status")
	if err != nil {
		apperrors.Respond(ctx, apperrors.Internal(err))
		return
	}

	byPriority, err := countBugsBy(project.ID, "priority")
	if err != nil {
		apperrors.Respond(ctx, apperrors.Internal(err))
		return
	}

	ctx.JSON(http.StatusOK, ProjectSummaryResponse{
		Project:    projectResponse(project),
		TotalBugs:  total,
		ByStatus:   byStatus,
		ByPriority: byPriority,
	})
}

func countBugsBy(projectID uint, column string) (map[string]int64, error) {
	var rows []struct {
		Value string
		Count int64
	}

	err := db.DB.Model(&models.Bug{}).
		Select(column+" AS value, COUNT(*) AS count").
		Where("project_id = ?", projectID).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Value] = row.Count
	}

	return counts, nil
}

func GetProjectActivity(ctx *gin.Context) {
	project, ok := findProject(ctx)
	if !ok {
		return
	}

	var activities []models.Activity

	err := db.DB.Where("project_id = ?", project.ID).
		Order("created_at DESC").
		Limit(50).
		Find(&activities).Error
	if err != nil {
		apperrors.Respond(ctx, apperrors.Internal(err))
		return
	}

	ctx.JSON(http.StatusOK, activities)
}
