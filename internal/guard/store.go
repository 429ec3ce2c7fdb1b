package guard

import (
	"github.com/buglane-dev/buglane/internal/models"
	"gorm.io/gorm"
)

// StoreCounter is the GORM-backed Counter used by the handlers.
type StoreCounter struct {
	DB *gorm.DB
}

func (s StoreCounter) ProjectBugCount(projectID uint) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Bug{}).Where("project_id = ?", projectID).Count(&count).Error
	return count, err
}

func (s StoreCounter) BugCommentCount(bugID uint) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Comment{}).Where("bug_id = ?", bugID).Count(&count).Error
	return count, err
}

func (s StoreCounter) UserDependents(userID uint) (Dependents, error) {
	var deps Dependents

	if err := s.DB.Model(&models.Project{}).Where("created_by_id = ?", userID).Count(&deps.Projects).Error; err != nil {
		return Dependents{}, err
	}
	if err := s.DB.Model(&models.Bug{}).Where("assigned_to_id = ?", userID).Count(&deps.Bugs).Error; err != nil {
		return Dependents{}, err
	}
	if err := s.DB.Model(&models.Comment{}).Where("user_id = ?", userID).Count(&deps.Comments).Error; err != nil {
		return Dependents{}, err
	}

	return deps, nil
}
