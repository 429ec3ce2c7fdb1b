package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ActivityBugCreated     = "bug_created"
	ActivityBugUpdated     = "bug_updated"
	ActivityBugDeleted     = "bug_deleted"
	ActivityCommentCreated = "comment_created"
)

// Activity is an append-only record of mutations within a project, used by
// the project activity listing and the websocket live feed.
type Activity struct {
	gorm.Model

	ProjectID uint           `gorm:"not null;index"`
	UserID    *uint          // actor; nulled if the user is removed
	Action    string         `gorm:"not null"`
	Details   datatypes.JSON `gorm:"type:jsonb"`

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	User    *User   `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:SET NULL" json:"-"`
}
