package models

import "gorm.io/gorm"

const (
	BugStatusOpen       = "Open"
	BugStatusInProgress = "In Progress"
	BugStatusResolved   = "Resolved"
	BugStatusClosed     = "Closed"
)

const (
	BugPriorityLow      = "Low"
	BugPriorityMedium   = "Medium"
	BugPriorityHigh     = "High"
	BugPriorityCritical = "Critical"
)

// BugStatuses and BugPriorities are the closed sets accepted by the
// validators; anything else is rejected before it reaches the store.
var (
	BugStatuses   = []string{BugStatusOpen, BugStatusInProgress, BugStatusResolved, BugStatusClosed}
	BugPriorities = []string{BugPriorityLow, BugPriorityMedium, BugPriorityHigh, BugPriorityCritical}
)

type Bug struct {
	gorm.Model

	Title        string `gorm:"not null"`
	Description  string
	Status       string `gorm:"not null;default:Open"`
	Priority     string `gorm:"not null;default:Medium"`
	ProjectID    uint   `gorm:"not null;index"`
	ReportedByID *uint
	AssignedToID *uint

	// Relationships
	Project    Project   `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	ReportedBy *User     `gorm:"foreignKey:ReportedByID"`
	AssignedTo *User     `gorm:"foreignKey:AssignedToID"`
	Comments   []Comment `gorm:"foreignKey:BugID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

// ReportedOrAssignedTo reports whether userID is the bug's reporter or its
// current assignee.
func (b *Bug) ReportedOrAssignedTo(userID uint) bool {
	if b.ReportedByID != nil && *b.ReportedByID == userID {
		return true
	}
	return b.AssignedToID != nil && *b.AssignedToID == userID
}
