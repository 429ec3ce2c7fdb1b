package models

import "gorm.io/gorm"

type Project struct {
	gorm.Model

	Name         string `gorm:"not null"`
	Description  string
	CreatedByID  *uint `gorm:"index"` // required at create; nulled if the user is removed
	AssignedToID *uint

	// Relationships
	CreatedBy  *User      `gorm:"foreignKey:CreatedByID"`
	AssignedTo *User      `gorm:"foreignKey:AssignedToID"`
	Bugs       []Bug      `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Activities []Activity `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

// OwnedBy reports whether userID is the recorded creator of the project.
func (p *Project) OwnedBy(userID uint) bool {
	return p.CreatedByID != nil && *p.CreatedByID == userID
}
