package models

import "gorm.io/gorm"

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

type User struct {
	gorm.Model

	Username     string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"` // stored lowercase
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"not null;default:User"`

	// Relationships
	CreatedProjects  []Project `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	AssignedProjects []Project `gorm:"foreignKey:AssignedToID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	ReportedBugs     []Bug     `gorm:"foreignKey:ReportedByID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	AssignedBugs     []Bug     `gorm:"foreignKey:AssignedToID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Comments         []Comment `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
