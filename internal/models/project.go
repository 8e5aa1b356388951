package models

import "time"

// Project is the top-level scheduling scope. All tasks, relationships and
// baselines hang off a project.
type Project struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null;index" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Industry    string    `gorm:"size:64" json:"industry"`
	Status      string    `gorm:"size:16;default:planning;index" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Tasks         []Task             `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
	Relationships []TaskRelationship `gorm:"foreignKey:ProjectID" json:"relationships,omitempty"`
	Baselines     []ProjectBaseline  `gorm:"foreignKey:ProjectID" json:"-"`
}
