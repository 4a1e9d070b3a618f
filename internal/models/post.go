package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a single blog entry. A post always has an author; the
// group is optional and survives group deletion (set to null).
type Post struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Text      string `gorm:"type:text;not null" json:"text"`
	ImagePath string `json:"image_path,omitempty"`
	AuthorID  uint   `gorm:"not null;index" json:"author_id"`
	Author    User   `gorm:"foreignKey:AuthorID" json:"author"`
	GroupID   *uint  `gorm:"index" json:"group_id,omitempty"`
	Group     *Group `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL" json:"group,omitempty"`
	// CreatedAt is assigned on insert and never updated afterwards.
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM.
func (Post) TableName() string {
	return "posts"
}
