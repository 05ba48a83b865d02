package models

type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	Activities []Activity `gorm:"many2many:activity_tags" json:"-"`
}
