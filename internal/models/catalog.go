// internal/models/catalog.go
package models

import (
	"gorm.io/gorm"
)

const (
	MaxCategoryNameLength = 80
	MaxTagNameLength      = 60
)

type Category struct {
	BaseModel
	Name    string `json:"name" gorm:"size:80;not null"`
	NameKey string `json:"-" gorm:"size:80;not null;uniqueIndex"`
}

func (c *Category) BeforeSave(tx *gorm.DB) error {
	c.NameKey = NormalizeName(c.Name)
	return nil
}

type Tag struct {
	BaseModel
	Name    string `json:"name" gorm:"size:60;not null"`
	NameKey string `json:"-" gorm:"size:60;not null;uniqueIndex"`
}

func (t *Tag) BeforeSave(tx *gorm.DB) error {
	t.NameKey = NormalizeName(t.Name)
	return nil
}
