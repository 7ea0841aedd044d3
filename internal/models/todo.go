package models

import "gorm.io/gorm"

type Todo struct {
	gorm.Model

	Title     string `gorm:"size:200;not null"`
	Completed bool   `gorm:"not null;default:false"`
	// Active is the soft-delete marker; inactive todos are invisible.
	Active bool `gorm:"not null;default:true"`
	UserID uint `gorm:"not null;index"`
}
