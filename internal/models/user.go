package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	Email string `gorm:"uniqueIndex;not null"`
	// Authentication is delegated to the identity provider; this hash is a
	// placeholder and is never checked locally.
	PasswordHash string `gorm:"not null"`
	FirstName    string `gorm:"not null"`
	LastName     string `gorm:"not null"`
	// FirebaseUID links this row to the provider account. Immutable after
	// creation.
	FirebaseUID string `gorm:"uniqueIndex;not null"`
	IsActive    bool   `gorm:"not null;default:true"`

	Todos []Todo `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
