package models

// Admin is a user allowed to use the API.
type Admin struct {
	DefaultModel
	Username     string `json:"username" gorm:"uniqueIndex;not null" example:"manager"`
	PasswordHash string `json:"-"`
}
