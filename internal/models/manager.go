package models

import "strings"

// Permissions are the actions a manager is allowed in the frontend.
type Permissions struct {
	PayOnlyShopMaintenance bool `json:"payOnlyShopMaintenance" example:"false"`
	ChangeAllAmounts       bool `json:"changeAllAmounts" example:"false"`
	PayAllAmounts          bool `json:"payAllAmounts" example:"true"`
	SalariesDistribution   bool `json:"salariesDistribution" example:"false"`
	LumpSumAmounts         bool `json:"lumpSumAmounts" example:"false"`
	EditRole               bool `json:"editRole" example:"true"`
}

// Manager is a staff account with restricted access. Managers log in with
// their email address.
type Manager struct {
	DefaultModel
	Email        string `json:"email" gorm:"uniqueIndex;not null" example:"front.desk@example.com"`
	FullName     string `json:"fullName" example:"Sana Iqbal"`
	Role         string `json:"role" example:"manager"`
	PasswordHash string `json:"-"`
	Permissions
}

// NormalizeEmail returns the form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
