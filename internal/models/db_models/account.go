package db_models

const (
	RoleTourist = "tourist"
	RoleGuide   = "guide"
	RoleAdmin   = "admin"
)

type Account struct {
	BaseModel
	Name         string
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string
	Role         string `gorm:"size:20;default:tourist"`
}
