package db_models

// SchemaPatchRun is one step outcome of a schema patch run.
type SchemaPatchRun struct {
	BaseModel
	Patch   string `gorm:"index"`
	Target  string
	Action  string
	Success bool
	Error   string
}

// All lists every model created by AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&City{},
		&Attraction{},
		&Restaurant{},
		&Activity{},
		&Guide{},
		&CityGuide{},
		&Booking{},
		&Review{},
		&MediaItem{},
		&Account{},
		&SchemaPatchRun{},
	}
}
