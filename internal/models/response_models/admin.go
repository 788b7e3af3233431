package response_models

type PatchInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type PatchStep struct {
	Patch  string `json:"patch"`
	Target string `json:"target"`
	Action string `json:"action"`
	Detail string `json:"detail,omitempty"`
	Error  string `json:"error,omitempty"`
}

type PatchReport struct {
	Success bool        `json:"success"`
	Steps   []PatchStep `json:"steps"`
}

type LinkReport struct {
	Table   string `json:"table"`
	Scanned int    `json:"scanned"`
	Updated int    `json:"updated"`
	Skipped int    `json:"skipped"`
	Failed  int    `json:"failed"`
	Error   string `json:"error,omitempty"`
}

type CategoryMigration struct {
	Category    string `json:"category"`
	SourceTable string `json:"source_table"`
	Found       bool   `json:"found"`
	Copied      int    `json:"copied"`
	Skipped     int    `json:"skipped"`
	Failed      int    `json:"failed"`
}

type MigrationReport struct {
	CitySlug   string              `json:"city_slug"`
	Categories []CategoryMigration `json:"categories"`
}

type EnrichReport struct {
	Table   string `json:"table"`
	Scanned int    `json:"scanned"`
	Updated int    `json:"updated"`
	Failed  int    `json:"failed"`
}
