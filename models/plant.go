package models

// Plant is static catalog data: the healthy moisture band for a species.
// MoistureLowRange <= MoistureHighRange is enforced at creation.
type Plant struct {
	ID                uint    `json:"id" gorm:"primaryKey"`
	ScientificName    string  `json:"scientific_name" gorm:"uniqueIndex;not null"`
	FamiliarName      string  `json:"familiar_name"`
	MoistureLowRange  float64 `json:"moisture_low_range"`
	MoistureHighRange float64 `json:"moisture_high_range"`
	FunFact           string  `json:"fun_fact"`
}

// DisplayName prefers the familiar name for user-facing messages.
func (p Plant) DisplayName() string {
	if p.FamiliarName != "" {
		return p.FamiliarName
	}
	return p.ScientificName
}
