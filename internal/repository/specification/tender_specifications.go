package specification

import (
	"strings"

	"gorm.io/gorm"
)

// ByStatus filters tenders by lifecycle state.
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// NameContains is the archive view's case-insensitive title filter.
type NameContains struct {
	Fragment string
}

func (s NameContains) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("lower(name) LIKE ?", "%"+strings.ToLower(s.Fragment)+"%")
}

// ExpedientContains is the archive view's case-insensitive expedient filter.
type ExpedientContains struct {
	Fragment string
}

func (s ExpedientContains) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("lower(expedient_number) LIKE ?", "%"+strings.ToLower(s.Fragment)+"%")
}

// ByNormalizedIdentity matches the uniqueness invariant: the trimmed,
// case-insensitive (expedient number, name) pair.
type ByNormalizedIdentity struct {
	ExpedientNumber string
	Name            string
}

func (s ByNormalizedIdentity) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(
		"lower(trim(expedient_number)) = ? AND lower(trim(name)) = ?",
		strings.ToLower(strings.TrimSpace(s.ExpedientNumber)),
		strings.ToLower(strings.TrimSpace(s.Name)),
	)
}
