package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tender is one public-procurement opportunity ("expediente").
// Document URLs point at object storage (or an external platform link once
// persisted); before persistence the binaries travel as upload payloads and
// never live on the entity.
type Tender struct {
	Id              uuid.UUID
	Name            string
	Budget          string // free text, currency embedded ("120.000 EUR")
	ScoringSystem   string
	ExpedientNumber string
	Deadline        string // free text, nominally YYYY-MM-DD
	TenderPageUrl   string

	SummaryUrl string
	AdminUrl   string // PCAP
	TechUrl    string // PPT

	Status     TenderStatus
	AiAnalysis *AnalysisResult

	CreatedAt time.Time
	UpdatedAt *time.Time
}

// IdentityKey normalizes the (expedient number, name) pair used for the
// collection-wide uniqueness check: trimmed and case-insensitive.
func IdentityKey(expedientNumber, name string) (string, string) {
	return strings.ToLower(strings.TrimSpace(expedientNumber)),
		strings.ToLower(strings.TrimSpace(name))
}

// SameIdentity reports whether the tender collides with the given pair under
// the normalized identity rule.
func (t *Tender) SameIdentity(expedientNumber, name string) bool {
	e1, n1 := IdentityKey(t.ExpedientNumber, t.Name)
	e2, n2 := IdentityKey(expedientNumber, name)
	return e1 == e2 && n1 == n2
}
