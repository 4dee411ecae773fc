package entity

// TenderStatus is the lifecycle state of a tender.
// PENDING is implicit on creation; IN_PROGRESS, IN_DOUBT and REJECTED are set
// as a side effect of an analysis decision; ARCHIVED is terminal and only ever
// set by an explicit user override.
type TenderStatus string

const (
	StatusPending    TenderStatus = "PENDING"
	StatusInProgress TenderStatus = "IN_PROGRESS"
	StatusInDoubt    TenderStatus = "IN_DOUBT"
	StatusRejected   TenderStatus = "REJECTED"
	StatusArchived   TenderStatus = "ARCHIVED"
)

// AnalysisDecision is the categorical go/no-go recommendation returned by the
// AI analysis.
type AnalysisDecision string

const (
	DecisionKeep    AnalysisDecision = "KEEP"
	DecisionDiscard AnalysisDecision = "DISCARD"
	DecisionReview  AnalysisDecision = "REVIEW"
)

// AllStatuses lists every valid lifecycle state, board order first.
var AllStatuses = []TenderStatus{
	StatusPending,
	StatusInDoubt,
	StatusInProgress,
	StatusRejected,
	StatusArchived,
}

func (s TenderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusInDoubt, StatusRejected, StatusArchived:
		return true
	}
	return false
}

// Label returns the Spanish display label shown on the board and archive.
func (s TenderStatus) Label() string {
	switch s {
	case StatusInProgress:
		return "EN TRAMITE"
	case StatusInDoubt:
		return "EN DUDA"
	case StatusRejected:
		return "DESCARTADO"
	case StatusArchived:
		return "ARCHIVADO"
	default:
		return "PENDIENTE"
	}
}

// StatusForDecision maps an analysis decision onto the resulting lifecycle
// state. Unrecognized or missing decisions fall back to PENDING rather than
// failing the analysis.
func StatusForDecision(d AnalysisDecision) TenderStatus {
	switch d {
	case DecisionKeep:
		return StatusInProgress
	case DecisionDiscard:
		return StatusRejected
	case DecisionReview:
		return StatusInDoubt
	default:
		return StatusPending
	}
}
