package entity

// BusinessRules is the single free-text block of user-authored decision
// criteria folded into the analysis system prompt. One slot, no versioning.
type BusinessRules struct {
	Content string
}

// DefaultBusinessRules seeds the rules slot when the store has none yet.
const DefaultBusinessRules = "1. Verificar requisitos de solvencia técnica: ¿Se exigen certificaciones específicas (ISO 9001, 14001, ENS, etc)?\n2. Si piden certificaciones obligatorias que no poseemos, marcar para descartar."
