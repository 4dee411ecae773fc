package entity

// AnalysisResult is the structured output of one AI analysis run. It is
// attached 1:1 to a tender and wholly replaced by a re-analysis.
type AnalysisResult struct {
	Decision         AnalysisDecision `json:"decision"`
	SummaryReasoning string           `json:"summaryReasoning"`

	Economic  AnalysisEconomic  `json:"economic"`
	Scope     AnalysisScope     `json:"scope"`
	Resources AnalysisResources `json:"resources"`
	Solvency  AnalysisSolvency  `json:"solvency"`
	Strategy  AnalysisStrategy  `json:"strategy"`
	Scoring   AnalysisScoring   `json:"scoring"`

	RegistrationChecklist []RegistrationTask `json:"registrationChecklist"`
}

type AnalysisEconomic struct {
	Budget string `json:"budget"`
	Model  string `json:"model"`
	Basis  string `json:"basis"`
}

type AnalysisScope struct {
	Objective    string   `json:"objective"`
	Deliverables []string `json:"deliverables"`
}

type AnalysisResources struct {
	Duration   string `json:"duration"`
	Team       string `json:"team"`
	Dedication string `json:"dedication"`
}

type AnalysisSolvency struct {
	Certifications   string `json:"certifications"`
	SpecificSolvency string `json:"specificSolvency"`
	Penalties        string `json:"penalties"`
}

type AnalysisStrategy struct {
	ValuationCriteria string `json:"valuationCriteria"`
	Angle             string `json:"angle"`
}

// AnalysisScoring is the published award-criteria weighting: three weighted
// categories each conceptually summing to 100, plus itemized sub-criteria.
type AnalysisScoring struct {
	PriceWeight   float64               `json:"priceWeight"`
	FormulaWeight float64               `json:"formulaWeight"`
	ValueWeight   float64               `json:"valueWeight"`
	Details       string                `json:"details"`
	SubCriteria   []ScoringSubCriterion `json:"subCriteria"`
}

type ScoringSubCriterion struct {
	Label    string  `json:"label"`
	Weight   float64 `json:"weight"`
	Category string  `json:"category"` // PRICE | FORMULA | VALUE
}

// RegistrationTask is one item of the submission checklist the analysis
// produces alongside the go/no-go decision.
type RegistrationTask struct {
	Task        string `json:"task"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}
