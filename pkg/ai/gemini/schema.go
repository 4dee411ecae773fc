package gemini

import "google.golang.org/genai"

// analysisSchema constrains the model to the AnalysisResult shape. The
// service is configured with a fixed structured-output schema so the response
// can be unmarshaled directly into the entity.
func analysisSchema() *genai.Schema {
	str := &genai.Schema{Type: genai.TypeString}
	num := &genai.Schema{Type: genai.TypeNumber}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"decision": {
				Type: genai.TypeString,
				Enum: []string{"KEEP", "DISCARD", "REVIEW"},
			},
			"summaryReasoning": str,
			"economic": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"budget": str, "model": str, "basis": str,
				},
			},
			"scope": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"objective":    str,
					"deliverables": {Type: genai.TypeArray, Items: str},
				},
			},
			"resources": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"duration": str, "team": str, "dedication": str,
				},
			},
			"solvency": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"certifications": str, "specificSolvency": str, "penalties": str,
				},
			},
			"strategy": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"valuationCriteria": str, "angle": str,
				},
			},
			"scoring": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"priceWeight":   num,
					"formulaWeight": num,
					"valueWeight":   num,
					"details":       str,
					"subCriteria": {
						Type: genai.TypeArray,
						Items: &genai.Schema{
							Type: genai.TypeObject,
							Properties: map[string]*genai.Schema{
								"label":  str,
								"weight": num,
								"category": {
									Type: genai.TypeString,
									Enum: []string{"PRICE", "FORMULA", "VALUE"},
								},
							},
						},
					},
				},
			},
			"registrationChecklist": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"task":        str,
						"description": str,
						"completed":   {Type: genai.TypeBoolean},
					},
				},
			},
		},
		Required: []string{
			"decision", "summaryReasoning", "economic", "scope", "resources",
			"solvency", "strategy", "scoring", "registrationChecklist",
		},
	}
}

func metadataSchema() *genai.Schema {
	str := &genai.Schema{Type: genai.TypeString}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":            str,
			"budget":          str,
			"scoringSystem":   str,
			"expedientNumber": str,
			"deadline":        str,
			"tenderPageUrl":   str,
			"adminUrl":        str,
			"techUrl":         str,
			"allLinks":        {Type: genai.TypeArray, Items: str},
		},
		Required: []string{"name"},
	}
}
