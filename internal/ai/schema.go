package ai

import "google.golang.org/genai"

// buildAnalysisConfig creates the generation config for an analysis
// request: structured JSON output matching the report shape plus the
// web search tool for grounded company intelligence.
func buildAnalysisConfig(temperature *float32) *genai.GenerateContentConfig {
	stringArray := &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}

	phaseSchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title": {Type: genai.TypeString},
			"tasks": stringArray,
		},
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"companyIntelligence": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":     {Type: genai.TypeString},
						"earnings": {Type: genai.TypeString},
						"growth":   {Type: genai.TypeString},
						"rating":   {Type: genai.TypeString},
						"benefits": {Type: genai.TypeString},
						"salaryRanges": {
							Type: genai.TypeObject,
							Properties: map[string]*genai.Schema{
								"junior": {Type: genai.TypeString},
								"mid":    {Type: genai.TypeString},
								"senior": {Type: genai.TypeString},
							},
						},
					},
				},
				"commuteAnalysis": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"from":                   {Type: genai.TypeString},
						"to":                     {Type: genai.TypeString},
						"distanceMiles":          {Type: genai.TypeNumber},
						"roundTripDistanceMiles": {Type: genai.TypeNumber},
						"time":                   {Type: genai.TypeString},
						"roundTripTime":          {Type: genai.TypeString},
						"monthlyGas":             {Type: genai.TypeNumber},
						"monthlyTolls":           {Type: genai.TypeNumber},
						"annualCost":             {Type: genai.TypeNumber},
						"gasPricePerLiter":       {Type: genai.TypeNumber},
						"tollRateBasis":          {Type: genai.TypeString},
					},
				},
				"costOfLiving": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"location":     {Type: genai.TypeString},
						"housing":      {Type: genai.TypeNumber},
						"utilities":    {Type: genai.TypeNumber},
						"meals":        {Type: genai.TypeNumber},
						"healthcare":   {Type: genai.TypeNumber},
						"misc":         {Type: genai.TypeNumber},
						"totalMonthly": {Type: genai.TypeNumber},
					},
				},
				"recommendations": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"minTargetSalary":       {Type: genai.TypeNumber},
						"idealSalary":           {Type: genai.TypeNumber},
						"idealW2":               {Type: genai.TypeNumber},
						"ideal1099":             {Type: genai.TypeNumber},
						"ideal480":              {Type: genai.TypeNumber},
						"qualityOfLifeScore":    {Type: genai.TypeNumber},
						"negotiationStrategies": stringArray,
						"candidateFitScore": {
							Type: genai.TypeObject,
							Properties: map[string]*genai.Schema{
								"score":   {Type: genai.TypeNumber},
								"summary": {Type: genai.TypeString},
							},
						},
					},
				},
				"salaryBreakdown": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"yearly":   {Type: genai.TypeNumber},
						"monthly":  {Type: genai.TypeNumber},
						"biweekly": {Type: genai.TypeNumber},
						"weekly":   {Type: genai.TypeNumber},
						"hourly":   {Type: genai.TypeNumber},
					},
				},
				"salaryBenchmarks": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"role":   {Type: genai.TypeString},
							"junior": {Type: genai.TypeString},
							"mid":    {Type: genai.TypeString},
							"senior": {Type: genai.TypeString},
						},
					},
				},
				"compensationComparison": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"w2Salary":             {Type: genai.TypeNumber},
						"equivalent1099Salary": {Type: genai.TypeNumber},
						"equivalent480Salary":  {Type: genai.TypeNumber},
						"explanation1099": {
							Type: genai.TypeObject,
							Properties: map[string]*genai.Schema{
								"selfEmploymentTax": {Type: genai.TypeString},
								"benefitsCost":      {Type: genai.TypeString},
								"totalDifference":   {Type: genai.TypeString},
							},
						},
						"explanation480": {
							Type: genai.TypeObject,
							Properties: map[string]*genai.Schema{
								"taxWithholding":  {Type: genai.TypeString},
								"benefitsCost":    {Type: genai.TypeString},
								"totalDifference": {Type: genai.TypeString},
							},
						},
					},
				},
				"onboardingPlan": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"days30": phaseSchema,
						"days60": phaseSchema,
						"days90": phaseSchema,
					},
				},
				"cvEvaluation": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"overallMatch": {Type: genai.TypeNumber},
						"strengths":    stringArray,
						"weaknesses":   stringArray,
						"skillGaps": {
							Type: genai.TypeArray,
							Items: &genai.Schema{
								Type: genai.TypeObject,
								Properties: map[string]*genai.Schema{
									"skill":         {Type: genai.TypeString},
									"priority":      {Type: genai.TypeString},
									"currentLevel":  {Type: genai.TypeString},
									"requiredLevel": {Type: genai.TypeString},
									"learningPath":  stringArray,
								},
							},
						},
						"learningResources": {
							Type: genai.TypeArray,
							Items: &genai.Schema{
								Type: genai.TypeObject,
								Properties: map[string]*genai.Schema{
									"title":    {Type: genai.TypeString},
									"type":     {Type: genai.TypeString},
									"provider": {Type: genai.TypeString},
									"duration": {Type: genai.TypeString},
									"cost":     {Type: genai.TypeString},
									"url":      {Type: genai.TypeString},
								},
							},
						},
						"improvementPlan": stringArray,
						"timeline":        {Type: genai.TypeString},
					},
				},
			},
		},
	}

	// Apply temperature configuration if set
	if temperature != nil && *temperature > 0 {
		config.Temperature = temperature
	}

	return config
}
