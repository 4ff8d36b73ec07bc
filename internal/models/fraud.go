package models

// FraudLabels is the fixed candidate set submitted to the zero-shot classifier.
var FraudLabels = []string{"fraudulent", "not fraudulent"}

// FraudAssessment is the ranked classifier output for one claim. Labels and
// Scores have equal length with scores in descending order; the first entry is
// the prediction.
type FraudAssessment struct {
	ClaimID          int64     `json:"claim_id"`
	ClaimText        string    `json:"claim_text"`
	Labels           []string  `json:"labels"`
	Scores           []float64 `json:"scores"`
	PredictedLabel   string    `json:"predicted_label"`
	FraudProbability float64   `json:"fraud_probability"`
}
