package dto

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// UploadResponse is returned for a processed receipt upload. When no amount
// could be extracted, NeedManualAmount is true and the caller is expected to
// follow up with a manual entry.
type UploadResponse struct {
	Status             string       `json:"status"`
	Message            string       `json:"message"`
	NeedManualAmount   bool         `json:"need_manual_amount"`
	Entry              ReceiptEntry `json:"entry"`
	ExtractedAmount    *float64     `json:"extracted_amount,omitempty"`
	AlternativeAmounts []float64    `json:"alternative_amounts,omitempty"`
	OCRTextSample      string       `json:"ocr_text_sample,omitempty"`
}

// SummaryResponse aggregates today's and this month's spending.
type SummaryResponse struct {
	Date        string         `json:"date"`
	TotalToday  float64        `json:"total_today"`
	TotalMonth  float64        `json:"total_month"`
	HealthScore int            `json:"health_score"`
	Todays      []ReceiptEntry `json:"todays"`
}

// PredictionResponse is the aggregate forecast over all recorded amounts.
type PredictionResponse struct {
	PredictedAnnualExpense float64 `json:"predicted_annual_expense"`
	PredictedAnnualSavings float64 `json:"predicted_annual_savings"`
	DistressProbability    float64 `json:"distress_probability"`
}

// InsightsResponse carries a rule-based spending insight message.
type InsightsResponse struct {
	Insights string `json:"insights"`
}

// EntriesResponse lists stored entries with the latest one and a category
// breakdown, mirroring the result view.
type EntriesResponse struct {
	Latest    *ReceiptEntry      `json:"latest,omitempty"`
	Breakdown map[string]float64 `json:"breakdown"`
	Entries   []ReceiptEntry     `json:"entries"`
}
