package dto

// ForecastResult holds the forecast computed for a single resolved amount.
// Expense and savings are rounded to 2 decimal places, the distress
// probability to 3, matching what gets persisted and displayed.
type ForecastResult struct {
	PredictedAnnualExpense float64 `json:"predicted_annual_expense"`
	PredictedAnnualSavings float64 `json:"predicted_annual_savings"`
	DistressProbability    float64 `json:"distress_probability"`
	Advice                 string  `json:"advice"`
}

// EntrySource identifies how an entry's amount was obtained.
type EntrySource string

const (
	SourceOCR    EntrySource = "ocr"
	SourceQR     EntrySource = "qr"
	SourceManual EntrySource = "manual"
)

// ReceiptEntry is one persisted expense record. Amount and Forecast are
// absent together when extraction found nothing and the entry is waiting
// for a manual amount.
type ReceiptEntry struct {
	Date               string          `json:"date"` // YYYY-MM-DD
	Filename           string          `json:"filename,omitempty"`
	Category           string          `json:"category,omitempty"`
	Source             EntrySource     `json:"source,omitempty"`
	Amount             *float64        `json:"amount,omitempty"`
	ExtractedAmount    *float64        `json:"extracted_amount,omitempty"`
	AllDetectedAmounts []float64       `json:"all_detected_amounts,omitempty"`
	OCRText            string          `json:"ocr_text,omitempty"`
	Forecast           *ForecastResult `json:"forecast,omitempty"`
}
