package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"math"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"

	"github.com/finsight/receipt-forecast/client"
	"github.com/finsight/receipt-forecast/dto"
	"github.com/finsight/receipt-forecast/store"
	"github.com/finsight/receipt-forecast/utils"
)

// ErrNoData is returned by aggregate endpoints when nothing has an amount yet.
var ErrNoData = errors.New("no recorded amounts")

// minEmbeddedTextLength is the cutoff below which a PDF is treated as
// scanned and sent through image OCR instead.
const minEmbeddedTextLength = 20

// ReceiptService runs the full pipeline for a receipt: text acquisition,
// misread correction, tiered amount extraction, forecasting, persistence.
type ReceiptService struct {
	ocrClient    *client.TesseractClient
	pdfProcessor PDFProcessor
	forecast     *ForecastService
	store        *store.JSONStore
	uploadDir    string
}

func NewReceiptService(
	ocrClient *client.TesseractClient,
	pdfProcessor PDFProcessor,
	forecast *ForecastService,
	jsonStore *store.JSONStore,
	uploadDir string,
) *ReceiptService {
	return &ReceiptService{
		ocrClient:    ocrClient,
		pdfProcessor: pdfProcessor,
		forecast:     forecast,
		store:        jsonStore,
		uploadDir:    uploadDir,
	}
}

// ProcessUpload runs the pipeline for one uploaded receipt and persists the
// resulting entry. When no amount is found the entry is stored without a
// forecast and the response asks for manual entry; that path is a normal
// outcome, not a failure.
func (s *ReceiptService) ProcessUpload(fileHeader *multipart.FileHeader) (*dto.UploadResponse, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	filename := filepath.Base(fileHeader.Filename)
	s.saveUpload(filename, data)

	text, qrAmount := s.recognize(filename, data)
	corrected := utils.CorrectMisreads(text)
	amounts := utils.ExtractAmounts(corrected)
	if qrAmount != nil {
		amounts = prependAmount(amounts, *qrAmount)
	}
	log.Printf("Receipt %s: %d candidate amounts %v", filename, len(amounts), amounts)

	entry := dto.ReceiptEntry{
		Date:               time.Now().Format("2006-01-02"),
		Filename:           filename,
		Source:             dto.SourceOCR,
		AllDetectedAmounts: amounts,
		OCRText:            truncate(text, 500),
	}

	if len(amounts) == 0 {
		if err := s.store.Append(entry); err != nil {
			return nil, err
		}
		return &dto.UploadResponse{
			Status:           "ok",
			Message:          "uploaded",
			NeedManualAmount: true,
			Entry:            entry,
			OCRTextSample:    truncate(text, 300),
		}, nil
	}

	resolved := amounts[0]
	entry.Amount = &resolved
	entry.ExtractedAmount = &resolved
	if qrAmount != nil && *qrAmount == resolved {
		entry.Source = dto.SourceQR
	}

	forecast, err := s.forecast.Forecast(resolved)
	if err != nil {
		return nil, err
	}
	entry.Forecast = forecast

	if err := s.store.Append(entry); err != nil {
		return nil, err
	}

	var alternatives []float64
	if len(amounts) > 1 {
		alternatives = amounts[1:min(4, len(amounts))]
	}

	return &dto.UploadResponse{
		Status:             "ok",
		Message:            "uploaded",
		Entry:              entry,
		ExtractedAmount:    &resolved,
		AlternativeAmounts: alternatives,
		OCRTextSample:      truncate(text, 200),
	}, nil
}

// recognize produces the merged text blob for a receipt file, plus the UPI
// QR amount when the receipt carries a payment QR.
func (s *ReceiptService) recognize(filename string, data []byte) (string, *float64) {
	if strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return s.recognizePDF(filename, data)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		log.Printf("Failed to decode image %s: %v", filename, err)
		return "", nil
	}

	var qrAmount *float64
	if amount, ok := decodeQRAmount(img); ok {
		log.Printf("UPI QR amount found on %s: %.2f", filename, amount)
		qrAmount = &amount
	}
	return s.AcquireText(img), qrAmount
}

func (s *ReceiptService) recognizePDF(filename string, data []byte) (string, *float64) {
	text, err := s.pdfProcessor.ExtractText(data)
	if err != nil {
		log.Printf("PDF text extraction failed for %s: %v", filename, err)
	}
	if len(strings.TrimSpace(text)) >= minEmbeddedTextLength {
		return text, nil
	}

	// Scanned PDF: OCR the page images instead.
	images, err := s.pdfProcessor.ExtractImages(data)
	if err != nil || len(images) == 0 {
		log.Printf("Failed to extract images from PDF %s: %v", filename, err)
		return text, nil
	}

	var qrAmount *float64
	var segments []string
	for _, img := range images {
		if qrAmount == nil {
			if amount, ok := decodeQRAmount(img); ok {
				qrAmount = &amount
			}
		}
		if pageText := s.AcquireText(img); pageText != "" {
			segments = append(segments, pageText)
		}
	}
	return strings.Join(segments, " "), qrAmount
}

// AcquireText runs the five recognition passes over derived image variants
// and merges the segments. A missing backend or failed pass contributes
// nothing; an entirely empty result means "no amount found", never an error.
func (s *ReceiptService) AcquireText(img image.Image) string {
	if img == nil {
		return ""
	}

	var pooled []string
	for i, variant := range receiptVariants(img) {
		segments, err := s.ocrClient.Recognize(variant)
		if err != nil {
			log.Printf("Recognition pass %d failed: %v", i+1, err)
			continue
		}
		pooled = append(pooled, segments...)
	}
	return mergeSegments(pooled)
}

// mergeSegments deduplicates trimmed segments preserving first-seen order
// and joins them with single spaces.
func mergeSegments(segments []string) string {
	seen := make(map[string]struct{}, len(segments))
	unique := make([]string, 0, len(segments))
	for _, segment := range segments {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		if _, dup := seen[segment]; dup {
			continue
		}
		seen[segment] = struct{}{}
		unique = append(unique, segment)
	}
	return strings.Join(unique, " ")
}

// decodeQRAmount looks for a UPI payment QR on the receipt and reads the
// transaction amount from its upi:// URI.
func decodeQRAmount(img image.Image) (float64, bool) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return 0, false
	}

	result, err := qrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return 0, false
	}
	return parseUPIAmount(result.GetText())
}

// parseUPIAmount extracts the "am" parameter from a upi://pay URI.
func parseUPIAmount(qrText string) (float64, bool) {
	if !strings.HasPrefix(strings.ToLower(qrText), "upi://") {
		return 0, false
	}

	uri, err := url.Parse(qrText)
	if err != nil {
		return 0, false
	}

	amount, err := strconv.ParseFloat(uri.Query().Get("am"), 64)
	if err != nil || amount <= 0 {
		return 0, false
	}
	return amount, true
}

// prependAmount puts the QR amount at the head of the candidate list,
// dropping a duplicate occurrence further down and keeping at most five.
func prependAmount(amounts []float64, amount float64) []float64 {
	merged := []float64{amount}
	for _, a := range amounts {
		if a != amount {
			merged = append(merged, a)
		}
	}
	if len(merged) > 5 {
		merged = merged[:5]
	}
	return merged
}

// ManualEntry records a user-supplied amount and forecasts from it.
func (s *ReceiptService) ManualEntry(req *dto.ManualEntryRequest) (*dto.ReceiptEntry, error) {
	category := req.Category
	if category == "" {
		category = "Misc"
	}
	date := req.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	amount := req.Amount
	entry := dto.ReceiptEntry{
		Date:     date,
		Category: category,
		Source:   dto.SourceManual,
		Amount:   &amount,
	}

	forecast, err := s.forecast.Forecast(amount)
	if err != nil {
		return nil, err
	}
	entry.Forecast = forecast

	if err := s.store.Append(entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Entries returns all stored entries with the latest one and a category
// breakdown.
func (s *ReceiptService) Entries() (*dto.EntriesResponse, error) {
	entries, err := s.store.All()
	if err != nil {
		return nil, err
	}

	response := &dto.EntriesResponse{
		Breakdown: categoryBreakdown(entries),
		Entries:   entries,
	}
	if len(entries) > 0 {
		response.Latest = &entries[len(entries)-1]
	}
	return response, nil
}

// Summary aggregates today's and this month's totals with a rough spending
// health score.
func (s *ReceiptService) Summary() (*dto.SummaryResponse, error) {
	entries, err := s.store.All()
	if err != nil {
		return nil, err
	}

	today := time.Now().Format("2006-01-02")
	todays := []dto.ReceiptEntry{}
	var totalToday, totalMonth float64
	for _, entry := range entries {
		amount := 0.0
		if entry.Amount != nil {
			amount = *entry.Amount
		}
		if entry.Date == today {
			totalToday += amount
			todays = append(todays, entry)
		}
		if len(entry.Date) >= 7 && entry.Date[:7] == today[:7] {
			totalMonth += amount
		}
	}

	health := 100 - int(math.Min(100, totalMonth/assumedAnnualIncome*100))
	if health < 0 {
		health = 0
	}

	return &dto.SummaryResponse{
		Date:        today,
		TotalToday:  totalToday,
		TotalMonth:  totalMonth,
		HealthScore: health,
		Todays:      todays,
	}, nil
}

// PredictAggregate forecasts from the average of all recorded amounts using
// the rule-based computation only.
func (s *ReceiptService) PredictAggregate() (*dto.PredictionResponse, error) {
	entries, err := s.store.All()
	if err != nil {
		return nil, err
	}

	var sum float64
	var count int
	for _, entry := range entries {
		if entry.Amount != nil {
			sum += *entry.Amount
			count++
		}
	}
	if count == 0 {
		return nil, ErrNoData
	}

	annual := sum / float64(count) * daysPerYear
	return &dto.PredictionResponse{
		PredictedAnnualExpense: annual,
		PredictedAnnualSavings: math.Max(0.0, assumedAnnualIncome-annual),
		DistressProbability:    math.Min(1.0, annual/assumedAnnualIncome),
	}, nil
}

// Insights reports the top spending category.
func (s *ReceiptService) Insights() (*dto.InsightsResponse, error) {
	entries, err := s.store.All()
	if err != nil {
		return nil, err
	}

	breakdown := categoryBreakdown(entries)
	topCategory, topTotal := "None", 0.0
	categories := make([]string, 0, len(breakdown))
	for category := range breakdown {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		if breakdown[category] > topTotal {
			topCategory, topTotal = category, breakdown[category]
		}
	}

	message := fmt.Sprintf("Top spending category: %s with total %.2f. Consider reducing this by 10%%.", topCategory, topTotal)
	return &dto.InsightsResponse{Insights: message}, nil
}

func categoryBreakdown(entries []dto.ReceiptEntry) map[string]float64 {
	breakdown := make(map[string]float64)
	for _, entry := range entries {
		category := entry.Category
		if category == "" {
			category = "Misc"
		}
		amount := 0.0
		if entry.Amount != nil {
			amount = *entry.Amount
		}
		breakdown[category] += amount
	}
	return breakdown
}

// saveUpload keeps the raw upload for later manual inspection; failure to
// save never blocks the pipeline.
func (s *ReceiptService) saveUpload(filename string, data []byte) {
	if s.uploadDir == "" {
		return
	}
	if err := os.WriteFile(filepath.Join(s.uploadDir, filename), data, 0644); err != nil {
		log.Printf("Failed to save upload %s: %v", filename, err)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
