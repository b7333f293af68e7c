package utils

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	maxCandidates = 5
	maxAmount     = 10000000
)

// amountCandidate is a transient scored match produced by one tier.
type amountCandidate struct {
	value float64
	score int
}

// extractionTier is one priority level of amount patterns. Tiers are tried
// in order and the first one to produce any candidate wins.
type extractionTier interface {
	tryExtract(text string) []amountCandidate
}

var extractionTiers = []extractionTier{
	priorityKeywordTier{},
	currencyPrefixTier{},
	plainNumberTier{},
}

// ExtractAmounts scans text for monetary amounts and returns up to five
// candidates in descending priority. An empty result means no tier matched
// and the caller should request manual entry; it is not an error.
func ExtractAmounts(text string) []float64 {
	if text == "" {
		return nil
	}

	upper := strings.ToUpper(text)
	for _, tier := range extractionTiers {
		if candidates := tier.tryExtract(upper); len(candidates) > 0 {
			return topValues(candidates)
		}
	}
	return nil
}

// topValues orders candidates by score, breaking ties toward the larger
// amount (receipts under-state line items more often than they over-state
// the total), and keeps the top five.
func topValues(candidates []amountCandidate) []float64 {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].value > candidates[j].value
	})

	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}
	values := make([]float64, 0, len(candidates))
	for _, c := range candidates {
		values = append(values, c.value)
	}
	return values
}

type weightedPattern struct {
	regex  *regexp.Regexp
	weight int
}

const amountGroup = `(\d+(?:[,\s]\d{3})*(?:\.\d{1,2})?)`

// priorityKeywordTier matches amounts adjacent to strong total/payable/paid
// vocabulary. Transfer keywords allow intervening words (payee names sit
// between "PAID TO" and the amount).
type priorityKeywordTier struct{}

var priorityPatterns = []weightedPattern{
	{regexp.MustCompile(`(?:TOTAL|GRAND\s*TOTAL|NET\s*TOTAL|AMOUNT\s*PAYABLE|BILL\s*AMOUNT|INVOICE\s*TOTAL)[\s:]*(?:RS\.?|₹|INR)?\s*` + amountGroup), 100},
	{regexp.MustCompile(`(?:PAID\s+TO|DEBITED|CREDITED|TRANSFERRED)[\s\w]*?(?:RS\.?|₹|INR)?\s*` + amountGroup), 95},
	{regexp.MustCompile(`(?:TO\s*PAY|PAYABLE|BALANCE|DUE|BALANCE\s*DUE)[\s:]*(?:RS\.?|₹|INR)?\s*` + amountGroup), 90},
	{regexp.MustCompile(`(?:PAID|PAYMENT|RECEIVED|AMOUNT\s*PAID)[\s:]*(?:RS\.?|₹|INR)?\s*` + amountGroup), 80},
}

func (priorityKeywordTier) tryExtract(text string) []amountCandidate {
	var candidates []amountCandidate
	for _, p := range priorityPatterns {
		for _, match := range p.regex.FindAllStringSubmatch(text, -1) {
			value, ok := parseAmount(match[1])
			if !ok || value < 1 || value > maxAmount {
				continue
			}
			candidates = append(candidates, amountCandidate{value: value, score: p.weight})
		}
	}
	return candidates
}

// currencyPrefixTier matches amounts directly preceded by a currency marker,
// independent of keyword context. The floor of 10 suppresses noise like page
// numbers and phone-number fragments.
type currencyPrefixTier struct{}

var currencyPatterns = []weightedPattern{
	{regexp.MustCompile(`₹\s*(\d{1,3}(?:[,\s]\d{3})*(?:\.\d{1,2})?)`), 70},
	{regexp.MustCompile(`₹\s*(\d+(?:\.\d{1,2})?)`), 65},
	{regexp.MustCompile(`RS\.?\s*(\d{1,3}(?:[,\s]\d{3})*(?:\.\d{1,2})?)`), 55},
	{regexp.MustCompile(`INR\s*(\d{1,3}(?:[,\s]\d{3})*(?:\.\d{1,2})?)`), 55},
	{regexp.MustCompile(`RS\.?\s*(\d+(?:\.\d{1,2})?)`), 45},
	// European grouping, e.g. ₹1.234,56
	{regexp.MustCompile(`₹\s*(\d{1,3}(?:\.\d{3})*,\d{2})`), 50},
	// Rupee glyph attached to the number with no space
	{regexp.MustCompile(`₹(\d{1,3}(?:,\d{3})*)`), 68},
	{regexp.MustCompile(`₹(\d+)`), 63},
}

func (currencyPrefixTier) tryExtract(text string) []amountCandidate {
	var candidates []amountCandidate
	for _, p := range currencyPatterns {
		for _, match := range p.regex.FindAllStringSubmatch(text, -1) {
			value, ok := parseCurrencyAmount(match[1])
			if !ok || value < 10 || value > maxAmount {
				continue
			}
			candidates = append(candidates, amountCandidate{value: value, score: p.weight})
		}
	}
	return candidates
}

// plainNumberTier matches formatted numbers with no currency context at all.
// Candidates are unscored, deduplicated, and ranked by magnitude alone; the
// floor of 50 keeps out quantities and dates.
type plainNumberTier struct{}

var plainPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,3}(?:,\d{3})+\.\d{2})`),
	regexp.MustCompile(`(\d{1,3}(?:,\d{3})+)`),
	regexp.MustCompile(`(\d{3,}\.\d{2})`),
}

func (plainNumberTier) tryExtract(text string) []amountCandidate {
	seen := make(map[float64]struct{})
	var candidates []amountCandidate
	for _, regex := range plainPatterns {
		for _, match := range regex.FindAllStringSubmatch(text, -1) {
			value, ok := parseAmount(match[1])
			if !ok || value < 50 || value > maxAmount {
				continue
			}
			if _, dup := seen[value]; dup {
				continue
			}
			seen[value] = struct{}{}
			candidates = append(candidates, amountCandidate{value: value})
		}
	}
	return candidates
}

var amountCleaner = strings.NewReplacer(",", "", " ", "")

// parseAmount coerces a matched token to a number; a false result means the
// match is skipped, never escalated.
func parseAmount(raw string) (float64, bool) {
	value, err := strconv.ParseFloat(amountCleaner.Replace(strings.TrimSpace(raw)), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// parseCurrencyAmount additionally understands European grouping where the
// comma is the decimal separator (1.234,56).
func parseCurrencyAmount(raw string) (float64, bool) {
	if strings.Count(raw, ",") == 1 && strings.Contains(raw, ".") {
		swapped := strings.ReplaceAll(raw, ".", "")
		swapped = strings.ReplaceAll(swapped, ",", ".")
		value, err := strconv.ParseFloat(strings.TrimSpace(swapped), 64)
		if err != nil {
			return 0, false
		}
		return value, true
	}
	return parseAmount(raw)
}
