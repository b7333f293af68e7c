package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAmountsNoDigits(t *testing.T) {
	assert.Empty(t, ExtractAmounts(""))
	assert.Empty(t, ExtractAmounts("thank you for shopping with us"))
}

func TestExtractAmountsTierPrecedence(t *testing.T) {
	// A keyword match must win over a larger bare number elsewhere.
	amounts := ExtractAmounts("Total: 500 ref 9,999")
	assert.Equal(t, []float64{500}, amounts)
}

func TestExtractAmountsKeywordWeights(t *testing.T) {
	// TOTAL (100) outranks PAID (80) regardless of magnitude.
	amounts := ExtractAmounts("Paid 300 Total 200")
	assert.Equal(t, []float64{200, 300}, amounts)
}

func TestExtractAmountsTieBreakPrefersLarger(t *testing.T) {
	// PAID and RECEIVED share a weight; the larger amount wins the tie.
	amounts := ExtractAmounts("Paid 300 Received 500")
	assert.Equal(t, []float64{500, 300}, amounts)
}

func TestExtractAmountsTransferKeywords(t *testing.T) {
	amounts := ExtractAmounts("Debited Kishore 1,750")
	assert.Equal(t, []float64{1750}, amounts)
}

func TestExtractAmountsCurrencyTier(t *testing.T) {
	amounts := ExtractAmounts("₹ 1,750 lunch at cafe")
	assert.Equal(t, []float64{1750}, amounts)
}

func TestExtractAmountsCurrencyAttached(t *testing.T) {
	// The attached form matches several currency patterns; all agree on the
	// value and the resolved amount is unambiguous.
	amounts := ExtractAmounts("snacks ₹450")
	assert.NotEmpty(t, amounts)
	for _, amount := range amounts {
		assert.Equal(t, 450.0, amount)
	}
}

func TestExtractAmountsEuropeanDecimal(t *testing.T) {
	amounts := ExtractAmounts("₹1.234,56")
	assert.Equal(t, []float64{1234.56}, amounts)
}

func TestExtractAmountsCurrencyFloor(t *testing.T) {
	// Currency-prefixed values under 10 are page/phone-number class noise.
	assert.Empty(t, ExtractAmounts("Rs. 5"))
}

func TestExtractAmountsPlainTier(t *testing.T) {
	amounts := ExtractAmounts("ref 9,999 and 650.25")
	assert.Equal(t, []float64{9999, 650.25}, amounts)
}

func TestExtractAmountsPlainTierFloor(t *testing.T) {
	assert.Empty(t, ExtractAmounts("qty 49 pcs"))
}

func TestExtractAmountsBounds(t *testing.T) {
	assert.Empty(t, ExtractAmounts("Total: 0.5"))
	assert.Empty(t, ExtractAmounts("Total: 20,000,000"))
}

func TestExtractAmountsTopFiveCap(t *testing.T) {
	amounts := ExtractAmounts("Paid 100 Paid 110 Paid 120 Paid 130 Paid 140 Paid 150 Paid 160")
	assert.Equal(t, []float64{160, 150, 140, 130, 120}, amounts)
}

func TestCorrectedTransferReceiptEndToEnd(t *testing.T) {
	text := "Paid to DIGITAL DREAMS 21,750 Debited Kishore 21,750"

	corrected := CorrectMisreads(text)
	assert.Equal(t, 2, strings.Count(corrected, "1,750"))
	assert.NotContains(t, corrected, "21,750")

	amounts := ExtractAmounts(corrected)
	assert.NotEmpty(t, amounts)
	assert.Equal(t, 1750.0, amounts[0])
}
