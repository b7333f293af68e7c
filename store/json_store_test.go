package store

import (
	"path/filepath"
	"testing"

	"github.com/finsight/receipt-forecast/dto"
	"github.com/stretchr/testify/assert"
)

func TestJSONStoreAppendAndAll(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "data.json"))

	amount := 1750.0
	entry := dto.ReceiptEntry{
		Date:     "2025-11-02",
		Filename: "receipt.png",
		Source:   dto.SourceOCR,
		Amount:   &amount,
		Forecast: &dto.ForecastResult{
			PredictedAnnualExpense: 638750,
			DistressProbability:    1.0,
			Advice:                 "review spending",
		},
	}

	assert.NoError(t, store.Append(entry))
	assert.NoError(t, store.Append(dto.ReceiptEntry{Date: "2025-11-03", Source: dto.SourceManual}))

	entries, err := store.All()
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "receipt.png", entries[0].Filename)
	assert.Equal(t, 1750.0, *entries[0].Amount)
	assert.Equal(t, 638750.0, entries[0].Forecast.PredictedAnnualExpense)
	assert.Nil(t, entries[1].Amount)
}

func TestJSONStoreMissingFile(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "data.json"))

	entries, err := store.All()
	assert.NoError(t, err)
	assert.Empty(t, entries)
}
