package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTransferContext(t *testing.T) {
	assert.True(t, IsTransferContext("Paid to Ramesh Kumar"))
	assert.True(t, IsTransferContext("amount debited from a/c"))
	assert.True(t, IsTransferContext("UPI Ref No 1234"))
	assert.False(t, IsTransferContext("Invoice Total: 21,750"))
	assert.False(t, IsTransferContext("Grocery Mart bill amount 500"))
}

func TestCorrectMisreadsInTransferContext(t *testing.T) {
	assert.Equal(t, "Paid to X 1,750", CorrectMisreads("Paid to X 21,750"))
	assert.Equal(t, "Debited from account 1750", CorrectMisreads("Debited from account 21750"))
}

func TestCorrectMisreadsLeavesInvoicesAlone(t *testing.T) {
	text := "Invoice Total: 21,750"
	assert.Equal(t, text, CorrectMisreads(text))
}

func TestCorrectMisreadsIdempotent(t *testing.T) {
	texts := []string{
		"Paid to X 21,750",
		"Debited 21750",
		"Paid to DIGITAL DREAMS 21,750 Debited Kishore 21,750",
		"Invoice Total: 21,750",
		"no numbers here",
		"",
	}
	for _, text := range texts {
		once := CorrectMisreads(text)
		assert.Equal(t, once, CorrectMisreads(once), "not idempotent for %q", text)
	}
}

func TestCorrectMisreadsSkipsLongerNumbers(t *testing.T) {
	// A further digit or group means the leading 2 is part of a real amount.
	text := "Paid to X 21,750,000"
	assert.Equal(t, text, CorrectMisreads(text))

	text = "Debited 217509"
	assert.Equal(t, text, CorrectMisreads(text))
}

func TestCorrectMisreadsRepairsAllOccurrences(t *testing.T) {
	got := CorrectMisreads("Paid to DIGITAL DREAMS 21,750 Debited Kishore 21,750")
	assert.Equal(t, "Paid to DIGITAL DREAMS 1,750 Debited Kishore 1,750", got)
}
