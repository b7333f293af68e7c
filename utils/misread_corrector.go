package utils

import (
	"regexp"
	"strings"
)

// Peer-to-peer transfer vocabulary. Presence of any marker classifies the
// text as a transfer receipt rather than an invoice or bill.
var transferContextRegex = regexp.MustCompile(`PAID\s+TO|DEBITED|CREDITED|TRANSACTION|UPI|TRANSFER|UTR`)

// OCR backends misread the rupee glyph as the digit "2" when it sits
// directly against a number, turning ₹1,750 into 21,750. RE2 has no
// lookahead, so the character following the amount is captured and
// re-emitted instead of asserted.
var (
	misreadGroupedRegex = regexp.MustCompile(`\b2([1-9],\d{3})([^,\d]|$)`)
	misreadBareRegex    = regexp.MustCompile(`\b2([1-9]\d{2,3})([^,\d]|$)`)
)

// IsTransferContext reports whether text carries peer-to-peer payment
// vocabulary.
func IsTransferContext(text string) bool {
	return transferContextRegex.MatchString(strings.ToUpper(text))
}

// CorrectMisreads repairs the rupee-symbol-read-as-"2" artifact. The rewrite
// applies only in transfer context: the same digit shapes are legitimate
// amounts on invoices and must not be altered there. Applying the
// correction to already-corrected text is a no-op.
func CorrectMisreads(text string) string {
	if !IsTransferContext(text) {
		return text
	}

	fixed := misreadGroupedRegex.ReplaceAllString(text, "$1$2")
	fixed = misreadBareRegex.ReplaceAllString(fixed, "$1$2")
	return fixed
}
