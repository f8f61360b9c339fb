// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package qa turns raw OCR text into question/answer records.
//
// The grammar has three tokens: a question number (a digit run), a
// parenthetical holding the question, and an answer marker such as "b)".
// A record is
//
//	<number> [space] <parenthetical> <answer text> <space> <marker>
//
// where the answer text is everything up to the first marker and may be
// empty. Text that does not fit the grammar is dropped.
package qa

import (
	"fmt"
	"strings"

	"github.com/pdiddy/quizdoc/pkg/types"
)

// Parse scans text for records and returns them in source order.
// Numbers are kept as written; nothing is renumbered or deduplicated.
func Parse(text string) []types.QARecord {
	var records []types.QARecord

	i := 0
	for i < len(text) {
		num, question, end, ok := scanQuestion(text, i)
		if !ok {
			i++
			continue
		}

		answer, marker, next, found := scanAnswer(text, end)
		if !found {
			// A new question started (or the text ended) before any marker.
			i = next
			continue
		}

		records = append(records, types.QARecord{
			Number:   num,
			Question: question,
			Answer:   answer,
			Marker:   marker,
		})
		i = next
	}

	return records
}

// scanQuestion reads a number and parenthetical starting at byte offset i.
// It returns the number, the trimmed question, and the offset just past the
// closing parenthesis.
func scanQuestion(text string, i int) (num, question string, end int, ok bool) {
	if i > 0 && isDigit(text[i-1]) {
		return "", "", 0, false
	}
	n := scanNumber(text[i:])
	if n == 0 {
		return "", "", 0, false
	}
	j := i + n
	j += scanSpace(text[j:])

	p := scanParenthetical(text[j:])
	if p == 0 {
		return "", "", 0, false
	}
	return text[i : i+n], strings.TrimSpace(text[j+1 : j+p-1]), j + p, true
}

// scanAnswer looks for the first marker after offset start. The marker must
// be preceded by whitespace. If another question begins first, found is false
// and next points at that question so the caller can resume there.
func scanAnswer(text string, start int) (answer, marker string, next int, found bool) {
	for m := start; m < len(text); m++ {
		if _, _, _, ok := scanQuestion(text, m); ok {
			return "", "", m, false
		}
		if m > start && spaceBefore(text, m) {
			if k := scanMarker(text[m:]); k > 0 {
				return strings.TrimSpace(text[start:m]), text[m : m+k], m + k, true
			}
		}
	}
	return "", "", len(text), false
}

// Format renders records as a block: the question line ending in "?", a
// blank line, the marker with its answer text, and a blank line.
func Format(records []types.QARecord) string {
	var b strings.Builder
	for _, r := range records {
		fmt.Fprintf(&b, "%s. %s?\n\n", r.Number, r.Question)
		b.WriteString(strings.TrimSpace(r.Marker + " " + r.Answer))
		b.WriteString(" \n\n")
	}
	return b.String()
}

// Extract parses text and formats the records in one step. Text with no
// records yields an empty block.
func Extract(text string) (string, []types.QARecord) {
	records := Parse(text)
	return Format(records), records
}
