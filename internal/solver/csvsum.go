package solver

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var absoluteCSVPattern = regexp.MustCompile(`(?i)https?://[^\s"'<>]+\.csv`)

// missingValues are cell contents read as "no value" rather than as text.
var missingValues = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"-nan": true,
	"null": true,
	"none": true,
	"#n/a": true,
}

// FindCSVURL locates the CSV resource referenced by a quiz page's HTML.
// An href ending in ".csv" (resolved against pageURL) wins; otherwise the first
// absolute URL in the markup ending in ".csv" is used.
func FindCSVURL(html, pageURL string) (string, bool) {
	if href, ok := findCSVHref(html); ok {
		if resolved, ok := resolveAgainst(pageURL, href); ok {
			return resolved, true
		}
	}

	if m := absoluteCSVPattern.FindString(html); m != "" {
		return m, true
	}
	return "", false
}

func findCSVHref(html string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", false
	}

	var found string
	doc.Find("[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if strings.HasSuffix(strings.ToLower(href), ".csv") {
			found = href
			return false
		}
		return true
	})
	return found, found != ""
}

func resolveAgainst(base, ref string) (string, bool) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", false
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return "", false
	}
	resolved := baseURL.ResolveReference(refURL)
	if resolved.Scheme == "" || resolved.Host == "" {
		return "", false
	}
	return resolved.String(), true
}

// CSVSum is the outcome of aggregating one CSV column.
type CSVSum struct {
	Column string // Header of the aggregated column; empty when no column is numeric
	Rows   int    // Data rows read
	Total  int64  // Sum of values strictly greater than the cutoff, truncated toward zero
}

// SumAboveCutoff parses csvText (header row first), picks the first column whose
// non-missing cells are all numeric, and sums the values strictly greater than cutoff.
func SumAboveCutoff(csvText string, cutoff int) (*CSVSum, error) {
	header, rows, err := readCSV(csvText)
	if err != nil {
		return nil, err
	}

	col := firstNumericColumn(header, rows)
	if col < 0 {
		return &CSVSum{Rows: len(rows)}, nil
	}

	sum := &CSVSum{Column: strings.TrimSpace(header[col]), Rows: len(rows)}
	limit := float64(cutoff)

	// Integers are summed exactly; a fractional cell or an int64 overflow switches to float arithmetic
	var intTotal int64
	var floatTotal float64
	useFloat := false
	for _, row := range rows {
		cell, ok := cellValue(row, col)
		if !ok {
			continue
		}
		if !useFloat {
			if n, err := strconv.ParseInt(cell, 10, 64); err == nil {
				if n <= int64(cutoff) {
					continue
				}
				if !addOverflows(intTotal, n) {
					intTotal += n
					continue
				}
				useFloat = true
				floatTotal = float64(intTotal) + float64(n)
				continue
			}
			useFloat = true
			floatTotal = float64(intTotal)
		}
		v, _ := strconv.ParseFloat(cell, 64)
		if v > limit {
			floatTotal += v
		}
	}

	if useFloat {
		sum.Total = truncateFloat(floatTotal)
	} else {
		sum.Total = intTotal
	}
	return sum, nil
}

func readCSV(csvText string) ([]string, [][]string, error) {
	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(csvText, "\ufeff")))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV rows: %w", err)
	}
	return header, rows, nil
}

func firstNumericColumn(header []string, rows [][]string) int {
	for col := range header {
		if isNumericColumn(rows, col) {
			return col
		}
	}
	return -1
}

func isNumericColumn(rows [][]string, col int) bool {
	seen := false
	for _, row := range rows {
		cell, ok := cellValue(row, col)
		if !ok {
			continue
		}
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			return false
		}
		seen = true
	}
	return seen
}

// cellValue returns the trimmed cell at col, or false when it is absent or missing.
func cellValue(row []string, col int) (string, bool) {
	if col >= len(row) {
		return "", false
	}
	cell := strings.TrimSpace(row[col])
	if missingValues[strings.ToLower(cell)] {
		return "", false
	}
	return cell, true
}

// truncateFloat truncates toward zero, saturating at the int64 range.
func truncateFloat(v float64) int64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt64:
		return math.MaxInt64
	case v <= math.MinInt64:
		return math.MinInt64
	}
	return int64(v)
}

func addOverflows(a, b int64) bool {
	return (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b)
}
