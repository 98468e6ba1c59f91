package tool

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const maxCategoryValues = 8

// CSVProfileTool parses a CSV file and returns a per-column profile:
// row counts, numeric min/max/mean, and value counts for categorical
// columns. Input is the path to the CSV file.
type CSVProfileTool struct {
	AllowedDir string
}

func (t *CSVProfileTool) Name() string { return "csv_profile" }

func (t *CSVProfileTool) Description() string {
	return "Profile a CSV file: column types, numeric min/max/mean, and category counts. Input: a file path."
}

func (t *CSVProfileTool) Invoke(_ context.Context, input string) (string, error) {
	path := strings.TrimSpace(input)
	if path == "" {
		return "", fmt.Errorf("csv_profile: a file path is required")
	}

	if t.AllowedDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(t.AllowedDir, path)
	}
	abs, err := checkPath(path, t.AllowedDir)
	if err != nil {
		return "", fmt.Errorf("csv_profile: %w", err)
	}

	f, err := os.Open(abs)
	if err != nil {
		return "", fmt.Errorf("csv_profile: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return "", fmt.Errorf("csv_profile: parse %s: %w", path, err)
	}
	if len(records) < 2 {
		return "", fmt.Errorf("csv_profile: %s has no data rows", path)
	}

	headers := records[0]
	rows := records[1:]

	var b strings.Builder
	fmt.Fprintf(&b, "rows: %d, columns: %d\n", len(rows), len(headers))
	for col, name := range headers {
		values := columnValues(rows, col)
		if nums, ok := asNumbers(values); ok {
			min, max, mean := numericSummary(nums)
			fmt.Fprintf(&b, "%s: numeric, min=%g max=%g mean=%.2f\n", name, min, max, mean)
			continue
		}
		fmt.Fprintf(&b, "%s: categorical, %s\n", name, categorySummary(values))
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func columnValues(rows [][]string, col int) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		if col < len(row) {
			out = append(out, strings.TrimSpace(row[col]))
		}
	}
	return out
}

// asNumbers parses all values as floats; any non-numeric value makes the
// column categorical.
func asNumbers(values []string) ([]float64, bool) {
	nums := make([]float64, 0, len(values))
	for _, v := range values {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, false
		}
		nums = append(nums, f)
	}
	return nums, len(nums) > 0
}

func numericSummary(nums []float64) (min, max, mean float64) {
	min, max = nums[0], nums[0]
	var sum float64
	for _, n := range nums {
		if n < min {
			min = n
		}
		if n > max {
			max = n
		}
		sum += n
	}
	return min, max, sum / float64(len(nums))
}

// categorySummary renders "value=count" pairs, most frequent first,
// ties broken alphabetically for deterministic output.
func categorySummary(values []string) string {
	counts := make(map[string]int)
	for _, v := range values {
		counts[v]++
	}

	type kv struct {
		key   string
		count int
	}
	pairs := make([]kv, 0, len(counts))
	for k, c := range counts {
		pairs = append(pairs, kv{k, c})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].key < pairs[j].key
	})

	if len(pairs) > maxCategoryValues {
		pairs = pairs[:maxCategoryValues]
	}

	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, fmt.Sprintf("%s=%d", p.key, p.count))
	}
	return fmt.Sprintf("%d distinct (%s)", len(counts), strings.Join(parts, " "))
}
