// Package meta loads the per-region descriptive metrics shown in the
// detail panel: a silhouette score and the top features.
package meta

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// MaxFeatures is how many top features a region keeps.
const MaxFeatures = 3

type Entry struct {
	Score    *float64
	Features []string
}

// Metrics is keyed by region name.
type Metrics map[string]Entry

var (
	nameCol     = []*regexp.Regexp{regexp.MustCompile(`name`), regexp.MustCompile(`járás`), regexp.MustCompile(`jaras`), regexp.MustCompile(`district`)}
	scoreCol    = []*regexp.Regexp{regexp.MustCompile(`sil`), regexp.MustCompile(`s_local`), regexp.MustCompile(`silhouette`), regexp.MustCompile(`^\s*s\s*$`)}
	featListCol = []*regexp.Regexp{regexp.MustCompile(`top.*features?`)}
	topNCol     = regexp.MustCompile(`(?i)^top\d+`)
	topFeatCol  = regexp.MustCompile(`top.*feat`)
	featSep     = regexp.MustCompile(`[;|,]`)
)

// sniffDelimiter picks the candidate that splits the first non-empty line
// into the most fields.
func sniffDelimiter(data []byte) rune {
	var first string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			first = sc.Text()
			break
		}
	}
	best, d := 0, ','
	for _, c := range []rune{',', ';', '\t', '|'} {
		if n := strings.Count(first, string(c)) + 1; n > best {
			best, d = n, c
		}
	}
	return d
}

func column(header []string, rxs []*regexp.Regexp) int {
	for i, h := range header {
		h = strings.ToLower(h)
		for _, rx := range rxs {
			if rx.MatchString(h) {
				return i
			}
		}
	}
	return -1
}

// ParseMetrics reads a delimited table with a header row. The name column
// falls back to the first column; rows without a name are skipped.
func ParseMetrics(r io.Reader) (Metrics, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = sniffDelimiter(data)
	cr.TrimLeadingSpace = cr.Comma != '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse metrics: %w", err)
	}
	out := Metrics{}
	if len(recs) == 0 {
		return out, nil
	}

	header := recs[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	nameIdx := max(column(header, nameCol), 0)
	scoreIdx := column(header, scoreCol)
	listIdx := column(header, featListCol)
	var topCols []int
	for i, h := range header {
		if topNCol.MatchString(h) || topFeatCol.MatchString(strings.ToLower(h)) {
			topCols = append(topCols, i)
		}
	}

	cell := func(row []string, i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	for _, row := range recs[1:] {
		name := cell(row, nameIdx)
		if name == "" {
			continue
		}
		var e Entry
		if v := cell(row, scoreIdx); v != "" {
			s, err := strconv.ParseFloat(strings.Replace(v, ",", ".", 1), 64)
			if err == nil && !math.IsNaN(s) && !math.IsInf(s, 0) {
				e.Score = &s
			}
		}
		if list := cell(row, listIdx); list != "" {
			for _, f := range featSep.Split(list, -1) {
				if f = strings.TrimSpace(f); f != "" && len(e.Features) < MaxFeatures {
					e.Features = append(e.Features, f)
				}
			}
		} else {
			for _, i := range topCols {
				if f := cell(row, i); f != "" && len(e.Features) < MaxFeatures {
					e.Features = append(e.Features, f)
				}
			}
		}
		out[name] = e
	}
	return out, nil
}

// LoadMetrics never fails: problems are logged and yield an empty table.
func LoadMetrics(path string) Metrics {
	if path == "" {
		return Metrics{}
	}
	f, err := os.Open(path)
	if err != nil {
		slog.Warn("metrics unavailable", "path", path, "error", err)
		return Metrics{}
	}
	defer f.Close()
	m, err := ParseMetrics(f)
	if err != nil {
		slog.Warn("metrics unreadable", "path", path, "error", err)
		return Metrics{}
	}
	return m
}
