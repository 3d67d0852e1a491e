package dataset

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/giygas/interactions-api/entities"
	"github.com/giygas/interactions-api/logging"
)

// Column layout of every interaction table.
const (
	colDrugA = iota
	colDrugB
	colSeverity
	colDescription
	colRecommendation
	colSimpleSummary
	colSideEffects
	colWhatToAvoid
	requiredColumns = colRecommendation + 1
)

// ParseStats counts what a table parse kept and skipped.
type ParseStats struct {
	Lines                 int
	Records               int
	SkippedComments       int
	SkippedEmptyLines     int
	SkippedMissingColumns int
	SkippedBadSeverity    int
}

// Skipped is the number of non-comment lines that did not become records.
func (s ParseStats) Skipped() int {
	return s.SkippedMissingColumns + s.SkippedBadSeverity
}

// ParseTable reads a tab-separated interaction table. The three enrichment
// columns are optional, list columns are separated by ';'.
func ParseTable(name string, r io.Reader) (Table, ParseStats, error) {
	table := Table{Name: name}
	var stats ParseStats

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1*1024*1024)

	for scanner.Scan() {
		stats.Lines++
		line := strings.TrimRight(scanner.Text(), "\r")

		if strings.TrimSpace(line) == "" {
			stats.SkippedEmptyLines++
			continue
		}
		if strings.HasPrefix(line, "#") {
			stats.SkippedComments++
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < requiredColumns {
			stats.SkippedMissingColumns++
			continue
		}

		drugA := strings.TrimSpace(fields[colDrugA])
		drugB := strings.TrimSpace(fields[colDrugB])
		if drugA == "" || drugB == "" || strings.TrimSpace(fields[colDescription]) == "" {
			stats.SkippedMissingColumns++
			continue
		}

		severity, err := entities.ParseSeverity(fields[colSeverity])
		if err != nil {
			stats.SkippedBadSeverity++
			continue
		}

		record := entities.InteractionRecord{
			DrugA:          drugA,
			DrugB:          drugB,
			Severity:       severity,
			Description:    strings.TrimSpace(fields[colDescription]),
			Recommendation: strings.TrimSpace(fields[colRecommendation]),
		}
		if len(fields) > colSimpleSummary {
			record.SimpleSummary = strings.TrimSpace(fields[colSimpleSummary])
		}
		if len(fields) > colSideEffects {
			record.SideEffects = splitList(fields[colSideEffects])
		}
		if len(fields) > colWhatToAvoid {
			record.WhatToAvoid = splitList(fields[colWhatToAvoid])
		}

		table.Records = append(table.Records, record)
		stats.Records++
	}

	if err := scanner.Err(); err != nil {
		return Table{}, stats, fmt.Errorf("scanner error in table %s: %w", name, err)
	}

	if stats.Skipped() > 0 {
		logging.Warn("Skipped malformed dataset rows",
			"table", name,
			"missing_columns", stats.SkippedMissingColumns,
			"bad_severity", stats.SkippedBadSeverity,
		)
	}

	return table, stats, nil
}

func splitList(field string) []string {
	var out []string
	for _, item := range strings.Split(field, ";") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
