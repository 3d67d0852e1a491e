// Package dataset holds the curated interaction tables and the drug-class
// rule table, and answers pair lookups against them.
package dataset

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/giygas/interactions-api/entities"
	"github.com/giygas/interactions-api/logging"
	"golang.org/x/text/encoding/charmap"
)

//go:embed tables/*.tsv
var embeddedTables embed.FS

// Embedded tables in lookup order.
var embeddedTableNames = []string{"general", "supplementary", "specific"}

// Matcher decides whether a table entry name refers to an input name.
type Matcher interface {
	Match(tableName, input string) bool
}

// Table is one named set of interaction records.
type Table struct {
	Name    string
	Records []entities.InteractionRecord
}

// Dataset is an immutable snapshot of all tables and classes.
type Dataset struct {
	tables   []Table
	classes  []entities.DrugClass
	matcher  Matcher
	loadedAt time.Time
}

// Stats summarizes a dataset snapshot.
type Stats struct {
	Tables   map[string]int `json:"tables"`
	Records  int            `json:"records"`
	Classes  int            `json:"classes"`
	LoadedAt time.Time      `json:"loaded_at"`
}

// New builds a dataset from already parsed tables and classes.
func New(matcher Matcher, tables []Table, classes []entities.DrugClass) *Dataset {
	return &Dataset{
		tables:   tables,
		classes:  classes,
		matcher:  matcher,
		loadedAt: time.Now(),
	}
}

// Load parses the embedded tables and, when extraPath is set, one operator
// supplied table appended after them.
func Load(matcher Matcher, extraPath string) (*Dataset, error) {
	tables, err := loadEmbedded()
	if err != nil {
		return nil, err
	}

	if extraPath != "" {
		extra, err := LoadFile(extraPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load dataset file: %w", err)
		}
		tables = append(tables, extra)
	}

	ds := New(matcher, tables, defaultClasses)
	stats := ds.Stats()
	logging.Info("Interaction dataset loaded",
		"records", stats.Records,
		"tables", len(tables),
		"classes", stats.Classes,
	)
	return ds, nil
}

func loadEmbedded() ([]Table, error) {
	tables := make([]Table, 0, len(embeddedTableNames)+1)
	for _, name := range embeddedTableNames {
		f, err := embeddedTables.Open("tables/" + name + ".tsv")
		if err != nil {
			return nil, fmt.Errorf("failed to open embedded table %s: %w", name, err)
		}
		table, _, err := ParseTable(name, f)
		f.Close()
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, nil
}

// LoadFile reads an operator table. Files that are not valid UTF-8 are
// decoded as ISO-8859-1.
func LoadFile(path string) (Table, error) {
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Table{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var reader io.Reader
	if utf8.Valid(content) {
		reader = bytes.NewReader(content)
	} else {
		reader = charmap.ISO8859_1.NewDecoder().Reader(bytes.NewReader(content))
	}

	name := filepath.Base(path)
	table, stats, err := ParseTable(name, reader)
	if err != nil {
		return Table{}, err
	}
	if stats.Records == 0 {
		return Table{}, fmt.Errorf("dataset file %s contains no valid records", path)
	}

	logging.Debug(fmt.Sprintf("%s parsed with %d records", name, stats.Records))
	return table, nil
}

// Lookup returns every curated row and class rule matching the pair, in
// table order. Findings use the input names, not the table's names.
// Results are not deduplicated.
func (d *Dataset) Lookup(drugA, drugB string) []entities.Interaction {
	var out []entities.Interaction

	for _, table := range d.tables {
		for _, r := range table.Records {
			forward := d.matcher.Match(r.DrugA, drugA) && d.matcher.Match(r.DrugB, drugB)
			reverse := d.matcher.Match(r.DrugA, drugB) && d.matcher.Match(r.DrugB, drugA)
			if forward || reverse {
				out = append(out, r.ToInteraction(drugA, drugB, entities.SourceCurated))
			}
		}
	}

	return append(out, d.classLookup(drugA, drugB)...)
}

func (d *Dataset) classLookup(drugA, drugB string) []entities.Interaction {
	var out []entities.Interaction

	for _, class := range d.classes {
		if len(class.Rules) == 0 {
			continue
		}
		aIn := d.inClass(drugA, class.Name)
		bIn := d.inClass(drugB, class.Name)
		if !aIn && !bIn {
			continue
		}

		for _, rule := range class.Rules {
			if (aIn && d.inClass(drugB, rule.WithClass)) || (bIn && d.inClass(drugA, rule.WithClass)) {
				out = append(out, entities.Interaction{
					Drug1:          drugA,
					Drug2:          drugB,
					Severity:       rule.Severity,
					Description:    rule.Description,
					Recommendation: rule.Recommendation,
					Source:         entities.SourceDrugClass,
				})
			}
		}
	}

	return out
}

func (d *Dataset) inClass(drug, className string) bool {
	for _, class := range d.classes {
		if class.Name != className {
			continue
		}
		for _, member := range class.Members {
			if d.matcher.Match(member, drug) {
				return true
			}
		}
		return false
	}
	return false
}

// ClassesOf lists the class names a drug belongs to.
func (d *Dataset) ClassesOf(drug string) []string {
	var names []string
	for _, class := range d.classes {
		if d.inClass(drug, class.Name) {
			names = append(names, class.Name)
		}
	}
	return names
}

// Stats reports record counts per table.
func (d *Dataset) Stats() Stats {
	s := Stats{
		Tables:   make(map[string]int, len(d.tables)),
		Classes:  len(d.classes),
		LoadedAt: d.loadedAt,
	}
	for _, t := range d.tables {
		s.Tables[t.Name] += len(t.Records)
		s.Records += len(t.Records)
	}
	return s
}
