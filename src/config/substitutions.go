package config

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/samber/lo"

	"github.com/eriklarko/propositions/src/syntax"
)

// WriteSubstitutionMap writes a substitution map to a CSV file, one
// `key,formula` record per line, sorted by key. Formulas are written in
// standard notation.
func WriteSubstitutionMap(path string, substitutions map[string]*syntax.Formula) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		// only used to make error messages easier to follow. Best effort.
		absPath = path
	}

	file, err := os.Create(absPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", absPath, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	keys := lo.Keys(substitutions)
	slices.Sort(keys)
	for _, key := range keys {
		record := []string{key, substitutions[key].String()}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %v: %w", record, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write %s: %w", absPath, err)
	}
	return nil
}

// ReadSubstitutionMap reads a substitution map from a CSV file written by
// WriteSubstitutionMap. Formulas are parsed in standard notation under the
// given grammar. Keys are not validated here; the substitution itself does
// that.
func ReadSubstitutionMap(path string, grammar *syntax.Grammar) (map[string]*syntax.Formula, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", absPath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comment = '#'
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read records from file %s: %w", absPath, err)
	}

	substitutions := make(map[string]*syntax.Formula, len(records))
	for _, record := range records {
		if len(record) != 2 {
			return nil, fmt.Errorf("invalid record %v: expected 2 fields, got %d", record, len(record))
		}

		key := record[0]
		if _, ok := substitutions[key]; ok {
			return nil, fmt.Errorf("key '%s' is mapped more than once in %s", key, absPath)
		}

		formula, err := grammar.Parse(record[1])
		if err != nil {
			return nil, fmt.Errorf("failed to parse formula '%s' for key '%s': %w", record[1], key, err)
		}
		substitutions[key] = formula
	}

	return substitutions, nil
}
