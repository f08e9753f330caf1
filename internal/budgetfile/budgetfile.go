// Package budgetfile reads budget entries from YAML import files.
package budgetfile

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/iwvelando/construction-projection/internal/ledger"
	"github.com/iwvelando/construction-projection/pkg/validation"
	"gopkg.in/yaml.v3"
)

// File is the on-disk layout of a budget import.
//
//	entries:
//	  - budgetPeriod: 2025
//	    fundCode: F100
//	    programCode: "0916"
//	    projectId: P-1
//	    activityId: A-1
//	    lineDescr: Site work
//	    monetaryAmount: 1500000
type File struct {
	Entries []ledger.BudgetEntry `yaml:"entries"`
}

// Load reads and validates the budget file at path.
func Load(path string) ([]ledger.BudgetEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open budget file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes budget entries from r. Unknown keys are rejected and every
// entry must carry its key columns.
func Parse(r io.Reader) ([]ledger.BudgetEntry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read budget file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var file File
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse budget file: %w", err)
	}

	for i, e := range file.Entries {
		if err := validation.ValidateBudgetEntry(e); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
	}
	return file.Entries, nil
}
