package entities

import "fmt"

// Dataset types accepted by the importer
const (
	DatasetTypeCSV  = "csv"
	DatasetTypeJSON = "json"
)

// DatasetEntry describes one minutes data file
type DatasetEntry struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// DatasetDescriptor is the JSON descriptor format listing minutes datasets:
// {"datasets": [{"type": str, "name": str, "description": str}]}
type DatasetDescriptor struct {
	Datasets []DatasetEntry `json:"datasets"`
}

// Validate checks the descriptor for structural problems
func (d *DatasetDescriptor) Validate() error {
	if len(d.Datasets) == 0 {
		return fmt.Errorf("descriptor lists no datasets")
	}
	for i, ds := range d.Datasets {
		if ds.Name == "" {
			return fmt.Errorf("dataset %d has no name", i)
		}
		switch ds.Type {
		case DatasetTypeCSV, DatasetTypeJSON:
		default:
			return fmt.Errorf("dataset %q has unsupported type %q", ds.Name, ds.Type)
		}
	}
	return nil
}
