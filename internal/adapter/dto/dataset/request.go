package dataset

// ImportRequest optionally names the descriptor object to import from.
// An empty value falls back to descriptor.json.
type ImportRequest struct {
	Descriptor string `json:"descriptor" validate:"omitempty,min=1,max=255"`
}
