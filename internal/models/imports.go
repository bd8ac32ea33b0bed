package models

// RawDocument is a listing page as received, before any parsing.
type RawDocument struct {
	Source  string
	Content []byte
}

// ImportOptions tune a single import call.
type ImportOptions struct {
	Geocode bool `json:"geocode" form:"geocode"`
}

// ImportOutcome is the result of importing one document. Exactly one of
// Listing and Errors is set.
type ImportOutcome struct {
	Listing  *Listing
	Errors   map[string]string
	Warnings []string
}

// CreatedListing is the public summary of a persisted listing.
type CreatedListing struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Warnings []string `json:"warnings"`
}

// ItemError describes a batch entry that did not produce a listing.
// Index is 1-based.
type ItemError struct {
	Index  int               `json:"index"`
	Source string            `json:"file,omitempty"`
	Error  string            `json:"error,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// BatchImportResult aggregates a batch; it is always partial-success friendly.
type BatchImportResult struct {
	Created []CreatedListing `json:"created"`
	Errors  []ItemError      `json:"errors"`
}

// Summary returns the public view of a successful outcome.
func (o *ImportOutcome) Summary() CreatedListing {
	warnings := o.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return CreatedListing{ID: o.Listing.ID, Title: o.Listing.Title, Warnings: warnings}
}
