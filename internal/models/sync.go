package models

// SyncError records a product that could not be written
type SyncError struct {
	Product string `json:"product"`
	Error   string `json:"error"`
}

// SyncResult summarizes one catalog import run. It is returned to the caller
// and never stored.
type SyncResult struct {
	Created int         `json:"created"`
	Updated int         `json:"updated"`
	Errors  []SyncError `json:"errors"`
}

// NewSyncResult returns an empty result whose Errors encode as [] rather than null
func NewSyncResult() *SyncResult {
	return &SyncResult{Errors: make([]SyncError, 0)}
}

// AddError appends a per-product failure
func (r *SyncResult) AddError(product string, err error) {
	r.Errors = append(r.Errors, SyncError{Product: product, Error: err.Error()})
}
