package changedto

// ItemFailure describes a single failed item inside a bulk rollback.
type ItemFailure struct {
	ChangeID string `json:"change_id"`
	Error    string `json:"error"`
}

// BulkRollbackOutput reports both counts; one failing item never blocks the rest.
type BulkRollbackOutput struct {
	RolledBack int           `json:"rolled_back"`
	Failed     int           `json:"failed"`
	Failures   []ItemFailure `json:"failures,omitempty"`
}
