package dto

// ── import/export module DTOs ──

// ImportResult reports a bulk import: how many rows were created and
// how many were dropped for missing mandatory fields. Per-row
// diagnostics are not reported beyond the header validation error.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// UploadResult reports a multi-file upload. Files are sent to the blob
// proxy one by one; a failure does not roll back earlier uploads.
type UploadResult struct {
	URLs   []string `json:"urls"`
	Failed []string `json:"failed"`
}
