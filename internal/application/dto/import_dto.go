package dto

// RunImportRequest body para POST /api/imports.
type RunImportRequest struct {
	Mode string `json:"mode"` // full_reload | incremental | multi_sheet
}
