package dto

// ImportResponse resultado de una carga CSV completada.
type ImportResponse struct {
	ImportID   string `json:"import_id"`
	RowsLoaded int    `json:"rows_loaded"`
	Message    string `json:"message"`
}
