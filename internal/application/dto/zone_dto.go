package dto

// ZoneResponse zona (bodega física o zona virtual).
type ZoneResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	ParentID string `json:"parent_id,omitempty"`
}

// ZoneListResponse zonas virtuales de una bodega física.
type ZoneListResponse struct {
	Items []ZoneResponse `json:"items"`
}
