package models

// CouncilMember is one roster entry from the municipality's open-data
// endpoint. Field names mirror the upstream JSON.
type CouncilMember struct {
	Name  string `json:"vereador_nome"`
	Title string `json:"vereador_titulo"`
	Photo string `json:"vereador_foto"`
}
