package model

// CatalogMetadata is the display metadata attached to a rental from the
// Discogs catalog. Nil fields mean the catalog had nothing for them.
type CatalogMetadata struct {
	DiscogsID int64   `json:"discogs_id"`
	Title     *string `json:"title"`
	ImageURL  *string `json:"image_url"`
}
