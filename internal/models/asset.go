package models

// AssetRef points at an uploaded asset. StorageKey is what gets submitted
// with a record; DisplayURL is only used for local preview.
type AssetRef struct {
	StorageKey string
	DisplayURL string
}
