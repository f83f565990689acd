package models

// APIResponse is the envelope every create call answers with. Status false
// means the server rejected the request; Message is meant for the user.
type APIResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// UploadResponse is returned by the asset upload endpoint. URL is the
// storage key to submit with the record; FullURL is display-only.
type UploadResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	URL     string `json:"url,omitempty"`
	FullURL string `json:"fullUrl,omitempty"`
}

// ListResponse wraps list endpoints of the dev server
type ListResponse[T any] struct {
	Status bool `json:"status"`
	Data   []T  `json:"data"`
}
