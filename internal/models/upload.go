package models

// Upload describes a stored media object
type Upload struct {
	URL         string `json:"url"`
	Bucket      string `json:"bucket"`
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}
