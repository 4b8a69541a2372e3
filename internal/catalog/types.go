package catalog

// Product is a product from a Shopify collection, trimmed to the fields the
// importer reads.
type Product struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Tags     string  `json:"tags"`      // comma separated
	BodyHTML string  `json:"body_html"` // null decodes to ""
	Images   []Image `json:"images"`
}

// Image is a product image
type Image struct {
	Src string `json:"src"`
}

// ListProductsResponse is the body of the collection products endpoint
type ListProductsResponse struct {
	Products []Product `json:"products"`
}
