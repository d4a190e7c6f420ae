package home

// PageState is the data behind the upload page.
type PageState struct {
	Dataset string
	Files   []string
	Notices []string
	Error   string
}
