package views

// PostSummary is one entry in a post listing.
type PostSummary struct {
	Title   string
	Date    string
	Summary string
	URL     string
	Tags    []string
}

// PageData is what the page template needs to render one content page.
type PageData struct {
	Title        string
	Date         string
	DateModified string
	Author       string
	Tags         []string
	Kind         string // "blog" or "docs"
}
