package domain

// Snippet is the current state of the gist the summary is written to.
type Snippet struct {
	ID string
	// Files are kept in the order the store reports them.
	Files []SnippetFile
}

// SnippetFile is one named file of a gist.
type SnippetFile struct {
	Name    string
	Content string
}
