package dataset

// Loader rebuilds the dataset from the embedded tables and an optional
// operator file. The scheduler calls it for the initial load and reloads.
type Loader struct {
	matcher   Matcher
	extraPath string
}

// NewLoader creates a loader. extraPath may be empty.
func NewLoader(matcher Matcher, extraPath string) *Loader {
	return &Loader{matcher: matcher, extraPath: extraPath}
}

// LoadDataset parses a fresh snapshot
func (l *Loader) LoadDataset() (*Dataset, error) {
	return Load(l.matcher, l.extraPath)
}
