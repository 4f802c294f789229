package storage

import "sort"

// SampleLibrary maps human-readable names to reference radiograph URLs used
// for demonstrations and smoke tests.
type SampleLibrary struct {
	entries map[string]string
}

// defaultSamples are publicly hosted dental X-ray images.
var defaultSamples = map[string]string{
	"Panoramic X-ray 1": "https://raw.githubusercontent.com/zcytony/DentalXraySegmentation/master/data/raw/1.png",
	"Panoramic X-ray 2": "https://raw.githubusercontent.com/zcytony/DentalXraySegmentation/master/data/raw/2.png",
	"Bitewing X-ray":    "https://raw.githubusercontent.com/zcytony/DentalXraySegmentation/master/data/raw/3.png",
}

// NewSampleLibrary creates the default library.
func NewSampleLibrary() *SampleLibrary {
	return &SampleLibrary{entries: defaultSamples}
}

// NewSampleLibraryWithEntries creates a library from explicit entries.
func NewSampleLibraryWithEntries(entries map[string]string) *SampleLibrary {
	return &SampleLibrary{entries: entries}
}

// URL looks a sample up by name.
func (l *SampleLibrary) URL(name string) (string, bool) {
	url, ok := l.entries[name]
	return url, ok
}

// Names lists the sample names in stable order.
func (l *SampleLibrary) Names() []string {
	names := make([]string, 0, len(l.entries))
	for name := range l.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
