package testdef

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/uipilot-dev/uipilot/pkg/step"
)

// document is the on-disk shape of a test. YAML is the authoring format;
// JSON documents parse through the same decoder.
type document struct {
	Name    string        `yaml:"name" json:"name"`
	Suite   string        `yaml:"suite,omitempty" json:"suite,omitempty"`
	Version string        `yaml:"version,omitempty" json:"version,omitempty"`
	Steps   []step.Record `yaml:"steps" json:"steps"`
}

// Load parses a test document and deserializes every step through the
// registry. Loading fails fast on the first malformed step or unknown
// step type; a partially loaded test is never returned.
func Load(r io.Reader, reg *step.Registry) (*Test, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing test document: %w", err)
	}
	if doc.Name == "" {
		return nil, fmt.Errorf("test document has no name")
	}

	t := New(doc.Name, doc.Suite, doc.Version)
	for i, rec := range doc.Steps {
		def, err := reg.Create(rec)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, rec.ID, err)
		}
		t.Append(def)
	}
	return t, nil
}

// LoadFile loads a test document from disk.
func LoadFile(path string, reg *step.Registry) (*Test, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening test document: %w", err)
	}
	defer f.Close()

	t, err := Load(f, reg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Write serializes the test back to YAML.
func (t *Test) Write(w io.Writer) error {
	doc := document{
		Name:    t.Name,
		Suite:   t.Suite,
		Version: t.Version,
		Steps:   t.Records(),
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(doc)
}
