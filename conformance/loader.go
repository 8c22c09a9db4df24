package conformance

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ScenariosDir is the default location of the bundled YAML fixtures,
// relative to this package's directory.
const ScenariosDir = "scenarios"

// LoadedTest pairs a parsed TestCase with the suite and file it came
// from, for reporting.
type LoadedTest struct {
	File  string
	Suite TestSuite
	Test  TestCase
}

// LoadDir walks dir for *.yaml files and returns every test case they
// contain, in a deterministic (lexical) file order.
func LoadDir(dir string) ([]LoadedTest, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read scenarios dir %q: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".yaml" {
			names = append(names, e.Name())
		}
	}

	var loaded []LoadedTest
	for _, name := range names {
		path := filepath.Join(dir, name)
		suite, err := loadSuiteFile(path)
		if err != nil {
			return nil, fmt.Errorf("load %q: %w", path, err)
		}
		for _, tc := range suite.Tests {
			loaded = append(loaded, LoadedTest{File: name, Suite: suite, Test: tc})
		}
	}
	return loaded, nil
}

func loadSuiteFile(path string) (TestSuite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TestSuite{}, err
	}
	var suite TestSuite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return TestSuite{}, err
	}
	return suite, nil
}
