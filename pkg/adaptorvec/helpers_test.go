package adaptorvec

import (
	"path/filepath"
	"runtime"
)

// fixturesDir returns the absolute path to the fixtures directory (project root).
func fixturesDir() string {
	_, f, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(f), "..", "..", "fixtures")
}

// loadTestVectors loads test vectors from the fixtures directory
func loadTestVectors(filename string) ([]*Vector, error) {
	return ParserForFile(filename).ParseVectors(filepath.Join(fixturesDir(), filename))
}

// vectorByName returns the vector with the given name, or nil.
func vectorByName(vectors []*Vector, name string) *Vector {
	for _, v := range vectors {
		if v.Name == name {
			return v
		}
	}
	return nil
}
