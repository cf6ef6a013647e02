// Package testhelpers holds shared test setup.
package testhelpers

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Goldie returns a goldie instance reading fixtures from the package's testdata directory.
func Goldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
}

// DotGoldie returns a goldie instance for Graphviz output.
func DotGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".gold.dot"),
	)
}
