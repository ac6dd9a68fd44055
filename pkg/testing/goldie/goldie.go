package goldie

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// New returns a goldie instance reading fixtures from ./fixtures/<name>.golden
func New(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("fixtures"),
		goldie.WithNameSuffix(".golden"),
		goldie.WithDiffEngine(goldie.ClassicDiff),
	)
}
