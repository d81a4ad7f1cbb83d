package digest

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultQuote is used when no quotes file is configured or it is empty.
const DefaultQuote = "The harder you work for something, the greater you'll feel when you achieve it."

type quotesFile struct {
	Quotes []string `yaml:"quotes"`
}

// LoadQuotes reads a {"quotes": [...]} file. JSON and YAML are both accepted.
// A missing file yields no quotes and no error.
func LoadQuotes(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read quotes: %w", err)
	}
	var qf quotesFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parse quotes %s: %w", path, err)
	}
	return qf.Quotes, nil
}

// PickQuote returns a random quote, or DefaultQuote when there are none.
func PickQuote(quotes []string, rng *rand.Rand) string {
	if len(quotes) == 0 {
		return DefaultQuote
	}
	if rng == nil {
		return quotes[rand.IntN(len(quotes))]
	}
	return quotes[rng.IntN(len(quotes))]
}
