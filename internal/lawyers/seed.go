package lawyers

import (
	"context"
	_ "embed"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed seed/lawyers.yaml
var seedYAML []byte

// LoadSeed parses the bundled directory entries.
func LoadSeed() ([]Lawyer, error) {
	return ParseSeed(seedYAML)
}

// ParseSeed parses a YAML list of lawyers. Every entry needs an id and a name.
func ParseSeed(data []byte) ([]Lawyer, error) {
	var out []Lawyer
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, eris.Wrap(err, "parse lawyer seed")
	}
	seen := make(map[string]struct{}, len(out))
	for i, l := range out {
		if l.ID == "" || l.Name == "" {
			return nil, eris.Errorf("lawyer seed entry %d: id and name are required", i)
		}
		if _, dup := seen[l.ID]; dup {
			return nil, eris.Errorf("lawyer seed entry %d: duplicate id %q", i, l.ID)
		}
		seen[l.ID] = struct{}{}
	}
	return out, nil
}

// Seed writes the bundled entries to repo and returns how many were written.
func Seed(ctx context.Context, repo Repo) (int, error) {
	entries, err := LoadSeed()
	if err != nil {
		return 0, err
	}
	if err := repo.Upsert(ctx, entries); err != nil {
		return 0, eris.Wrap(err, "store lawyer seed")
	}
	return len(entries), nil
}
