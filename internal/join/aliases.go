package join

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// aliasFile is the on-disk alias table:
//
//	aliases:
//	  "Washington D.C.": "District of Columbia"
type aliasFile struct {
	Aliases map[string]string `yaml:"aliases"`
}

// LoadAliases reads an alias table. An empty path yields no aliases.
func LoadAliases(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "join: read aliases %s", path)
	}

	var f aliasFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrapf(err, "join: parse aliases %s", path)
	}

	out := make(map[string]string, len(f.Aliases))
	for from, to := range f.Aliases {
		from, to = strings.TrimSpace(from), strings.TrimSpace(to)
		if from == "" || to == "" {
			return nil, eris.Errorf("join: alias %q -> %q has an empty side", from, to)
		}
		out[from] = to
	}
	return out, nil
}
