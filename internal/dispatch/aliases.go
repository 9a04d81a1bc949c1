package dispatch

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"statement-chat/internal/logging"
)

// aliasFile is the on-disk shape of a query alias file: user phrasings
// mapped to fixed query keys.
//
//	aliases:
//	  "biggest spender": highest_debit
//	  "busiest day": most_transactions
type aliasFile struct {
	Aliases map[string]string `yaml:"aliases"`
}

// LoadAliases reads a query alias file and installs it on the dispatcher.
// A missing path is not an error; the dispatcher simply runs without
// aliases.
func (d *Dispatcher) LoadAliases(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			d.Log.Debug("No alias file found",
				logging.Field{Key: logging.FieldFile, Value: path})
			return nil
		}
		return fmt.Errorf("could not read alias file: %w", err)
	}

	var file aliasFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("could not parse alias file: %w", err)
	}

	aliases := make(map[string]string, len(file.Aliases))
	for phrase, key := range file.Aliases {
		if !validKey(key) {
			d.Log.Warn("Ignoring alias bound to unknown query key",
				logging.Field{Key: logging.FieldQueryKey, Value: key})
			continue
		}
		aliases[normalizePhrase(phrase)] = key
	}
	d.Aliases = aliases

	d.Log.Info("Loaded query aliases",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(aliases)})
	return nil
}

func normalizePhrase(phrase string) string {
	return strings.ToLower(strings.TrimSpace(phrase))
}

func validKey(key string) bool {
	for _, k := range fixedKeys {
		if k == key {
			return true
		}
	}
	return false
}
