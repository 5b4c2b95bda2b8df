package signals

import (
	"fmt"
	"strings"

	"github.com/RMahshie/sigdash/pkg/models"
	"github.com/rs/zerolog/log"
)

// TimePrefix marks a time column; the rest of the header names the signal
const TimePrefix = "Time - "

// Catalog is the result of one discovery run
type Catalog struct {
	Signals  []models.Signal           `json:"signals"`
	Warnings []models.DiscoveryWarning `json:"warnings"`
}

// Names returns the signal names in discovery order
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c.Signals))
	for _, s := range c.Signals {
		names = append(names, s.Name)
	}
	return names
}

// Lookup returns the signal with the given name
func (c Catalog) Lookup(name string) (models.Signal, bool) {
	for _, s := range c.Signals {
		if s.Name == name {
			return s, true
		}
	}
	return models.Signal{}, false
}

// Discover pairs "Time - <name>" columns with the first other column, in
// column order, whose header ends in " - <name>". Non-string identifiers are
// ignored. Time columns without a partner are skipped with a warning.
func Discover(columns []any) Catalog {
	cols := make([]string, 0, len(columns))
	for _, c := range columns {
		if s, ok := c.(string); ok {
			cols = append(cols, s)
		}
	}

	var catalog Catalog
	seen := make(map[string]bool)

	for _, tcol := range cols {
		if !strings.HasPrefix(tcol, TimePrefix) {
			continue
		}
		name := strings.TrimSpace(tcol[len(TimePrefix):])
		if name == "" {
			continue
		}

		suffix := " - " + name
		vcol, found := "", false
		for _, c := range cols {
			if c != tcol && strings.HasSuffix(c, suffix) {
				vcol, found = c, true
				break
			}
		}

		if !found {
			log.Warn().Str("signal", name).Str("time_column", tcol).Msg("No value column found for signal")
			catalog.Warnings = append(catalog.Warnings, models.DiscoveryWarning{
				Name:       name,
				TimeColumn: tcol,
				Message:    fmt.Sprintf("no value column found for signal %q (time column %q)", name, tcol),
			})
			continue
		}

		// names stay unique within a run; the earlier time column wins
		if seen[name] {
			log.Debug().Str("signal", name).Str("time_column", tcol).Msg("Duplicate signal name skipped")
			continue
		}
		seen[name] = true

		catalog.Signals = append(catalog.Signals, models.Signal{
			Name:        name,
			TimeColumn:  tcol,
			ValueColumn: vcol,
		})
	}

	return catalog
}
