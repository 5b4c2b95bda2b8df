package signals

import (
	"testing"

	"github.com/RMahshie/sigdash/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscover(t *testing.T) {
	tests := []struct {
		name         string
		columns      []any
		wantSignals  []models.Signal
		wantWarnings int
	}{
		{
			name:    "pairs by shared suffix",
			columns: []any{"Time - A", "X - A", "Time - B - B", "Y - B - B"},
			wantSignals: []models.Signal{
				{Name: "A", TimeColumn: "Time - A", ValueColumn: "X - A"},
				{Name: "B - B", TimeColumn: "Time - B - B", ValueColumn: "Y - B - B"},
			},
		},
		{
			name: "instrument export headers",
			columns: []any{
				"Time - Measured Velocity", "Spool Rev/Sec - Measured Velocity",
				"Time - Measured Diameter", "Diameter (mm) - Measured Diameter",
			},
			wantSignals: []models.Signal{
				{Name: "Measured Velocity", TimeColumn: "Time - Measured Velocity", ValueColumn: "Spool Rev/Sec - Measured Velocity"},
				{Name: "Measured Diameter", TimeColumn: "Time - Measured Diameter", ValueColumn: "Diameter (mm) - Measured Diameter"},
			},
		},
		{
			name:         "orphan time column is skipped with one warning",
			columns:      []any{"Time - A", "X - A", "Time - Orphan"},
			wantSignals:  []models.Signal{{Name: "A", TimeColumn: "Time - A", ValueColumn: "X - A"}},
			wantWarnings: 1,
		},
		{
			name:        "first candidate in column order wins",
			columns:     []any{"Raw - A", "Time - A", "Filtered - A"},
			wantSignals: []models.Signal{{Name: "A", TimeColumn: "Time - A", ValueColumn: "Raw - A"}},
		},
		{
			name:    "another time column may be the value column",
			columns: []any{"Time - A", "Time - X - A"},
			wantSignals: []models.Signal{
				{Name: "A", TimeColumn: "Time - A", ValueColumn: "Time - X - A"},
			},
			wantWarnings: 1,
		},
		{
			name:        "name is trimmed",
			columns:     []any{"Time -  Pressure ", "P - Pressure"},
			wantSignals: []models.Signal{{Name: "Pressure", TimeColumn: "Time -  Pressure ", ValueColumn: "P - Pressure"}},
		},
		{
			name:    "empty name is skipped silently",
			columns: []any{"Time -   ", "X - "},
		},
		{
			name:        "non-string identifiers are ignored",
			columns:     []any{1.0, "Time - A", nil, 2024.0, "X - A"},
			wantSignals: []models.Signal{{Name: "A", TimeColumn: "Time - A", ValueColumn: "X - A"}},
		},
		{
			name:    "no columns",
			columns: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := Discover(tt.columns)
			if len(tt.wantSignals) == 0 {
				assert.Empty(t, catalog.Signals)
			} else {
				assert.Equal(t, tt.wantSignals, catalog.Signals)
			}
			assert.Len(t, catalog.Warnings, tt.wantWarnings)
		})
	}
}

func TestDiscover_WarningNamesTheTimeColumn(t *testing.T) {
	catalog := Discover([]any{"Time - Orphan"})

	require.Len(t, catalog.Warnings, 1)
	assert.Equal(t, "Orphan", catalog.Warnings[0].Name)
	assert.Equal(t, "Time - Orphan", catalog.Warnings[0].TimeColumn)
	assert.Contains(t, catalog.Warnings[0].Message, "Orphan")
	assert.Empty(t, catalog.Signals)
}

func TestCatalog_NamesAndLookup(t *testing.T) {
	catalog := Discover([]any{"Time - A", "X - A", "Time - B", "Y - B"})

	assert.Equal(t, []string{"A", "B"}, catalog.Names())

	sig, ok := catalog.Lookup("B")
	require.True(t, ok)
	assert.Equal(t, "Y - B", sig.ValueColumn)

	_, ok = catalog.Lookup("C")
	assert.False(t, ok)
}
