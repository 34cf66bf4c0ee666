package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrigadeDailyCapacity(t *testing.T) {
	b := Brigade{ID: "B1", HourlyCapacity: 10}
	if got := b.DailyCapacity(); got != 120 {
		t.Fatalf("expected 120 got %v", got)
	}
}

func TestFocusExtinguished(t *testing.T) {
	assert.True(t, Focus{ID: "F1"}.Extinguished())
	assert.False(t, Focus{ID: "F1", Area: 0.1}.Extinguished())
	assert.Equal(t, 225.0, Focus{ID: "F1", Area: 150, GrowthFactor: 1.5}.Priority())
}

func TestValidateEntities(t *testing.T) {
	tests := []struct {
		name     string
		brigades []Brigade
		foci     []Focus
		field    string
		dup      bool
	}{
		{name: "negative capacity", brigades: []Brigade{{ID: "B1", HourlyCapacity: -1}}, field: "hourly_capacity"},
		{name: "negative area", foci: []Focus{{ID: "F1", Area: -3, GrowthFactor: 1}}, field: "area"},
		{name: "negative growth", foci: []Focus{{ID: "F1", Area: 3, GrowthFactor: -1}}, field: "growth_factor"},
		{name: "empty id", brigades: []Brigade{{HourlyCapacity: 1}}, field: "id"},
		{name: "duplicate brigade", brigades: []Brigade{{ID: "B1"}, {ID: "B1"}}, dup: true},
		{name: "duplicate focus", foci: []Focus{{ID: "F1"}, {ID: "F1"}}, dup: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntities(tt.brigades, tt.foci)
			require.Error(t, err)
			if tt.dup {
				assert.True(t, errors.Is(err, ErrDuplicateID))
				return
			}
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestValidateEntitiesAcceptsZeroValues(t *testing.T) {
	err := ValidateEntities(
		[]Brigade{{ID: "B1", HourlyCapacity: 0}},
		[]Focus{{ID: "F1", Area: 0, GrowthFactor: 0}},
	)
	assert.NoError(t, err)
}
