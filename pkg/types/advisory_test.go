package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckAdvisories(t *testing.T) {
	t.Run("complete tag set has no advisories", func(t *testing.T) {
		tags := Tags{
			CategoryTaskType:         {"debugging"},
			CategoryComplexity:       {"intermediate"},
			CategoryAbstractionLevel: {"ready-to-use"},
		}
		assert.Empty(t, CheckAdvisories(tags))
	})

	t.Run("missing required categories are reported", func(t *testing.T) {
		got := CheckAdvisories(Tags{CategoryTaskType: {"analysis"}})
		assert.Len(t, got, 2)
		for _, a := range got {
			assert.Equal(t, AdvisoryMissingRequired, a.Kind)
		}
	})

	t.Run("multiple values in single-value category are reported", func(t *testing.T) {
		tags := Tags{
			CategoryTaskType:         {"debugging"},
			CategoryComplexity:       {"basic", "expert"},
			CategoryAbstractionLevel: {"snippet"},
			CategoryStatus:           {"draft", "stable"},
		}
		got := CheckAdvisories(tags)
		assert.Len(t, got, 2)
		assert.Equal(t, AdvisoryMultipleValues, got[0].Kind)
		assert.Equal(t, CategoryComplexity, got[0].Category)
		assert.Equal(t, CategoryStatus, got[1].Category)
	})
}
