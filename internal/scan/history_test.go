//nolint:testpackage // White-box tests require access to unexported identifiers in this package.
package scan

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_TracksCompletedScansOnce(t *testing.T) {
	store := NewStore()
	h := NewHistory(3)
	stop := h.Track(store)
	defer stop()

	for i := range 5 {
		store.StartScan()
		a := sampleAppraisal()
		a.ID = fmt.Sprintf("artifact-%d", i)
		require.NoError(t, store.CompleteScan(a))
		store.ShowResults()
		store.HideResults()
	}
	store.StartScan()
	store.FailScan("x")

	entries := h.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "artifact-4", entries[0].ID)
	assert.Equal(t, "artifact-2", entries[2].ID)
}

func TestHistory_DefaultLimit(t *testing.T) {
	h := NewHistory(0)
	for range DefaultHistoryLimit + 5 {
		h.Add(sampleAppraisal())
	}
	assert.Equal(t, DefaultHistoryLimit, h.Len())
}
