package inngest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeImportRequest(t *testing.T) {
	t.Run("reads the event data", func(t *testing.T) {
		event := map[string]any{
			"name": EventImportRequested,
			"data": map[string]any{"days": 7, "dry_run": true},
		}
		req, err := decodeImportRequest(event)
		require.NoError(t, err)
		assert.Equal(t, ImportRequest{Days: 7, DryRun: true}, req)
	})

	t.Run("missing data uses the defaults", func(t *testing.T) {
		req, err := decodeImportRequest(map[string]any{"name": EventImportRequested})
		require.NoError(t, err)
		assert.Equal(t, ImportRequest{}, req)
	})

	t.Run("malformed data", func(t *testing.T) {
		_, err := decodeImportRequest(map[string]any{"data": map[string]any{"days": "seven"}})
		assert.Error(t, err)
	})
}
