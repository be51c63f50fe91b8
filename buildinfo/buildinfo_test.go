package buildinfo

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionDefaultsToSentinel(t *testing.T) {
	assert.Equal(t, "SELFBUILD", Version, "ldflags-injected builds override this")
}

func TestReportRoundTrips(t *testing.T) {
	r := NewReport("nhls-ap", 7, 4096, 4)

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var got Report
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, r, got, "round trip should reproduce the original report")
	assert.Equal(t, "SELFBUILD", got.GitDescribe, "sentinel since GitDescribe was never injected")
}

func TestPrintEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewReport("nhls-ap", 3, 128, 1)
	require.NoError(t, Print(&buf, r))
	assert.Contains(t, buf.String(), `"name": "nhls-ap"`)
}
