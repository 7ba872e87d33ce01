package facility

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusPriorityOrder(t *testing.T) {
	// operational > under_construction > planned > suspended > shutdown > cancelled
	for i := 0; i < len(AllStatuses)-1; i++ {
		assert.Greater(t, AllStatuses[i].Priority(), AllStatuses[i+1].Priority(),
			"%s should outrank %s", AllStatuses[i], AllStatuses[i+1])
	}
}

func TestStatusUnknown(t *testing.T) {
	s := Status("decommissioning")
	assert.False(t, s.Valid())
	assert.Equal(t, 0, s.Priority())
}

func TestStatusActive(t *testing.T) {
	assert.True(t, StatusOperational.Active())
	assert.True(t, StatusUnderConstruction.Active())
	assert.False(t, StatusPlanned.Active())
	assert.False(t, StatusShutdown.Active())
}

func TestLoadBytesSortsByPriorityAscending(t *testing.T) {
	raw := []byte(`[
		{"id": "a", "name": "A", "latitude": 1, "longitude": 2, "status": "operational"},
		{"id": "b", "name": "B", "latitude": 3, "longitude": 4, "status": "cancelled"},
		{"id": "c", "name": "C", "latitude": 5, "longitude": 6, "status": "planned"}
	]`)

	records, err := LoadBytes(raw, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Higher-priority records iterate last so they paint on top.
	assert.Equal(t, "b", records[0].ID)
	assert.Equal(t, "c", records[1].ID)
	assert.Equal(t, "a", records[2].ID)
}

func TestLoadBytesDropsInvalid(t *testing.T) {
	raw := []byte(`[
		{"id": "ok", "name": "OK", "latitude": 10, "longitude": 20, "status": "operational"},
		{"id": "badlat", "name": "Bad", "latitude": 95, "longitude": 20, "status": "operational"},
		{"id": "badstatus", "name": "Bad2", "latitude": 10, "longitude": 20, "status": "exploded"},
		{"id": "", "name": "NoID", "latitude": 10, "longitude": 20, "status": "operational"}
	]`)

	records, err := LoadBytes(raw, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ok", records[0].ID)
}

func TestLoadBytesDropsMissingCoordinates(t *testing.T) {
	raw := []byte(`[
		{"id": "nolat", "name": "NoLat", "longitude": 20, "status": "operational"},
		{"id": "nolon", "name": "NoLon", "latitude": 10, "status": "operational"},
		{"id": "none", "name": "None", "status": "operational"},
		{"id": "zero", "name": "Null Island", "latitude": 0, "longitude": 0, "status": "operational"}
	]`)

	records, err := LoadBytes(raw, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, records, 1, "absent coordinates are dropped, an explicit 0,0 is kept")
	assert.Equal(t, "zero", records[0].ID)
}

func TestLoadBytesMalformed(t *testing.T) {
	_, err := LoadBytes([]byte(`{not json`), zerolog.Nop())
	require.Error(t, err)
}

func TestLoadEmbedded(t *testing.T) {
	records, err := LoadEmbedded(zerolog.Nop())
	require.NoError(t, err)
	require.NotEmpty(t, records)

	for _, r := range records {
		assert.True(t, r.Status.Valid(), "embedded record %s has invalid status", r.ID)
		assert.GreaterOrEqual(t, r.Latitude, -90.0)
		assert.LessOrEqual(t, r.Latitude, 90.0)
		assert.GreaterOrEqual(t, r.Longitude, -180.0)
		assert.LessOrEqual(t, r.Longitude, 180.0)
	}
}

func TestFilter(t *testing.T) {
	records := []Record{
		{ID: "1", Status: StatusOperational},
		{ID: "2", Status: StatusShutdown},
		{ID: "3", Status: StatusOperational},
	}
	visible := StatusSet{StatusOperational: true}

	got := Filter(records, visible)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
}

func TestAllVisible(t *testing.T) {
	set := AllVisible()
	for _, s := range AllStatuses {
		assert.True(t, set[s])
	}
}
