package facility

import (
	"embed"
	"fmt"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

//go:embed data/facilities.json
var embeddedData embed.FS

var validate = validator.New()

// Load reads a facility dataset from disk. See LoadBytes for the filtering
// and ordering contract.
func Load(path string, log zerolog.Logger) ([]Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return LoadBytes(raw, log)
}

// LoadEmbedded returns the dataset shipped with the binary.
func LoadEmbedded(log zerolog.Logger) ([]Record, error) {
	raw, err := embeddedData.ReadFile("data/facilities.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded dataset: %w", err)
	}
	return LoadBytes(raw, log)
}

// recordPayload wraps Record with pointer coordinates so a dataset entry
// that omits latitude or longitude can be told apart from an explicit 0,0.
type recordPayload struct {
	Record
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// LoadBytes decodes and validates a JSON facility dataset. Records that
// fail validation (out-of-range coordinates, missing identity) are dropped
// with a warning rather than failing the load; records with an unknown
// status or without coordinates are dropped too. The result is sorted
// ascending by status priority so that higher-priority records iterate last
// and paint on top of co-located lower-priority ones.
func LoadBytes(raw []byte, log zerolog.Logger) ([]Record, error) {
	var payload []recordPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	kept := make([]Record, 0, len(payload))
	for _, p := range payload {
		if p.Latitude == nil || p.Longitude == nil {
			log.Warn().Str("id", p.ID).Str("name", p.Name).
				Msg("dropping facility without coordinates")
			continue
		}
		r := p.Record
		r.Latitude = *p.Latitude
		r.Longitude = *p.Longitude
		if err := validate.Struct(r); err != nil {
			log.Warn().Str("id", r.ID).Str("name", r.Name).Err(err).
				Msg("dropping invalid facility record")
			continue
		}
		if !r.Status.Valid() {
			log.Warn().Str("id", r.ID).Str("status", string(r.Status)).
				Msg("dropping facility with unknown status")
			continue
		}
		kept = append(kept, r)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Status.Priority() < kept[j].Status.Priority()
	})

	log.Info().Int("total", len(payload)).Int("kept", len(kept)).
		Msg("facility dataset loaded")
	return kept, nil
}
