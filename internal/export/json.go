package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/digirain/internal/rain"
	"github.com/san-kum/digirain/internal/storage"
)

type ExportData struct {
	ID      string             `json:"id"`
	Seed    int64              `json:"seed"`
	Size    int                `json:"size"`
	Charset string             `json:"charset"`
	Ticks   int                `json:"ticks"`
	Series  []rain.TickStats   `json:"series"`
	Grid    [][]string         `json:"grid,omitempty"`
	Metrics map[string]float64 `json:"metrics"`
}

func newExportData(meta *storage.RunMetadata, series []rain.TickStats, grid [][]string) ExportData {
	return ExportData{
		ID:      meta.ID,
		Seed:    meta.Seed,
		Size:    meta.Size,
		Charset: meta.Charset,
		Ticks:   len(series),
		Series:  series,
		Grid:    grid,
		Metrics: meta.Metrics,
	}
}

func ExportJSON(path string, meta *storage.RunMetadata, series []rain.TickStats, grid [][]string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	return WriteJSON(file, meta, series, grid)
}

func WriteJSON(w io.Writer, meta *storage.RunMetadata, series []rain.TickStats, grid [][]string) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExportData(meta, series, grid))
}
