package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/digirain/internal/rain"
	"github.com/san-kum/digirain/internal/sim"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "population.csv"
	gridFile     = "grid.txt"
)

var seriesHeader = []string{"frame", "active", "content", "erasers", "spawned", "expired", "writes"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Preset    string             `json:"preset,omitempty"`
	Charset   string             `json:"charset"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Size      int                `json:"size"`
	Ticks     int                `json:"ticks"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a run to its own directory and returns the run id. Seed, Size,
// Ticks and Metrics are taken from result; the rest of meta is kept as given.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("rain_%d_%d", result.Seed, now.UnixNano())
	meta.Timestamp = now
	meta.Seed = result.Seed
	meta.Size = result.Size
	meta.Ticks = len(result.Series)
	meta.Metrics = result.Metrics

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSeries(filepath.Join(runDir, seriesFile), result.Series); err != nil {
		return "", err
	}
	if result.Grid != nil {
		if err := os.WriteFile(filepath.Join(runDir, gridFile), []byte(result.Grid.String()+"\n"), 0644); err != nil {
			return "", err
		}
	}

	return meta.ID, nil
}

// saveFile creates path and hands it to write. The file is always closed and
// the first error, including one from Close, is returned.
func saveFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	return closeAfter(f, write(f))
}

func closeAfter(c io.Closer, err error) error {
	if cerr := c.Close(); err == nil {
		err = cerr
	}
	return err
}

func writeJSON(path string, v any) error {
	return saveFile(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	})
}

func writeSeries(path string, series []rain.TickStats) error {
	return saveFile(path, func(f io.Writer) error {
		return encodeSeries(f, series)
	})
}

func encodeSeries(f io.Writer, series []rain.TickStats) error {
	w := csv.NewWriter(f)
	if err := w.Write(seriesHeader); err != nil {
		return err
	}
	for _, st := range series {
		row := []string{
			strconv.FormatInt(st.Frame, 10),
			strconv.Itoa(st.Active),
			strconv.Itoa(st.Content),
			strconv.Itoa(st.Erasers),
			strconv.Itoa(st.Spawned),
			strconv.Itoa(st.Expired),
			strconv.Itoa(st.Writes),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

// LoadSeries reads the per-tick counters of a run. Malformed rows are skipped.
func (s *Store) LoadSeries(runID string) ([]rain.TickStats, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []rain.TickStats{}, nil
	}

	series := make([]rain.TickStats, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < len(seriesHeader) {
			continue
		}

		var vals [7]int64
		ok := true
		for i := range vals {
			v, err := strconv.ParseInt(record[i], 10, 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}

		series = append(series, rain.TickStats{
			Frame:   vals[0],
			Active:  int(vals[1]),
			Content: int(vals[2]),
			Erasers: int(vals[3]),
			Spawned: int(vals[4]),
			Expired: int(vals[5]),
			Writes:  int(vals[6]),
		})
	}

	return series, nil
}

// LoadGrid returns the final grid of a run as rows of glyphs.
func (s *Store) LoadGrid(runID string) ([][]string, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, gridFile))
	if err != nil {
		return nil, err
	}

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	rows := make([][]string, len(lines))
	for i, line := range lines {
		row := make([]string, 0, len(line))
		for _, r := range line {
			row = append(row, string(r))
		}
		rows[i] = row
	}
	return rows, nil
}
