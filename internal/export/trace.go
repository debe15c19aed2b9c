package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/san-kum/ballsim/internal/sim"
)

// ErrUnknownFormat indicates a trace path with an unsupported extension.
var ErrUnknownFormat = errors.New("export: unknown trace format")

type Trace struct {
	Scene     string             `json:"scene"`
	Frames    int                `json:"frames"`
	Metrics   map[string]float64 `json:"metrics"`
	Snapshots []sim.Snapshot     `json:"snapshots"`
}

var csvHeader = []string{"frame", "id", "x", "y", "vx", "vy", "radius", "color"}

// WriteCSV writes one row per ball per snapshot.
func WriteCSV(w io.Writer, snaps []sim.Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, s := range snaps {
		frame := strconv.FormatUint(s.Frame, 10)
		for _, b := range s.Balls {
			row := []string{
				frame,
				strconv.Itoa(b.ID),
				strconv.FormatFloat(b.X, 'g', -1, 64),
				strconv.FormatFloat(b.Y, 'g', -1, 64),
				strconv.FormatFloat(b.VX, 'g', -1, 64),
				strconv.FormatFloat(b.VY, 'g', -1, 64),
				strconv.FormatFloat(b.Radius, 'g', -1, 64),
				b.Color,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func WriteJSON(w io.Writer, scene string, result *sim.Result) error {
	data := Trace{
		Scene:     scene,
		Frames:    result.StepsTaken,
		Metrics:   result.Metrics,
		Snapshots: result.Snapshots,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// WriteTrace picks the format from the file extension (.csv or .json).
func WriteTrace(path, scene string, result *sim.Result) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".csv" && ext != ".json" {
		return fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	return writeTrace(file, ext, scene, result)
}

// writeTrace closes w and reports the close error if the write succeeded.
func writeTrace(w io.WriteCloser, ext, scene string, result *sim.Result) (err error) {
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()

	if ext == ".csv" {
		return WriteCSV(w, result.Snapshots)
	}
	return WriteJSON(w, scene, result)
}

func WriteSVG(path string, svg string) error {
	return os.WriteFile(path, []byte(svg), 0644)
}
