package metrics

import (
	"cmp"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"
)

type GameRecord struct {
	ID    int
	Agent int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

func SortGameRecords(records []GameRecord) {
	slices.SortFunc(records, func(a, b GameRecord) int {
		return cmp.Compare(a.ID, b.ID)
	})
}

func SortMoveRecords(records []MoveRecord) {
	slices.SortFunc(records, func(a, b MoveRecord) int {
		return cmp.Or(cmp.Compare(a.Game, b.Game), cmp.Compare(a.Step, b.Step))
	})
}

type Writer struct {
	baseDir string
}

// NewWriter creates baseDir/name/<timestamp> for the records of one run.
func NewWriter(baseDir, name string, now time.Time) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := now.UTC().Format("20060102T150405Z")
	dir := filepath.Join(baseDir, name, timestamp)
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: dir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "nodes", "duration", "mode", "previews"}
	return w.write("agent_configs.csv", "agent configs", header, len(configs), func(i int) []string {
		config := configs[i]
		return []string{
			strconv.Itoa(config.ID),
			strconv.Itoa(config.Nodes),
			config.Duration.String(),
			config.Mode,
			strconv.Itoa(config.Previews),
		}
	})
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent", "seed", "start_time", "end_time", "duration", "pieces", "lines_cleared", "topped_out"}
	return w.write("game_records.csv", "game records", header, len(records), func(i int) []string {
		record := records[i]
		return []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent),
			strconv.FormatUint(record.Seed, 10),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.Pieces),
			strconv.Itoa(record.LinesCleared),
			strconv.FormatBool(record.ToppedOut),
		}
	})
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{
		"game", "step", "piece", "hold", "soft_dropped", "lines_cleared", "duration", "expansions",
		"new_nodes", "tree_nodes", "depth", "evaluation", "is_root_dead", "is_tree_reused",
	}
	return w.write("move_records.csv", "move records", header, len(records), func(i int) []string {
		record := records[i]
		return []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Piece,
			strconv.FormatBool(record.Hold),
			strconv.FormatBool(record.SoftDropped),
			strconv.Itoa(record.LinesCleared),
			record.Duration.String(),
			strconv.Itoa(record.Expansions),
			strconv.Itoa(record.NewNodes),
			strconv.Itoa(record.TreeNodes),
			strconv.Itoa(record.Depth),
			strconv.Itoa(int(record.Evaluation)),
			strconv.FormatBool(record.IsRootDead),
			strconv.FormatBool(record.IsTreeReused),
		}
	})
}

func (w *Writer) write(file, what string, header []string, n int, row func(i int) []string) error {
	// Create a file
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s file: %w", what, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", what, err)
	}

	// Write each row
	for i := 0; i < n; i++ {
		err = writer.Write(row(i))
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", what, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", what, err)
	}
	return nil
}
