package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Writer stores experiment records as CSV files under a per-run directory
// named by the experiment and a timestamp.
type Writer struct {
	baseDir string
}

func NewWriter(experiment string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join("experiments", experiment, timestamp)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return &Writer{baseDir: baseDir}, nil
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	return w.writeCSV("agent_configs.csv",
		[]string{"id", "kind", "episodes", "rollouts_per_node", "rollout_depth"},
		len(configs), func(i int) []string {
			c := configs[i]
			return []string{
				strconv.Itoa(c.ID),
				string(c.Kind),
				strconv.Itoa(c.Episodes),
				strconv.Itoa(c.RolloutsPerNode),
				strconv.Itoa(c.RolloutDepth),
			}
		})
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	return w.writeCSV("game_records.csv",
		[]string{"id", "agent1", "agent2", "winner", "turns", "pool_empty", "start_time", "end_time", "duration"},
		len(records), func(i int) []string {
			r := records[i]
			return []string{
				strconv.Itoa(r.ID),
				strconv.Itoa(r.Agent1),
				strconv.Itoa(r.Agent2),
				strconv.Itoa(r.Winner),
				strconv.Itoa(r.Turns),
				strconv.FormatBool(r.PoolEmpty),
				r.StartTime.Format(time.RFC3339),
				r.EndTime.Format(time.RFC3339),
				r.Duration.String(),
			}
		})
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	return w.writeCSV("move_records.csv",
		[]string{"game", "step", "seat", "duration", "episodes", "rollouts", "full_playouts", "pruned", "tree_reused"},
		len(records), func(i int) []string {
			r := records[i]
			return []string{
				strconv.Itoa(r.Game),
				strconv.Itoa(r.Step),
				strconv.Itoa(r.Seat),
				r.Duration.String(),
				strconv.Itoa(r.Episodes),
				strconv.Itoa(r.Rollouts),
				strconv.Itoa(r.FullPlayouts),
				strconv.Itoa(r.Pruned),
				strconv.FormatBool(r.TreeReused),
			}
		})
}

func (w *Writer) writeCSV(name string, header []string, rows int, row func(i int) []string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	for i := 0; i < rows; i++ {
		if err := writer.Write(row(i)); err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
	}
	return nil
}

// BaseDir is the directory this run's files land in.
func (w *Writer) BaseDir() string {
	return w.baseDir
}
