package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type AgentConfig struct {
	ID     int
	Config string // Agent config string
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID playing as Player1
	Agent2 int // AgentConfig.ID playing as Player2
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// PruningRecord is one search of the pruning experiment.
type PruningRecord struct {
	Depth     int
	Position  int
	Kind      string
	Action    string
	Value     float64
	Visited   int64
	Generated int64
	Evaluated int64
	Cutoffs   int64
	Duration  time.Duration
}

type Writer struct {
	baseDir string
}

// NewWriter creates root/name/<timestamp> and writes CSV files into it.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Config,
		})
	}
	return w.write("agent_configs", []string{"id", "config"}, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent1", "agent2", "starting_player", "winner", "start_time", "end_time", "duration", "total_moves"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			record.StartingPlayer.String(),
			record.Winner.String(),
			record.StartTime.Format(time.RFC3339Nano),
			record.EndTime.Format(time.RFC3339Nano),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	return w.write("game_records", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "action", "depth", "duration", "visited", "generated", "evaluated", "terminal", "cutoffs"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player.String(),
			record.Action,
			strconv.Itoa(record.Depth),
			record.Duration.String(),
			strconv.FormatInt(record.Visited, 10),
			strconv.FormatInt(record.Generated, 10),
			strconv.FormatInt(record.Evaluated, 10),
			strconv.FormatInt(record.Terminal, 10),
			strconv.FormatInt(record.Cutoffs, 10),
		})
	}
	return w.write("move_records", header, rows)
}

func (w *Writer) WritePruningRecords(records []PruningRecord) error {
	header := []string{"depth", "position", "kind", "action", "value", "visited", "generated", "evaluated", "cutoffs", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Depth),
			strconv.Itoa(record.Position),
			record.Kind,
			record.Action,
			strconv.FormatFloat(record.Value, 'g', -1, 64),
			strconv.FormatInt(record.Visited, 10),
			strconv.FormatInt(record.Generated, 10),
			strconv.FormatInt(record.Evaluated, 10),
			strconv.FormatInt(record.Cutoffs, 10),
			record.Duration.String(),
		})
	}
	return w.write("pruning_records", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name+".csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s file: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}
