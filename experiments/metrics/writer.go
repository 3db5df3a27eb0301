package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// AgentConfig describes one participant of an experiment match-up.
type AgentConfig struct {
	ID       int
	MaxDepth int
	Duration time.Duration // Per-move time limit, zero for none
	Radius   int
	TieBreak string // "random" or "first"
	Baseline bool   // Sampling agent instead of minimax
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID, plays Black
	Agent2 int // AgentConfig.ID, plays White
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates <outputDir>/<name>/<timestamp> and writes every file there.
func NewWriter(outputDir, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(outputDir, name, timestamp)
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
	header := []string{"id", "max_depth", "duration", "radius", "tie_break", "baseline"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			strconv.Itoa(config.MaxDepth),
			config.Duration.String(),
			strconv.Itoa(config.Radius),
			config.TieBreak,
			strconv.FormatBool(config.Baseline),
		})
	}
	return w.write("agent_configs.csv", "agent config", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent1", "agent2", "starting_player", "winner", "total_moves", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			record.StartingPlayer.String(),
			record.Winner.String(),
			strconv.Itoa(record.TotalMoves),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	return w.write("game_records.csv", "game record", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "row", "col", "max_depth", "completed_depth", "nodes", "aborted", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player.String(),
			strconv.Itoa(record.Move.Row),
			strconv.Itoa(record.Move.Col),
			strconv.Itoa(record.MaxDepth),
			strconv.Itoa(record.CompletedDepth),
			strconv.Itoa(record.Nodes),
			strconv.FormatBool(record.Aborted),
			record.Duration.String(),
		})
	}
	return w.write("move_records.csv", "move record", header, rows)
}

func (w *Writer) write(filename, kind string, header []string, rows [][]string) (err error) {
	path := filepath.Join(w.baseDir, filename)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s file: %w", kind, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s file: %w", kind, cerr)
		}
	}()

	writer := csv.NewWriter(f)
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", kind, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", kind, err)
	}
	return nil
}
