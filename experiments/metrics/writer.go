package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type GenerationRecord struct {
	Generation    int
	Winner        int // agent index
	WinnerScore   int
	WinnerWeights [5]float64
	GameMetric
}

type AgentRecord struct {
	Generation int
	Agent      int
	Color      string
	Weights    [5]float64
	Score      int
}

type MoveRecord struct {
	Game int // one game per generation during training
	MoveMetric
}

type AgentConfig struct {
	ID           int
	Goroutines   int
	MobilityFrom int
}

type GameRecord struct {
	ID     int
	Config int // AgentConfig.ID
	GameMetric
}

type Writer struct {
	baseDir string
}

func NewWriter(root string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, timestamp)
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

func (w *Writer) WriteGenerations(records []GenerationRecord) error {
	header := []string{"generation", "winner", "winner_score", "scores", "weights", "turns", "commits", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Generation),
			strconv.Itoa(record.Winner),
			strconv.Itoa(record.WinnerScore),
			formatInts(record.Scores[:]),
			formatFloats(record.WinnerWeights[:]),
			strconv.Itoa(record.Turns),
			strconv.Itoa(record.Commits),
			record.Duration.String(),
		})
	}
	return w.write("generations.csv", header, rows)
}

func (w *Writer) WriteAgents(records []AgentRecord) error {
	header := []string{"generation", "agent", "color", "weights", "score"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Generation),
			strconv.Itoa(record.Agent),
			record.Color,
			formatFloats(record.Weights[:]),
			strconv.Itoa(record.Score),
		})
	}
	return w.write("agents.csv", header, rows)
}

func (w *Writer) WriteMoves(records []MoveRecord) error {
	header := []string{"game", "turn", "color", "goroutines", "candidates", "speculations", "mobility", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Turn),
			record.Color,
			strconv.Itoa(record.Goroutines),
			strconv.Itoa(record.Candidates),
			strconv.Itoa(record.Speculations),
			strconv.FormatBool(record.Mobility),
			record.Duration.String(),
		})
	}
	return w.write("moves.csv", header, rows)
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "goroutines", "mobility_from"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			strconv.Itoa(config.Goroutines),
			strconv.Itoa(config.MobilityFrom),
		})
	}
	return w.write("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "config", "winner", "scores", "turns", "commits", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Config),
			record.Winner,
			formatInts(record.Scores[:]),
			strconv.Itoa(record.Turns),
			strconv.Itoa(record.Commits),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}

func formatInts(values []int) string {
	s := ""
	for i, v := range values {
		if i > 0 {
			s += " "
		}
		s += strconv.Itoa(v)
	}
	return s
}

func formatFloats(values []float64) string {
	s := ""
	for i, v := range values {
		if i > 0 {
			s += " "
		}
		s += strconv.FormatFloat(v, 'f', 4, 64)
	}
	return s
}
