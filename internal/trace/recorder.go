package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/cubeof2/jenness-battle-simulator/internal/battle"
)

// Recorder writes battle turns as JSON lines.
type Recorder struct {
	file *os.File
	w    *bufio.Writer
	err  error
}

// Create truncates or creates the file at path.
func Create(path string) (*Recorder, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace file: %w", err)
	}
	return &Recorder{file: file, w: bufio.NewWriter(file)}, nil
}

// Record appends one turn. The first write error is kept and returned by Close.
func (r *Recorder) Record(turn battle.Turn) {
	if r.err != nil {
		return
	}
	data, err := json.Marshal(turn)
	if err != nil {
		r.err = err
		return
	}
	if _, err := r.w.Write(append(data, '\n')); err != nil {
		r.err = err
	}
}

// Close flushes buffered turns and closes the file.
func (r *Recorder) Close() error {
	if err := r.w.Flush(); err != nil && r.err == nil {
		r.err = err
	}
	if err := r.file.Close(); err != nil && r.err == nil {
		r.err = err
	}
	return r.err
}

// Entry is a recorded turn as read back from a trace file.
type Entry struct {
	Turn     int    `json:"turn"`
	Side     string `json:"side"`
	Actor    string `json:"actor"`
	Target   string `json:"target"`
	Friction int    `json:"friction"`
	Roll     struct {
		Total   int    `json:"total"`
		Natural int    `json:"natural"`
		Outcome string `json:"outcome"`
		Boon    int    `json:"boon"`
		Bane    int    `json:"bane"`
		DT      int    `json:"dt"`
	} `json:"roll"`
	Damage  int  `json:"damage"`
	Shifted bool `json:"shifted"`
}

// Read loads every entry of a trace file.
func Read(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace file: %w", err)
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			return nil, fmt.Errorf("failed to decode trace line %d: %w", len(entries)+1, err)
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
