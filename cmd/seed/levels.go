package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"promptquest/internal/model"
)

var csvColumns = []string{"category", "name", "prompt", "difficulty", "hints", "user", "assistant"}

type promptRow struct {
	category   string
	name       string
	prompt     string
	difficulty int
	hints      []string
	user       string
	assistant  string
}

// parseLevels reads the authoring CSV, orders rows by difficulty (ties keep file order),
// numbers them from 1 and applies the threshold policy.
func parseLevels(r io.Reader, policy model.ThresholdPolicy) ([]model.Level, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var rows []promptRow
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if blank(rec) {
			continue
		}

		row, err := toRow(rec, idx)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].difficulty < rows[j].difficulty })

	levels := make([]model.Level, 0, len(rows))
	for i, row := range rows {
		levels = append(levels, model.Level{
			Number:        i + 1,
			Category:      row.category,
			Name:          row.name,
			Difficulty:    row.difficulty,
			Conversation:  model.NewConversation(row.prompt, row.user, row.assistant),
			Hints:         row.hints,
			PassThreshold: policy.Threshold(row.difficulty),
		})
	}

	if err := model.ValidateSequence(levels); err != nil {
		return nil, err
	}
	return levels, nil
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range csvColumns {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("missing column %q", c)
		}
	}
	return idx, nil
}

func toRow(rec []string, idx map[string]int) (promptRow, error) {
	get := func(col string) string {
		i := idx[col]
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	difficulty, err := strconv.Atoi(get("difficulty"))
	if err != nil {
		return promptRow{}, fmt.Errorf("difficulty %q is not an integer", get("difficulty"))
	}

	return promptRow{
		category:   get("category"),
		name:       get("name"),
		prompt:     get("prompt"),
		difficulty: difficulty,
		hints:      parseHints(get("hints")),
		user:       get("user"),
		assistant:  get("assistant"),
	}, nil
}

// parseHints accepts a JSON array of strings; anything else is a single hint
func parseHints(raw string) []string {
	var hints []string
	if err := json.Unmarshal([]byte(raw), &hints); err != nil {
		if raw == "" {
			return nil
		}
		return []string{raw}
	}

	out := hints[:0]
	for _, h := range hints {
		if h = strings.TrimSpace(h); h != "" {
			out = append(out, h)
		}
	}
	return out
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
