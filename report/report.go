// Package report turns syscall counts into the frequency table printed at
// the end of a trace.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/zqzqsb/rastreador/pkg/catalog"
)

// Table header
const (
	HeaderName  = "System Call"
	HeaderCount = "Veces"
)

// Format of the rendered report
type Format string

// Supported formats
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a format name, empty meaning table
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown report format %q", s)
	}
}

// Row is one syscall of the frequency table
type Row struct {
	Name   string `json:"name" yaml:"name"`
	Number uint64 `json:"number" yaml:"number"`
	Count  uint64 `json:"count" yaml:"count"`
}

// FrequencyTable is sorted by count descending, ties by ascending number
type FrequencyTable []Row

// Summarize builds the frequency table of counts, naming rows with c
func Summarize(counts map[uint64]uint64, c catalog.Catalog) FrequencyTable {
	t := make(FrequencyTable, 0, len(counts))
	for nr, n := range counts {
		t = append(t, Row{Name: c.Name(nr), Number: nr, Count: n})
	}
	sort.Slice(t, func(i, j int) bool {
		if t[i].Count != t[j].Count {
			return t[i].Count > t[j].Count
		}
		return t[i].Number < t[j].Number
	})
	return t
}

// Total is the number of observed syscall entries
func (t FrequencyTable) Total() uint64 {
	var sum uint64
	for _, r := range t {
		sum += r.Count
	}
	return sum
}

// WriteTable renders the two column table
func WriteTable(w io.Writer, t FrequencyTable) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\n", HeaderName, HeaderCount)
	for _, r := range t {
		fmt.Fprintf(tw, "%s\t%d\n", r.Name, r.Count)
	}
	return tw.Flush()
}

// WriteJSON renders the table as a JSON array
func WriteJSON(w io.Writer, t FrequencyTable) error {
	if t == nil {
		t = FrequencyTable{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

// WriteYAML renders the table as a YAML sequence
func WriteYAML(w io.Writer, t FrequencyTable) error {
	if t == nil {
		t = FrequencyTable{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return err
	}
	return enc.Close()
}

// Write renders the table in the given format
func Write(w io.Writer, t FrequencyTable, f Format) error {
	switch f {
	case FormatTable, "":
		return WriteTable(w, t)
	case FormatJSON:
		return WriteJSON(w, t)
	case FormatYAML:
		return WriteYAML(w, t)
	default:
		return fmt.Errorf("unknown report format %q", f)
	}
}
