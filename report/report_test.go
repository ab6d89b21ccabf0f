package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/zqzqsb/rastreador/pkg/catalog"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		counts map[uint64]uint64
		want   FrequencyTable
	}{
		{
			name: "empty",
			want: FrequencyTable{},
		},
		{
			name:   "by count",
			counts: map[uint64]uint64{0: 5, 1: 2, 2: 1},
			want: FrequencyTable{
				{Name: "read", Number: 0, Count: 5},
				{Name: "write", Number: 1, Count: 2},
				{Name: "open", Number: 2, Count: 1},
			},
		},
		{
			name:   "ties by number",
			counts: map[uint64]uint64{231: 1, 59: 1, 9: 4, 3: 4},
			want: FrequencyTable{
				{Name: "close", Number: 3, Count: 4},
				{Name: "mmap", Number: 9, Count: 4},
				{Name: "execve", Number: 59, Count: 1},
				{Name: "exit_group", Number: 231, Count: 1},
			},
		},
		{
			name:   "unknown number",
			counts: map[uint64]uint64{999: 3},
			want:   FrequencyTable{{Name: "sys_999", Number: 999, Count: 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.counts, catalog.Curated())
			assert.Equal(t, tt.want, got)

			var sum uint64
			for _, n := range tt.counts {
				sum += n
			}
			assert.Equal(t, sum, got.Total())
		})
	}
}

func TestWriteTable(t *testing.T) {
	table := Summarize(map[uint64]uint64{0: 5, 1: 2, 2: 1}, catalog.Curated())

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, table))
	assert.Equal(t, "System Call  Veces\n"+
		"read         5\n"+
		"write        2\n"+
		"open         1\n", buf.String())
}

func TestWriteTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, Summarize(nil, catalog.Curated())))
	assert.Equal(t, "System Call  Veces\n", buf.String())
}

func TestWriteStructured(t *testing.T) {
	table := Summarize(map[uint64]uint64{0: 5, 1: 2, 2: 1}, catalog.Curated())

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, table, FormatJSON))

		var got FrequencyTable
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, table, got)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, table, FormatYAML))
		assert.Contains(t, buf.String(), "- name: read\n  number: 0\n  count: 5\n")

		var got FrequencyTable
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, table, got)
	})

	t.Run("empty json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, nil, FormatJSON))
		assert.Equal(t, "[]\n", buf.String())
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Error(t, Write(&bytes.Buffer{}, nil, Format("xml")))
}
