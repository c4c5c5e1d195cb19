package main

import (
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagSet(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantRatio bool
		wantSeed  bool
	}{
		{"nothing given", nil, false, false},
		{"explicit zero seed", []string{"-seed", "0"}, false, true},
		{"explicit zero ratio", []string{"-ratio=0"}, true, false},
		{"both", []string{"-ratio", "3", "-seed", "9"}, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet("negatives", flag.ContinueOnError)
			fs.SetOutput(io.Discard)
			fs.Int("ratio", 0, "")
			fs.Uint64("seed", 0, "")
			require.NoError(t, fs.Parse(tt.args))

			assert.Equal(t, tt.wantRatio, flagSet(fs, "ratio"))
			assert.Equal(t, tt.wantSeed, flagSet(fs, "seed"))
		})
	}
}
