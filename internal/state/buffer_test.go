package state

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/tailview/internal/logtail"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		buffer   []string
		res      logtail.PollResult
		maxLines int
		force    bool
		want     []string
	}{
		{
			name:     "merge partial line",
			buffer:   []string{"X", "partial"},
			res:      logtail.PollResult{NewLines: []string{"-tail", "Y"}},
			maxLines: 10,
			want:     []string{"X", "partial-tail", "Y"},
		},
		{
			name:     "terminated delta leaves empty sentinel",
			buffer:   []string{"a", ""},
			res:      logtail.PollResult{NewLines: []string{"b", ""}},
			maxLines: 10,
			want:     []string{"a", "b", ""},
		},
		{
			name:     "empty buffer appends",
			buffer:   nil,
			res:      logtail.PollResult{NewLines: []string{"a", "b"}},
			maxLines: 10,
			want:     []string{"a", "b"},
		},
		{
			name:     "no new lines",
			buffer:   []string{"a"},
			res:      logtail.PollResult{},
			maxLines: 10,
			want:     []string{"a"},
		},
		{
			name:     "trim oldest",
			buffer:   []string{"1", "2", "3"},
			res:      logtail.PollResult{NewLines: []string{"", "4", "5"}},
			maxLines: 3,
			want:     []string{"3", "4", "5"},
		},
		{
			name:     "truncated replaces",
			buffer:   []string{"old", "lines"},
			res:      logtail.PollResult{NewLines: []string{"new"}, Truncated: true},
			maxLines: 10,
			want:     []string{"new"},
		},
		{
			name:     "force replaces and trims",
			buffer:   []string{"old"},
			res:      logtail.PollResult{NewLines: []string{"a", "b", "c"}},
			maxLines: 2,
			force:    true,
			want:     []string{"b", "c"},
		},
		{
			name:     "force with nothing clears",
			buffer:   []string{"old"},
			res:      logtail.PollResult{},
			maxLines: 2,
			force:    true,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Apply(tt.buffer, tt.res, tt.maxLines, tt.force))
		})
	}
}

func TestApplyDoesNotAliasInput(t *testing.T) {
	buffer := make([]string, 2, 8)
	buffer[0], buffer[1] = "a", "b"

	out := Apply(buffer, logtail.PollResult{NewLines: []string{"c", "d"}}, 10, false)
	require.Equal(t, []string{"a", "bc", "d"}, out)
	assert.Equal(t, []string{"a", "b"}, buffer)

	out[0] = "changed"
	assert.Equal(t, "a", buffer[0])
	assert.Equal(t, "", buffer[:3][2])
}

func TestApplyBoundHolds(t *testing.T) {
	var buffer []string
	for i := 0; i < 200; i++ {
		res := logtail.PollResult{NewLines: []string{fmt.Sprintf("line %d", i), ""}}
		buffer = Apply(buffer, res, 7, false)
		require.LessOrEqual(t, len(buffer), 7)
	}
	assert.Equal(t, "line 199", buffer[len(buffer)-2])
}

func TestApplyRebuildsStreamAcrossSplits(t *testing.T) {
	stream := "first line\nsecond\n\nfourth has more\nfifth"
	var buffer []string
	for i := 0; i < len(stream); i += 3 {
		chunk := stream[i:min(i+3, len(stream))]
		buffer = Apply(buffer, logtail.PollResult{NewLines: logtail.SplitLines(chunk)}, 100, false)
	}
	assert.Equal(t, stream, strings.Join(buffer, "\n"))
}

func TestTailStateLifecycle(t *testing.T) {
	ts := NewTailState("app.log", 3)
	assert.Equal(t, int64(0), ts.Offset)

	ts.Apply(logtail.PollResult{NewLines: []string{"a", "b", "c"}, NewOffset: 6, Rescanned: true}, true)
	assert.Equal(t, []string{"a", "b", "c"}, ts.Lines())
	assert.Equal(t, "a\nb\nc", ts.Text())
	assert.Equal(t, int64(6), ts.Offset)

	ts.SetMaxLines(2)
	assert.Equal(t, []string{"b", "c"}, ts.Buffer)
	assert.Equal(t, int64(0), ts.Offset)

	ts.Reset()
	assert.Empty(t, ts.Buffer)
	assert.Equal(t, int64(0), ts.Offset)
	assert.Equal(t, 2, ts.MaxLines)
}
