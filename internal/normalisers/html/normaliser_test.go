package html

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/taskdex/internal/core/domain"
)

func TestSupportedFormats(t *testing.T) {
	assert.Equal(t, []domain.ContentFormat{domain.ContentFormatHTML}, New().SupportedFormats())
}

func TestNormalise(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty", "", ""},
		{"paragraphs", "<p>Deploy steps</p><p>Rollback plan</p>", "Deploy steps\nRollback plan"},
		{"inline tags", "<p>Run <strong>make</strong> <em>deploy</em></p>", "Run make deploy"},
		{"entities", "<p>Q&amp;A &lt;draft&gt; &quot;v2&quot;</p>", `Q&A <draft> "v2"`},
		{"line breaks", "first<br>second<br/>third<hr />fourth", "first\nsecond\nthird\nfourth"},
		{"scripts and styles", "<style>p{color:red}</style><script>alert(1)</script><p>Visible</p>", "Visible"},
		{"head and comments", "<html><head><title>T</title></head><body><!-- hidden -->Body</body></html>", "Body"},
		{"lists", "<ul><li>one</li><li>two</li></ul>", "one\ntwo"},
		{"table cells", "<table><tr><td>a</td><td>b</td></tr></table>", "a\nb"},
		{"svg", "<svg><text>icon</text></svg>Label", "Label"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New().Normalise(context.Background(), tt.body)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
