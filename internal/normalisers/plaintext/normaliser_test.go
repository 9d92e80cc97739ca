package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/taskdex/internal/core/domain"
)

func TestSupportedFormats(t *testing.T) {
	assert.Equal(t, []domain.ContentFormat{domain.ContentFormatText}, New().SupportedFormats())
}

func TestNormalise(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty", "", ""},
		{"unchanged", "Deploy the api", "Deploy the api"},
		{"collapses spaces and tabs", "Deploy \t  the   api", "Deploy the api"},
		{"trims lines", "  first  \n  second  ", "first\nsecond"},
		{"drops blank lines", "first\n\n\n   \nsecond", "first\nsecond"},
		{"windows line endings", "first\r\nsecond\r\n", "first\nsecond"},
		{"unicode", "Café  déploiement", "Café déploiement"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New().Normalise(context.Background(), tt.body)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
