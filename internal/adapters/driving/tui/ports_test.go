package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/taskdex/internal/core/domain"
	"github.com/custodia-labs/taskdex/internal/core/services"
)

func TestNewPorts(t *testing.T) {
	search := services.NewSearchService(domain.DefaultSearchSettings())

	p := NewPorts(search, nil, nil)

	assert.Equal(t, search, p.Search)
	assert.Nil(t, p.Indexer)
	assert.Nil(t, p.Settings)
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ports   *Ports
		wantErr error
	}{
		{"nil ports", nil, ErrInvalidPorts},
		{"missing search", &Ports{}, ErrMissingSearchService},
		{"search only", &Ports{Search: services.NewSearchService(domain.DefaultSearchSettings())}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
