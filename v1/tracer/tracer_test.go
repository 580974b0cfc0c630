package tracer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_DisabledIsInert(t *testing.T) {
	tr, err := NewClient(Config{})
	require.NoError(t, err)
	require.NotNil(t, tr)

	assert.NoError(t, tr.Shutdown(context.Background()))
}

func TestNewClient_EnabledRequiresEndpoint(t *testing.T) {
	_, err := NewClient(Config{Enabled: true})
	assert.Error(t, err)
}
