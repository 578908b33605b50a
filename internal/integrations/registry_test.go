package integrations_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plantillas-system/internal/integrations"
	"plantillas-system/internal/integrations/mock"
)

func TestRegistry_ActiveProvider(t *testing.T) {
	r := integrations.NewRegistry()

	_, err := r.GetActive()
	require.Error(t, err)

	require.NoError(t, r.Register(mock.NewMockProvider()))
	require.Error(t, r.Register(mock.NewMockProvider()), "duplicate names are rejected")

	require.Error(t, r.SetActive("sharepoint"))
	require.NoError(t, r.SetActive(mock.ProviderName))

	p, err := r.GetActive()
	require.NoError(t, err)
	assert.Equal(t, mock.ProviderName, p.Name())
	assert.Equal(t, []string{mock.ProviderName}, r.Names())
}
