package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaixaStatus_JSON(t *testing.T) {
	b, err := json.Marshal(CaixaStatusFechado)
	require.NoError(t, err)
	assert.Equal(t, `"fechado"`, string(b))

	var s CaixaStatus
	require.NoError(t, json.Unmarshal([]byte(`"fechado"`), &s))
	assert.Equal(t, CaixaStatusFechado, s)

	require.NoError(t, json.Unmarshal([]byte(`0`), &s))
	assert.Equal(t, CaixaStatusAberto, s)
}

func TestCaixaStatus_Scan(t *testing.T) {
	var s CaixaStatus
	require.NoError(t, s.Scan(int64(1)))
	assert.Equal(t, CaixaStatusFechado, s)

	require.NoError(t, s.Scan(nil))
	assert.Equal(t, CaixaStatusAberto, s)

	v, err := CaixaStatusFechado.Value()
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole(RoleAdmin))
	assert.True(t, IsValidRole(RoleOperador))
	assert.False(t, IsValidRole("super-admin"))
}
