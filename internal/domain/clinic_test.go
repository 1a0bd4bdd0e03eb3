package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClinic(t *testing.T) {
	t.Parallel()

	c, err := NewClinic(ClinicParams{
		Name:    "  Clínica Centro ",
		Address: "Rua A, 100",
		Email:   "Contato@Clinica.com",
		Phone:   "(11) 3333-4444",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID())
	assert.Equal(t, "Clínica Centro", c.Name())
	require.NotNil(t, c.Address())
	assert.Equal(t, "Rua A, 100", *c.Address())
	assert.Equal(t, "contato@clinica.com", c.Email().String())
	assert.Equal(t, "1133334444", c.Phone().String())
	assert.Equal(t, ClinicActive, c.Status())
	assert.True(t, c.IsActive())
}

func TestNewClinicErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		params  ClinicParams
		wantErr error
	}{
		{name: "missing name", params: ClinicParams{Name: ""}, wantErr: ErrEmptyClinicName},
		{name: "long name", params: ClinicParams{Name: strings.Repeat("c", 256)}, wantErr: ErrClinicNameTooLong},
		{name: "bad email", params: ClinicParams{Name: "C", Email: "nope"}, wantErr: ErrInvalidEmail},
		{name: "bad phone", params: ClinicParams{Name: "C", Phone: "1"}, wantErr: ErrInvalidPhone},
		{name: "bad status", params: ClinicParams{Name: "C", Status: "closed"}, wantErr: ErrInvalidClinicStatus},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewClinic(tc.params)
			require.ErrorIs(t, err, tc.wantErr)
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestClinicLifecycle(t *testing.T) {
	t.Parallel()

	str := func(s string) *string { return &s }

	c, err := NewClinic(ClinicParams{Name: "Centro", Address: "Rua A"})
	require.NoError(t, err)

	c.Deactivate()
	assert.False(t, c.IsActive())
	c.Activate()
	assert.True(t, c.IsActive())

	require.NoError(t, c.Update(ClinicUpdate{Address: str(""), Status: str("INACTIVE")}))
	assert.Nil(t, c.Address())
	assert.Equal(t, ClinicInactive, c.Status())

	err = c.Update(ClinicUpdate{Name: str("Norte"), Email: str("bad")})
	require.ErrorIs(t, err, ErrInvalidEmail)
	assert.Equal(t, "Centro", c.Name())
}

func TestClinicJSON(t *testing.T) {
	t.Parallel()

	c, err := NewClinic(ClinicParams{ID: "clinic-1", Name: "Centro", Phone: "11999999999"})
	require.NoError(t, err)

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "updated_at")

	var restored Clinic
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, c.ToJSON(), restored.ToJSON())
	assert.True(t, restored.CreatedAt().Equal(restored.UpdatedAt()))

	_, err = ClinicFromJSON(ClinicJSON{Name: "Centro"})
	assert.ErrorIs(t, err, ErrClinicIDEmpty)
}
