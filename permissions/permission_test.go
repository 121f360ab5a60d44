package permissions_test

import (
	"hotel/permissions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	assert.True(t, data.FindPermissions("/auth/token", "POST").Skip)
	assert.Equal(t, []string{"staff"}, data.FindPermissions("/reserva/{id}", "DELETE").Roles)
	assert.Equal(t, []string{"staff"}, data.FindPermissions("/habitaciones/{id}", "DELETE").Roles)
	assert.Equal(t, []string{"staff"}, data.FindPermissions("/servicios/{id}", "DELETE").Roles)
}

func TestPermissionData_FindPermissions(t *testing.T) {
	data, err := permissions.Parse([]byte(`{"endpoints":[{"path":"/factura","method":"POST","roles":["staff"]}]}`))
	require.NoError(t, err)

	tests := []struct {
		name        string
		path        string
		method      string
		expectRoles []string
	}{
		{name: "exact", path: "/factura", method: "POST", expectRoles: []string{"staff"}},
		{name: "trailing slash", path: "/factura/", method: "post", expectRoles: []string{"staff"}},
		{name: "other method", path: "/factura", method: "GET"},
		{name: "unknown route", path: "/cliente", method: "POST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectRoles, data.FindPermissions(tt.path, tt.method).Roles)
		})
	}
}

func TestPermission_Allows(t *testing.T) {
	assert.True(t, permissions.Permission{}.Allows("anyone"))
	assert.True(t, permissions.Permission{Roles: []string{"staff"}}.Allows("staff"))
	assert.False(t, permissions.Permission{Roles: []string{"staff"}}.Allows("guest"))
}

func TestParse_Malformed(t *testing.T) {
	_, err := permissions.Parse([]byte(`{`))

	assert.Error(t, err)
}
