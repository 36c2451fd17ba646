package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-ledger/pkg/jwt"
)

const secret = "test-secret"

func TestGenerateParse_IdaYVuelta(t *testing.T) {
	branch := int64(7)
	in := jwt.Identity{UserID: "u-1", EnterpriseID: 3, BranchID: &branch, Role: "Admin"}

	token, err := jwt.Generate(secret, in, "retail-ledger", 5)
	require.NoError(t, err)

	out, err := jwt.Parse(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", out.UserID)
	assert.Equal(t, int64(3), out.EnterpriseID)
	require.NotNil(t, out.BranchID)
	assert.Equal(t, int64(7), *out.BranchID)
	assert.Equal(t, "Admin", out.Role)
}

func TestGenerate_SinSucursal(t *testing.T) {
	token, err := jwt.Generate(secret, jwt.Identity{UserID: "u-2", EnterpriseID: 1, Role: "Staff"}, "retail-ledger", 5)
	require.NoError(t, err)

	out, err := jwt.Parse(secret, token)
	require.NoError(t, err)
	assert.Nil(t, out.BranchID)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate(secret, jwt.Identity{UserID: "u", EnterpriseID: 1}, "retail-ledger", 5)
	require.NoError(t, err)

	_, err = jwt.Parse("otro-secret", token)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	token, err := jwt.Generate(secret, jwt.Identity{UserID: "u", EnterpriseID: 1}, "retail-ledger", -1)
	require.NoError(t, err)

	_, err = jwt.Parse(secret, token)
	assert.Error(t, err)
}

func TestGenerate_SinEmpresa(t *testing.T) {
	_, err := jwt.Generate(secret, jwt.Identity{UserID: "u"}, "retail-ledger", 5)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", jwt.Identity{UserID: "u", EnterpriseID: 1}, "retail-ledger", 5)
	assert.Error(t, err)
}
