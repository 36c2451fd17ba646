package entity

// Scope identifica el tenant (empresa y, opcionalmente, sucursal) de una operación.
// Lo construye el middleware de autenticación a partir del token.
type Scope struct {
	EnterpriseID int64
	BranchID     *int64
}

// Owns indica si un registro de la empresa dada pertenece al scope.
func (s Scope) Owns(enterpriseID int64) bool {
	return s.EnterpriseID != 0 && s.EnterpriseID == enterpriseID
}
