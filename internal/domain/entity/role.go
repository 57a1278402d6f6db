// Package entity contains the core business objects of the project.
package entity

// Role is the account kind. It is fixed when the account is created.
type Role string

const (
	// RoleTeachingInstitution marks a teaching institution account.
	RoleTeachingInstitution Role = "instituicao_ensino"
	// RoleCompanySponsor marks a company sponsor account.
	RoleCompanySponsor Role = "chefe_empresa"
	// RoleContractingInstitution marks a contracting institution account.
	RoleContractingInstitution Role = "instituicao_contratante"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is one of the known account kinds.
func (r Role) IsValid() bool {
	switch r {
	case RoleTeachingInstitution, RoleCompanySponsor, RoleContractingInstitution:
		return true
	default:
		return false
	}
}
