package entity

import (
	"time"

	"github.com/google/uuid"
)

// RoleProfile is the role-specific extension of an Account.
// The set of implementations is closed: one per Role.
type RoleProfile interface {
	// Role reports which account kind owns this profile shape.
	Role() Role

	roleProfile()
}

// TeachingInstitutionProfile holds the data of a teaching institution.
type TeachingInstitutionProfile struct {
	AccountID     uuid.UUID
	Kind          string
	Name          string
	Location      string
	TeachingAreas []string
	StudentCount  *int
	UpdatedAt     time.Time
}

// CompanySponsorProfile holds the data of a company sponsor.
type CompanySponsorProfile struct {
	AccountID      uuid.UUID
	CompanyName    string
	Sector         string
	SizeTier       string
	Location       string
	OperatingAreas []string
	UpdatedAt      time.Time
}

// ContractingInstitutionProfile holds the data of a contracting institution.
type ContractingInstitutionProfile struct {
	AccountID      uuid.UUID
	Kind           string
	Location       string
	InterestAreas  []string
	SocialPrograms []string
	UpdatedAt      time.Time
}

func (*TeachingInstitutionProfile) Role() Role    { return RoleTeachingInstitution }
func (*CompanySponsorProfile) Role() Role         { return RoleCompanySponsor }
func (*ContractingInstitutionProfile) Role() Role { return RoleContractingInstitution }

func (*TeachingInstitutionProfile) roleProfile()    {}
func (*CompanySponsorProfile) roleProfile()         {}
func (*ContractingInstitutionProfile) roleProfile() {}

// ProfileView is an account merged with its role profile.
// Profile is nil when the account has no sub-profile row yet.
type ProfileView struct {
	Account *Account
	Profile RoleProfile
}
