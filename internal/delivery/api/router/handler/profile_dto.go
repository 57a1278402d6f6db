package handler

import (
	"time"

	"profilehub/internal/domain/entity"

	"github.com/google/uuid"
)

// Account keys of the PUT /me body. Everything else is a role field.
const (
	keyName            = "nome"
	keyEmail           = "email"
	keyCurrentPassword = "senhaAtual"
	keyNewPassword     = "novaSenha"
)

// UpdateProfileRequest is the typed view of the account keys of PUT /me.
type UpdateProfileRequest struct {
	Name            string `json:"nome" validate:"omitempty,max=150"`
	Email           string `json:"email" validate:"omitempty,email,max=254"`
	CurrentPassword string `json:"senhaAtual"`
	NewPassword     string `json:"novaSenha" validate:"omitempty,min=6,bcryptmax"`
}

// ChangePasswordRequest is the body of PUT /alterar-senha.
// Presence is enforced by the use case so both fields report the same error.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"senhaAtual"`
	NewPassword     string `json:"novaSenha" validate:"omitempty,min=6,bcryptmax"`
}

// AccountResponse is the account projection of the composite view.
type AccountResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"nome"`
	Email     string    `json:"email"`
	Role      string    `json:"papel"`
	Verified  bool      `json:"verificado"`
	CreatedAt time.Time `json:"criado_em"`
	UpdatedAt time.Time `json:"atualizado_em"`
}

// ProfileViewResponse is the GET /me payload; perfil is null without a sub-profile row.
type ProfileViewResponse struct {
	AccountResponse
	Profile any `json:"perfil"`
}

// UpdatedProfileResponse is the usuario of PUT /me; perfil is present only when written.
type UpdatedProfileResponse struct {
	AccountResponse
	Profile any `json:"perfil,omitempty"`
}

// UpdateProfileResponse is the PUT /me payload.
type UpdateProfileResponse struct {
	Message string                  `json:"message"`
	User    *UpdatedProfileResponse `json:"usuario"`
}

type teachingInstitutionResponse struct {
	Kind          string    `json:"tipo"`
	Name          string    `json:"nome"`
	Location      string    `json:"localizacao"`
	TeachingAreas []string  `json:"areas_ensino"`
	StudentCount  *int      `json:"qtd_alunos"`
	UpdatedAt     time.Time `json:"atualizado_em"`
}

type companySponsorResponse struct {
	CompanyName    string    `json:"empresa"`
	Sector         string    `json:"setor"`
	SizeTier       string    `json:"porte"`
	Location       string    `json:"localizacao"`
	OperatingAreas []string  `json:"areas_atuacao"`
	UpdatedAt      time.Time `json:"atualizado_em"`
}

type contractingInstitutionResponse struct {
	Kind           string    `json:"tipo"`
	Location       string    `json:"localizacao"`
	InterestAreas  []string  `json:"areas_interesse"`
	SocialPrograms []string  `json:"programas_sociais"`
	UpdatedAt      time.Time `json:"atualizado_em"`
}

func toAccountResponse(account *entity.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID,
		Name:      account.Name,
		Email:     account.Email,
		Role:      account.Role.String(),
		Verified:  account.Verified,
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
}

// toRoleProfileResponse returns nil for a nil profile so perfil encodes as null or is omitted.
func toRoleProfileResponse(profile entity.RoleProfile) any {
	switch p := profile.(type) {
	case *entity.TeachingInstitutionProfile:
		return &teachingInstitutionResponse{
			Kind:          p.Kind,
			Name:          p.Name,
			Location:      p.Location,
			TeachingAreas: p.TeachingAreas,
			StudentCount:  p.StudentCount,
			UpdatedAt:     p.UpdatedAt,
		}
	case *entity.CompanySponsorProfile:
		return &companySponsorResponse{
			CompanyName:    p.CompanyName,
			Sector:         p.Sector,
			SizeTier:       p.SizeTier,
			Location:       p.Location,
			OperatingAreas: p.OperatingAreas,
			UpdatedAt:      p.UpdatedAt,
		}
	case *entity.ContractingInstitutionProfile:
		return &contractingInstitutionResponse{
			Kind:           p.Kind,
			Location:       p.Location,
			InterestAreas:  p.InterestAreas,
			SocialPrograms: p.SocialPrograms,
			UpdatedAt:      p.UpdatedAt,
		}
	default:
		return nil
	}
}

func toProfileViewResponse(view *entity.ProfileView) *ProfileViewResponse {
	return &ProfileViewResponse{
		AccountResponse: toAccountResponse(view.Account),
		Profile:         toRoleProfileResponse(view.Profile),
	}
}
