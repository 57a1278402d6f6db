package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"profilehub/internal/delivery/api/validator"
	deliverycontext "profilehub/internal/delivery/context"
	"profilehub/internal/domain/entity"
	domainerrors "profilehub/internal/domain/errors"
	mockUsecase "profilehub/internal/mocks/usecase"
	"profilehub/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type handlerFixture struct {
	profileUC  *mockUsecase.MockProfileUsecase
	passwordUC *mockUsecase.MockPasswordUsecase
	handler    *ProfileHandler
	echo       *echo.Echo
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()

	profileUC := mockUsecase.NewMockProfileUsecase(t)
	passwordUC := mockUsecase.NewMockPasswordUsecase(t)
	e := echo.New()
	e.Validator = validator.New()

	return &handlerFixture{
		profileUC:  profileUC,
		passwordUC: passwordUC,
		handler: NewProfileHandler(ProfileHandlerParams{
			ProfileUC:  profileUC,
			PasswordUC: passwordUC,
			Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		}),
		echo: e,
	}
}

// call runs h as the authenticated accountID; uuid.Nil means anonymous.
func (f *handlerFixture) call(t *testing.T, h echo.HandlerFunc, method, body string, accountID uuid.UUID) (*httptest.ResponseRecorder, error) {
	t.Helper()

	req := httptest.NewRequest(method, "/me", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := f.echo.NewContext(req, rec)
	if accountID != uuid.Nil {
		deliverycontext.SetIdentity(c, accountID, entity.RoleTeachingInstitution.String())
	}

	return rec, h(c)
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	data, ok := body["data"].(map[string]any)
	require.True(t, ok, "response has no data object: %s", rec.Body.String())

	return data
}

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	info, ok := body["error"].(map[string]any)
	require.True(t, ok, "response has no error object: %s", rec.Body.String())

	return info
}

func testAccount(id uuid.UUID) *entity.Account {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	return &entity.Account{
		ID:           id,
		Name:         "Escola Aurora",
		Email:        "contato@aurora.edu",
		Role:         entity.RoleTeachingInstitution,
		PasswordHash: "$2a$12$secret",
		Verified:     true,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
}

func TestProfileHandler_GetProfile(t *testing.T) {
	accountID := uuid.New()
	students := 420

	t.Run("with sub-profile", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.profileUC.EXPECT().GetProfile(mock.Anything, accountID).Return(&entity.ProfileView{
			Account: testAccount(accountID),
			Profile: &entity.TeachingInstitutionProfile{
				AccountID:     accountID,
				Kind:          "publica",
				Name:          "Escola Aurora",
				TeachingAreas: []string{"tecnologia"},
				StudentCount:  &students,
			},
		}, nil)

		rec, err := f.call(t, f.handler.GetProfile, http.MethodGet, "", accountID)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		data := decodeData(t, rec)
		assert.Equal(t, accountID.String(), data["id"])
		assert.Equal(t, "instituicao_ensino", data["papel"])
		assert.Equal(t, true, data["verificado"])
		assert.NotContains(t, data, "senha")
		assert.NotContains(t, rec.Body.String(), "$2a$")

		perfil, ok := data["perfil"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "publica", perfil["tipo"])
		assert.Equal(t, float64(420), perfil["qtd_alunos"])
		assert.Equal(t, []any{"tecnologia"}, perfil["areas_ensino"])
	})

	t.Run("without sub-profile row", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.profileUC.EXPECT().GetProfile(mock.Anything, accountID).Return(&entity.ProfileView{
			Account: testAccount(accountID),
		}, nil)

		rec, err := f.call(t, f.handler.GetProfile, http.MethodGet, "", accountID)

		require.NoError(t, err)
		data := decodeData(t, rec)
		require.Contains(t, data, "perfil")
		assert.Nil(t, data["perfil"])
	})

	t.Run("account not found", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.profileUC.EXPECT().GetProfile(mock.Anything, accountID).
			Return(nil, domainerrors.ErrAccountNotFound.WrapMessage("lookup"))

		rec, err := f.call(t, f.handler.GetProfile, http.MethodGet, "", accountID)

		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, domainerrors.ErrAccountNotFound.ErrorCode(), decodeErrorBody(t, rec)["code"])
	})

	t.Run("server error goes to the central handler", func(t *testing.T) {
		f := newHandlerFixture(t)
		dbErr := domainerrors.NewDatabaseExecuteError(errors.New("connection reset"), "failed to find account")
		f.profileUC.EXPECT().GetProfile(mock.Anything, accountID).Return(nil, dbErr)

		rec, err := f.call(t, f.handler.GetProfile, http.MethodGet, "", accountID)

		require.Error(t, err)
		assert.ErrorIs(t, err, dbErr)
		assert.Zero(t, rec.Body.Len())
	})

	t.Run("anonymous", func(t *testing.T) {
		f := newHandlerFixture(t)

		rec, err := f.call(t, f.handler.GetProfile, http.MethodGet, "", uuid.Nil)

		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestProfileHandler_UpdateProfile(t *testing.T) {
	accountID := uuid.New()

	t.Run("splits account keys from role fields", func(t *testing.T) {
		f := newHandlerFixture(t)
		body := `{"nome":"Escola Aurora II","email":"novo@aurora.edu","senhaAtual":"antiga123",` +
			`"tipo":"privada","qtd_alunos":450,"areas_ensino":["artes"],"empresa":"ignored"}`

		updated := testAccount(accountID)
		updated.Name = "Escola Aurora II"
		updated.Email = "novo@aurora.edu"
		f.profileUC.EXPECT().UpdateProfile(mock.Anything, accountID, mock.Anything).
			RunAndReturn(func(_ context.Context, _ uuid.UUID, input *usecase.UpdateProfileInput) (*usecase.UpdateProfileOutput, error) {
				assert.Equal(t, "Escola Aurora II", input.Name)
				assert.Equal(t, "novo@aurora.edu", input.Email)
				assert.Equal(t, "antiga123", input.CurrentPassword)
				assert.Empty(t, input.NewPassword)
				assert.NotContains(t, input.RoleFields, "nome")
				assert.NotContains(t, input.RoleFields, "senhaAtual")
				assert.Equal(t, "privada", input.RoleFields["tipo"])
				assert.Equal(t, json.Number("450"), input.RoleFields["qtd_alunos"])
				assert.Equal(t, []any{"artes"}, input.RoleFields["areas_ensino"])
				assert.Equal(t, "ignored", input.RoleFields["empresa"])

				return &usecase.UpdateProfileOutput{
					Account: updated,
					Profile: &entity.TeachingInstitutionProfile{AccountID: accountID, Kind: "privada", Name: "Escola Aurora II"},
				}, nil
			})

		rec, err := f.call(t, f.handler.UpdateProfile, http.MethodPut, body, accountID)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		data := decodeData(t, rec)
		assert.Equal(t, "Perfil atualizado com sucesso", data["message"])
		user, ok := data["usuario"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "novo@aurora.edu", user["email"])
		perfil, ok := user["perfil"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "privada", perfil["tipo"])
	})

	t.Run("perfil omitted when not written", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.profileUC.EXPECT().UpdateProfile(mock.Anything, accountID, mock.Anything).
			Return(&usecase.UpdateProfileOutput{Account: testAccount(accountID)}, nil)

		rec, err := f.call(t, f.handler.UpdateProfile, http.MethodPut, `{"nome":"Escola Aurora"}`, accountID)

		require.NoError(t, err)
		user, ok := decodeData(t, rec)["usuario"].(map[string]any)
		require.True(t, ok)
		assert.NotContains(t, user, "perfil")
	})

	t.Run("empty body is an empty patch", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.profileUC.EXPECT().UpdateProfile(mock.Anything, accountID, &usecase.UpdateProfileInput{RoleFields: map[string]any{}}).
			Return(&usecase.UpdateProfileOutput{Account: testAccount(accountID)}, nil)

		rec, err := f.call(t, f.handler.UpdateProfile, http.MethodPut, "", accountID)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	tests := []struct {
		name        string
		body        string
		wantCode    string
		wantDetails map[string]any
	}{
		{
			name:     "malformed json",
			body:     `{"nome":`,
			wantCode: "INVALID_INPUT",
		},
		{
			name:     "array body",
			body:     `[1,2]`,
			wantCode: "INVALID_INPUT",
		},
		{
			name:        "invalid email",
			body:        `{"email":"not-an-email"}`,
			wantCode:    domainerrors.ErrValidationFailed.ErrorCode(),
			wantDetails: map[string]any{"email": "email"},
		},
		{
			name:        "short new password",
			body:        `{"senhaAtual":"antiga123","novaSenha":"123"}`,
			wantCode:    domainerrors.ErrValidationFailed.ErrorCode(),
			wantDetails: map[string]any{"novaSenha": "min=6"},
		},
		{
			name:        "new password over 72 bytes in multibyte runes",
			body:        `{"senhaAtual":"antiga123","novaSenha":"` + strings.Repeat("é", 40) + `"}`,
			wantCode:    domainerrors.ErrValidationFailed.ErrorCode(),
			wantDetails: map[string]any{"novaSenha": "bcryptmax"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHandlerFixture(t)

			rec, err := f.call(t, f.handler.UpdateProfile, http.MethodPut, tt.body, accountID)

			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			info := decodeErrorBody(t, rec)
			assert.Equal(t, tt.wantCode, info["code"])
			if tt.wantDetails != nil {
				assert.Equal(t, tt.wantDetails, info["details"])
			}
		})
	}

	t.Run("business errors map to their status", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.profileUC.EXPECT().UpdateProfile(mock.Anything, accountID, mock.Anything).
			Return(nil, domainerrors.ErrCurrentPasswordIncorrect.WrapMessage("verify"))

		rec, err := f.call(t, f.handler.UpdateProfile, http.MethodPut, `{"email":"x@y.com","senhaAtual":"errada1"}`, accountID)

		require.NoError(t, err)
		assert.Equal(t, domainerrors.ErrCurrentPasswordIncorrect.HTTPCode(), rec.Code)
		assert.Equal(t, domainerrors.ErrCurrentPasswordIncorrect.ErrorCode(), decodeErrorBody(t, rec)["code"])
	})
}

func TestProfileHandler_ChangePassword(t *testing.T) {
	accountID := uuid.New()

	t.Run("success", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.passwordUC.EXPECT().ChangePassword(mock.Anything, accountID, &usecase.ChangePasswordInput{
			CurrentPassword: "antiga123",
			NewPassword:     "nova12345",
		}).Return(nil)

		rec, err := f.call(t, f.handler.ChangePassword, http.MethodPut, `{"senhaAtual":"antiga123","novaSenha":"nova12345"}`, accountID)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Senha alterada com sucesso", decodeData(t, rec)["message"])
	})

	t.Run("missing fields reported by the use case", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.passwordUC.EXPECT().ChangePassword(mock.Anything, accountID, &usecase.ChangePasswordInput{}).
			Return(domainerrors.ErrPasswordFieldsRequired)

		rec, err := f.call(t, f.handler.ChangePassword, http.MethodPut, `{}`, accountID)

		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, domainerrors.ErrPasswordFieldsRequired.ErrorCode(), decodeErrorBody(t, rec)["code"])
	})

	t.Run("new password over 72 bytes", func(t *testing.T) {
		f := newHandlerFixture(t)

		rec, err := f.call(t, f.handler.ChangePassword, http.MethodPut,
			`{"senhaAtual":"antiga123","novaSenha":"`+strings.Repeat("é", 40)+`"}`, accountID)

		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		info := decodeErrorBody(t, rec)
		assert.Equal(t, domainerrors.ErrValidationFailed.ErrorCode(), info["code"])
		assert.Equal(t, map[string]any{"novaSenha": "bcryptmax"}, info["details"])
	})

	t.Run("wrong current password", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.passwordUC.EXPECT().ChangePassword(mock.Anything, accountID, mock.Anything).
			Return(domainerrors.ErrCurrentPasswordIncorrect.WrapMessage("verify"))

		rec, err := f.call(t, f.handler.ChangePassword, http.MethodPut, `{"senhaAtual":"errada1","novaSenha":"nova12345"}`, accountID)

		require.NoError(t, err)
		assert.Equal(t, domainerrors.ErrCurrentPasswordIncorrect.HTTPCode(), rec.Code)
	})

	t.Run("anonymous", func(t *testing.T) {
		f := newHandlerFixture(t)

		rec, err := f.call(t, f.handler.ChangePassword, http.MethodPut, `{}`, uuid.Nil)

		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
