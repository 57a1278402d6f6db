package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"profilehub/internal/delivery/api/middleware"
	"profilehub/internal/delivery/api/response"
	"profilehub/internal/delivery/api/validator"
	deliverycontext "profilehub/internal/delivery/context"
	domainerrors "profilehub/internal/domain/errors"
	"profilehub/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	messageProfileUpdated  = "Perfil atualizado com sucesso"
	messagePasswordChanged = "Senha alterada com sucesso"
)

// ProfileHandlerParams holds dependencies for ProfileHandler, injected by Fx.
type ProfileHandlerParams struct {
	fx.In

	ProfileUC  usecase.ProfileUsecase
	PasswordUC usecase.PasswordUsecase
	Logger     *slog.Logger
}

// ProfileHandler serves the caller's own profile.
type ProfileHandler struct {
	profileUC  usecase.ProfileUsecase
	passwordUC usecase.PasswordUsecase
	logger     *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler
func NewProfileHandler(params ProfileHandlerParams) *ProfileHandler {
	return &ProfileHandler{
		profileUC:  params.ProfileUC,
		passwordUC: params.PasswordUC,
		logger:     params.Logger,
	}
}

// GetProfile handles GET /me.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Token inválido ou expirado")
	}

	view, err := h.profileUC.GetProfile(c.Request().Context(), accountID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toProfileViewResponse(view))
}

// UpdateProfile handles PUT /me.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Token inválido ou expirado")
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Não foi possível ler o corpo da requisição")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	// The body is decoded twice: once typed for the account keys and once
	// loosely for the open-ended role fields.
	var req UpdateProfileRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return h.malformedBody(c, err, "Dados de perfil inválidos")
	}
	roleFields, err := decodeRoleFields(body)
	if err != nil {
		return h.malformedBody(c, err, "Dados de perfil inválidos")
	}

	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	out, err := h.profileUC.UpdateProfile(c.Request().Context(), accountID, &usecase.UpdateProfileInput{
		Name:            req.Name,
		Email:           req.Email,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		RoleFields:      roleFields,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, &UpdateProfileResponse{
		Message: messageProfileUpdated,
		User: &UpdatedProfileResponse{
			AccountResponse: toAccountResponse(out.Account),
			Profile:         toRoleProfileResponse(out.Profile),
		},
	})
}

// ChangePassword handles PUT /alterar-senha.
func (h *ProfileHandler) ChangePassword(c echo.Context) error {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Token inválido ou expirado")
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return h.malformedBody(c, err, "Dados de senha inválidos")
	}

	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	err := h.passwordUC.ChangePassword(c.Request().Context(), accountID, &usecase.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, &response.MessageData{Message: messagePasswordChanged})
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeRoleFields keeps numbers as json.Number so integers survive intact.
func decodeRoleFields(body []byte) (map[string]any, error) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var fields map[string]any
	if err := decoder.Decode(&fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}

	for _, key := range []string{keyName, keyEmail, keyCurrentPassword, keyNewPassword} {
		delete(fields, key)
	}

	return fields, nil
}

func (h *ProfileHandler) malformedBody(c echo.Context, err error, message string) error {
	deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).
		Debug("Malformed request body", slog.String("path", c.Path()), slog.Any("error", err))

	return response.BadRequest(c, "INVALID_INPUT", message)
}

func validationFailed(c echo.Context, err error) error {
	return response.BadRequestWithDetails(c,
		domainerrors.ErrValidationFailed.ErrorCode(),
		domainerrors.ErrValidationFailed.Message(),
		validator.FieldErrors(err),
	)
}
