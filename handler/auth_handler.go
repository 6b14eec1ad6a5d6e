package handler

import (
	"errors"
	"finance-tracker/common"
	"finance-tracker/model"
	"finance-tracker/service"
	"net/http"
)

// Authenticator exchanges credentials for an access token.
type Authenticator interface {
	Login(username, password string) (string, error)
}

type AuthHandler struct {
	auth Authenticator
}

func NewAuthHandler(auth Authenticator) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login godoc
// @Summary      Log in
// @Description  Exchanges a username and password for a bearer access token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials body model.LoginRequest true "Login credentials"
// @Success      200  {object}  model.LoginResponse
// @Failure      400  {object}  common.AppError "Malformed request body"
// @Failure      401  {object}  common.AppError "Invalid login"
// @Failure      500  {object}  common.AppError "Token could not be issued"
// @Router       /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LoginRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	token, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidLogin) {
			return common.Unauthorized("Invalid login", nil)
		}
		return common.Internal("Could not log in", err)
	}

	common.WriteJSON(w, http.StatusOK, model.LoginResponse{
		Message:     "Login successful",
		AccessToken: token,
		User:        req.Username,
	})
	return nil
}
