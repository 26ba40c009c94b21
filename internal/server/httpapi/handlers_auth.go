package httpapi

import (
	"net/http"

	"github.com/eulark/eulark/internal/server/metrics"
	"github.com/eulark/eulark/internal/server/services"
)

type registerRequest struct {
	PlayerName      string `json:"player_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type verifyEmailRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type loginUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type loginResponse struct {
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

const forgotPasswordReply = "if the e-mail is registered, a reset link will arrive shortly"

func (a *api) recordAuth(action string, err error) {
	if a.Metrics == nil {
		return
	}
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeFailure
		if status, _ := statusFor(err); status >= http.StatusInternalServerError {
			outcome = metrics.OutcomeError
		}
	}
	a.Metrics.RecordAuth(action, outcome)
}

func (a *api) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	err := a.Auth.Register(r.Context(), services.RegisterInput{
		PlayerName:      req.PlayerName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	a.recordAuth("register", err)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "verification code sent to your e-mail")
}

func (a *api) verifyEmail(w http.ResponseWriter, r *http.Request) {
	var req verifyEmailRequest
	if err := decodeJSON(w, r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	_, err := a.Auth.VerifyEmail(r.Context(), req.Email, req.Code)
	a.recordAuth("verify_email", err)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	writeMessage(w, http.StatusCreated, "account created, please log in")
}

func (a *api) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	res, err := a.Auth.Login(r.Context(), req.Identifier, req.Password)
	a.recordAuth("login", err)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token: res.Token,
		User:  loginUser{ID: res.Player.ID, Username: res.Player.PlayerName},
	})
}

func (a *api) adminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	token, err := a.Auth.AdminLogin(r.Context(), req.Username, req.Password)
	a.recordAuth("admin_login", err)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (a *api) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	err := a.Auth.ForgotPassword(r.Context(), req.Email)
	a.recordAuth("forgot_password", err)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, forgotPasswordReply)
}

func (a *api) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	err := a.Auth.ResetPassword(r.Context(), req.Token, req.Password, req.ConfirmPassword)
	a.recordAuth("reset_password", err)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "password updated, please log in")
}
