package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"booklib/internal/auth"
	"booklib/internal/entity"
	"booklib/internal/httpx"
	"booklib/internal/usecase"
)

type UserHandler struct {
	repo   usecase.UserRepository
	secret string
}

func NewUserHandler(repo usecase.UserRepository, secret string) *UserHandler {
	return &UserHandler{
		repo:   repo,
		secret: secret,
	}
}

type registerReq struct {
	Username string `json:"username" validate:"required,min=4,max=25"`
	Password string `json:"password" validate:"required,password_strength"`
}

// @Summary Register new user
// @Description Create a new user account
// @Tags users
// @Accept json
// @Produce json
// @Param user body registerReq true "User registration data"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /users/register [post]
func (handler *UserHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", toDetails(validationErrors))
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	newUser := &entity.User{
		Username:     req.Username,
		PasswordHash: hashedPassword,
	}
	if err := handler.repo.Create(r.Context(), newUser); err != nil {
		if errors.Is(err, usecase.ErrAlreadyExists) {
			httpx.JSONError(w, http.StatusConflict, "ALREADY_EXISTS", "Username already taken", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccessCreated(w, map[string]any{
		"id":       newUser.ID,
		"username": newUser.Username,
	})
}

type loginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// @Summary Login user
// @Description Authenticate user and issue an access token
// @Tags users
// @Accept json
// @Produce json
// @Param login body loginReq true "Login credentials"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /users/login [post]
func (h *UserHandler) LoginUser(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", toDetails(validationErrors))
		return
	}

	user, err := h.repo.GetByUsername(r.Context(), req.Username)
	if err != nil || !auth.VerifyPassword(user.PasswordHash, req.Password) {
		httpx.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid username or password", nil)
		return
	}

	const accessTokenTTL = 24 * time.Hour

	signedAccessToken, err := auth.GenerateToken(h.secret, user.ID, user.Username, accessTokenTTL)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, map[string]any{
		"access_token": signedAccessToken,
		"expires_in":   int(accessTokenTTL.Seconds()),
	}, nil)
}

// @Summary Get current user
// @Description Get currently authenticated user details
// @Tags users
// @Produce json
// @Security Bearer
// @Success 200 {object} httpx.SuccessResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /me [get]
func (h *UserHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == 0 {
		httpx.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	user, err := h.repo.GetByID(r.Context(), userID)
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	httpx.JSONSuccess(w, map[string]any{
		"id":       user.ID,
		"username": user.Username,
	}, nil)
}

func toDetails(validationErrors []ValidationError) []httpx.ErrorDetail {
	details := make([]httpx.ErrorDetail, len(validationErrors))
	for i, ve := range validationErrors {
		details[i] = httpx.ErrorDetail{Field: ve.Field, Message: ve.Message}
	}
	return details
}
