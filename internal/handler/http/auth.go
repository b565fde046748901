package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dcastillo/iot-telemetry/internal/logger"
	"github.com/dcastillo/iot-telemetry/internal/service"
	"github.com/dcastillo/iot-telemetry/internal/store"
	"github.com/dcastillo/iot-telemetry/internal/utils"
	"github.com/dcastillo/iot-telemetry/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.LoginResponse{Message: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	_, err := h.services.AuthService.RegisterUser(ctx, request.Email, request.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			utils.WriteJSON(w, models.LoginResponse{Message: "Email and password are required."}, http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrEmailAlreadyExists):
			log.Err(err).Msg("email already exists")
			utils.WriteJSON(w, models.LoginResponse{Message: "Email already exists."}, http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user registration")
			utils.WriteJSON(w, models.LoginResponse{Message: "Internal server error."}, http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.LoginResponse{Success: true, Message: "User registered successfully."}, http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.LoginResponse{Message: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, request.Email, request.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			utils.WriteJSON(w, models.LoginResponse{Message: "Email and password are required."}, http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrInvalidCredentials):
			log.Err(err).Msg("invalid credentials")
			utils.WriteJSON(w, models.LoginResponse{Message: "Invalid email or password."}, http.StatusUnauthorized)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user login")
			utils.WriteJSON(w, models.LoginResponse{Message: "Internal server error."}, http.StatusInternalServerError)
			return
		}
	}

	log.Debug().Str("email", foundUser.Email).Msg("user successfully logged in")

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		utils.WriteJSON(w, models.LoginResponse{Message: "Internal server error."}, http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.LoginResponse{
		Success: true,
		Message: "Login successful.",
		Token:   token.SignedString,
	}, http.StatusOK)
}
