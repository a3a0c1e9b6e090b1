package handler

import (
	"encoding/json"
	"net/http"

	"github.com/edricd/backend/internal/model"
	"github.com/edricd/backend/internal/service"
)

// UserHandler handles user registration.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a UserHandler with the given service.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type createUserData struct {
	ID int64 `json:"id"`
}

type createUserResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    *createUserData `json:"data,omitempty"`
}

// Create handles POST /api/users/create. Registration failures are reported
// in-band with HTTP 200 so the frontend can render the message directly.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req model.RegistrationInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = json.NewEncoder(w).Encode(createUserResponse{Success: false, Message: "invalid request body"})
		return
	}

	id, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		se := service.AsError(err)
		_ = json.NewEncoder(w).Encode(createUserResponse{Success: false, Message: se.Message})
		return
	}

	_ = json.NewEncoder(w).Encode(createUserResponse{
		Success: true,
		Message: "user created",
		Data:    &createUserData{ID: id},
	})
}
