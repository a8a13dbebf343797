package dto

import "github.com/google/uuid"

// RegisterUserRequest is the body of an API registration. Roles defaults to
// empty, which grants the default role.
type RegisterUserRequest struct {
	Username  string   `json:"username"`
	Password  string   `json:"password"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Email     string   `json:"email"`
	Roles     []string `json:"roles"`
}

// MessageResponse carries the outcome text under both "message" and the
// older "detail" key, so clients of either form keep working.
type MessageResponse struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

func Message(text string) MessageResponse {
	return MessageResponse{Message: text, Detail: text}
}

type UserListResponse struct {
	Count int            `json:"count"`
	Users []UserResponse `json:"users"`
}

type RosterResponse struct {
	GymID  uuid.UUID      `json:"gym_id"`
	Status string         `json:"status"`
	Users  []UserResponse `json:"users"`
}
