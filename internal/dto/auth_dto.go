package dto

import (
	"time"

	"github.com/google/uuid"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
}

type ProfileResponse struct {
	UserID                       uuid.UUID  `json:"user_id"`
	Username                     string     `json:"username"`
	GymID                        *uuid.UUID `json:"gym_id"`
	APIAddUserEnabled            bool       `json:"api_add_user_enabled"`
	APIUserThroughputLimitPerMin int        `json:"api_user_throughput_limit_per_min"`
	APIUserCountThisCycle        int        `json:"api_user_count_this_cycle"`
	APIThroughputCycleBeginTime  *time.Time `json:"api_throughput_cycle_begin_time"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
