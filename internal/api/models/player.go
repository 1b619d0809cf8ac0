package models

// Player represents a registered player in the database.
type Player struct {
	ID           int64  `db:"id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	Wins         int64  `db:"wins"`
	Losses       int64  `db:"losses"`
	Draws        int64  `db:"draws"`
}

// RegisterRequest defines the structure for a player registration request.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=20"`
	Password string `json:"password" binding:"required,min=6,max=50"`
}

// LoginRequest defines the structure for a player login request.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse defines the structure for a successful login response.
type LoginResponse struct {
	Token string `json:"token"`
}

// StatsResponse is a player's lifetime record.
type StatsResponse struct {
	Username string `json:"username"`
	Wins     int64  `json:"wins"`
	Losses   int64  `json:"losses"`
	Draws    int64  `json:"draws"`
}
