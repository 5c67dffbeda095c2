package dto

// RegisterRequest represents a coordinator account registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required" example:"Jane Smith"`
	Email    string `json:"email" binding:"required,email" example:"coordinator@school.edu"`
	Password string `json:"password" binding:"required,min=8" example:"s3cret-pass"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"coordinator@school.edu"`
	Password string `json:"password" binding:"required" example:"s3cret-pass"`
}

// TokenResponse carries an issued access token
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int    `json:"expiresIn" example:"43200"`
}

// UserResponse is the public shape of a user account
type UserResponse struct {
	ID    int64  `json:"id" example:"1"`
	Name  string `json:"name" example:"Jane Smith"`
	Email string `json:"email" example:"coordinator@school.edu"`
}
