package handler

// --- Request types ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
	Age      int    `json:"age"      validate:"gte=0,lte=150"`
	Address  string `json:"address"  validate:"max=250"`
	// IsActive defaults to true when omitted.
	IsActive *bool `json:"isActive"`
}

// loginRequest does not check the email format; malformed identifiers get
// the same unauthorized answer as unknown ones.
type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updateUserRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Age      int    `json:"age"      validate:"gte=0,lte=150"`
	Address  string `json:"address"  validate:"max=250"`
	IsActive bool   `json:"isActive"`
}

type updateProfileRequest struct {
	Name    string `json:"name"    validate:"required,max=100"`
	Email   string `json:"email"   validate:"required,email"`
	Age     int    `json:"age"     validate:"gte=0,lte=150"`
	Address string `json:"address" validate:"max=250"`
}

// --- Response types ---

type userResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Age      int    `json:"age"`
	Address  string `json:"address"`
	IsActive bool   `json:"isActive"`
}

type loginResponse struct {
	Token string `json:"token"`
}
