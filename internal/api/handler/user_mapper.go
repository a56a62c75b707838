package handler

import (
	"github.com/usermgmt/account-service/internal/core/ports"
)

// --- Request → Service input ---

func toRegisterInput(req registerRequest) ports.RegisterInput {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
		Address:  req.Address,
		IsActive: active,
	}
}

func toUpdateUserInput(req updateUserRequest) ports.UpdateUserInput {
	return ports.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Age:      req.Age,
		Address:  req.Address,
		IsActive: req.IsActive,
	}
}

func toUpdateProfileInput(req updateProfileRequest) ports.UpdateProfileInput {
	return ports.UpdateProfileInput{
		Name:    req.Name,
		Email:   req.Email,
		Age:     req.Age,
		Address: req.Address,
	}
}

// --- Service result → HTTP response ---

func toUserResponse(p *ports.UserProfile) userResponse {
	return userResponse{
		ID:       p.ID,
		Name:     p.Name,
		Email:    p.Email,
		Age:      p.Age,
		Address:  p.Address,
		IsActive: p.IsActive,
	}
}

func toUserListResponse(profiles []ports.UserProfile) []userResponse {
	out := make([]userResponse, len(profiles))
	for i := range profiles {
		out[i] = toUserResponse(&profiles[i])
	}
	return out
}
