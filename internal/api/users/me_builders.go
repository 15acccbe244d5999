package users

import "parking-app/internal/domain/access"

func BuildAccessDTO(policy access.Policy) AccessDTO {
	return AccessDTO{
		Role:        string(policy.Role),
		Permissions: policy.Permissions,
		AnyUnit:     policy.Can(access.PermitsAnyUnit),
	}
}

func stringPtrIfNotEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
