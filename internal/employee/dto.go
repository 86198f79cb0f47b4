package employee

import (
	"errors"
	"strings"
)

// CreateEmployeeDTO is the request payload for onboarding a staff member.
type CreateEmployeeDTO struct {
	Name        string     `json:"name" validate:"required"`
	Role        Role       `json:"role" validate:"required"`
	Department  Department `json:"department" validate:"required"`
	DistanceKM  float64    `json:"distanceKm"`
	Email       string     `json:"email" validate:"required,email"`
	PhoneNumber string     `json:"phoneNumber"`
	AvatarURL   string     `json:"avatarUrl"`
	Username    string     `json:"username" validate:"required"`
	Password    string     `json:"password" validate:"required,min=6"`
}

func (dto CreateEmployeeDTO) Validate() error {
	if strings.TrimSpace(dto.Name) == "" {
		return errors.New("name is required")
	}
	if !dto.Role.Valid() {
		return errors.New("role must be one of Doctor, Nurse, Administrator, Technician, Intern")
	}
	if !dto.Department.Valid() {
		return errors.New("unknown department")
	}
	if dto.DistanceKM < 0 {
		return errors.New("distance must not be negative")
	}
	if strings.TrimSpace(dto.Email) == "" || !strings.Contains(dto.Email, "@") {
		return errors.New("a valid email is required")
	}
	if strings.TrimSpace(dto.Username) == "" {
		return errors.New("username is required")
	}
	if len(dto.Password) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	return nil
}

// UpdateEmployeeDTO carries the editable profile fields. Empty fields
// are left unchanged.
type UpdateEmployeeDTO struct {
	Name        string     `json:"name"`
	Role        Role       `json:"role"`
	Department  Department `json:"department"`
	DistanceKM  *float64   `json:"distanceKm"`
	Email       string     `json:"email"`
	PhoneNumber string     `json:"phoneNumber"`
	AvatarURL   string     `json:"avatarUrl"`
}

func (dto UpdateEmployeeDTO) Validate() error {
	if dto.Role != "" && !dto.Role.Valid() {
		return errors.New("role must be one of Doctor, Nurse, Administrator, Technician, Intern")
	}
	if dto.Department != "" && !dto.Department.Valid() {
		return errors.New("unknown department")
	}
	if dto.DistanceKM != nil && *dto.DistanceKM < 0 {
		return errors.New("distance must not be negative")
	}
	if dto.Email != "" && !strings.Contains(dto.Email, "@") {
		return errors.New("a valid email is required")
	}
	return nil
}

type UpdateStatusDTO struct {
	Status Status `json:"status" validate:"required"`
}

func (dto UpdateStatusDTO) Validate() error {
	if !dto.Status.Valid() {
		return errors.New("unknown availability status")
	}
	return nil
}

// UpdateCredentialsDTO is the self-service account settings payload.
type UpdateCredentialsDTO struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (dto UpdateCredentialsDTO) Validate() error {
	if strings.TrimSpace(dto.Username) == "" && dto.Password == "" {
		return errors.New("nothing to update")
	}
	if dto.Password != "" {
		if len(dto.Password) < 6 {
			return errors.New("password must be at least 6 characters long")
		}
		if dto.Password != dto.ConfirmPassword {
			return errors.New("passwords do not match")
		}
	}
	return nil
}

// DispatchDTO requests an emergency call-in of the nearest staff.
type DispatchDTO struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

func (dto DispatchDTO) Validate() error {
	if dto.Count <= 0 {
		return errors.New("count must be greater than 0")
	}
	return nil
}
