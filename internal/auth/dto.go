package auth

import "errors"

type LoginDTO struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Portal   Portal `json:"portal"`
}

func (dto LoginDTO) Validate() error {
	if dto.Username == "" {
		return errors.New("username is required")
	}
	if dto.Password == "" {
		return errors.New("password is required")
	}
	if dto.Portal != "" && dto.Portal != PortalStaff && dto.Portal != PortalAdmin {
		return errors.New("portal must be STAFF or ADMIN")
	}
	return nil
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func (dto RefreshTokenDTO) Validate() error {
	if dto.RefreshToken == "" {
		return errors.New("refresh_token is required")
	}
	return nil
}

// IdentifyDTO starts a password reset by email or username.
type IdentifyDTO struct {
	Identifier string `json:"identifier" validate:"required"`
}

func (dto IdentifyDTO) Validate() error {
	if dto.Identifier == "" {
		return errors.New("identifier is required")
	}
	return nil
}

type VerifyResetCodeDTO struct {
	Identifier string `json:"identifier" validate:"required"`
	Code       string `json:"code" validate:"required"`
}

func (dto VerifyResetCodeDTO) Validate() error {
	if dto.Identifier == "" {
		return errors.New("identifier is required")
	}
	if dto.Code == "" {
		return errors.New("code is required")
	}
	return nil
}

type ResetPasswordDTO struct {
	Identifier      string `json:"identifier" validate:"required"`
	Code            string `json:"code" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

func (dto ResetPasswordDTO) Validate() error {
	if dto.Identifier == "" || dto.Code == "" {
		return errors.New("identifier and code are required")
	}
	if len(dto.NewPassword) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	if dto.NewPassword != dto.ConfirmPassword {
		return errors.New("passwords do not match")
	}
	return nil
}

// ResetChallengeDTO is the response to a reset request. There is no
// real SMS or email delivery, so the one-time code is surfaced as a
// simulated notice.
type ResetChallengeDTO struct {
	Notice string `json:"notice"`
}
