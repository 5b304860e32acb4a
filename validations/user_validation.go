package validations

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	domainUser "github.com/AzielCF/az-cast/domains/user"
	pkgError "github.com/AzielCF/az-cast/pkg/error"
)

func ValidateRegisterUser(ctx context.Context, request domainUser.RegisterRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Login, validation.Required, validation.Length(3, 64)),
		validation.Field(&request.Password, validation.Required, validation.Length(4, 128)),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

func ValidateLoginUser(ctx context.Context, request domainUser.LoginRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Login, validation.Required),
		validation.Field(&request.Password, validation.Required),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}
