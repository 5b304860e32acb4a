package validations

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	pkgError "github.com/AzielCF/az-cast/pkg/error"
)

func ValidateLoginWithCode(ctx context.Context, phoneNumber string) error {
	request := struct {
		PhoneNumber string
	}{PhoneNumber: phoneNumber}

	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.PhoneNumber, validation.Required, is.Digit, validation.Length(8, 15)),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}
