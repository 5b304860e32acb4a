package validations

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	domainSchedule "github.com/AzielCF/az-cast/domains/schedule"
	pkgError "github.com/AzielCF/az-cast/pkg/error"
)

func ValidateReplaceSchedule(ctx context.Context, request domainSchedule.ReplaceRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Hours, validation.Required, validation.Each(validation.Min(0), validation.Max(23))),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}
