package validations

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	domainAnnouncement "github.com/AzielCF/az-cast/domains/announcement"
	pkgError "github.com/AzielCF/az-cast/pkg/error"
)

func ValidateSaveAnnouncement(ctx context.Context, request domainAnnouncement.SaveRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Weekday, validation.Required, validation.By(weekdayRule)),
		validation.Field(&request.Caption, validation.Required),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

func ValidateCopyAnnouncement(ctx context.Context, request domainAnnouncement.CopyRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Source, validation.Required, validation.By(weekdayRule)),
		validation.Field(&request.Destinations, validation.Required, validation.Each(validation.By(weekdayRule))),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

func weekdayRule(value interface{}) error {
	weekday, ok := value.(domainAnnouncement.Weekday)
	if !ok || !weekday.Valid() {
		return validation.NewError("validation_weekday", "must be a weekday between monday and saturday")
	}
	return nil
}
