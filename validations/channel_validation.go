package validations

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	domainChannel "github.com/AzielCF/az-cast/domains/channel"
	pkgError "github.com/AzielCF/az-cast/pkg/error"
)

func ValidateReplaceApproved(ctx context.Context, request domainChannel.ReplaceApprovedRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Channels, validation.Each(validation.By(channelRule))),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

func channelRule(value interface{}) error {
	ch, ok := value.(domainChannel.Channel)
	if !ok {
		return validation.NewError("validation_channel", "must be a channel object")
	}
	if ch.ID == "" {
		return validation.NewError("validation_channel_id", "channel id cannot be blank")
	}
	return nil
}
