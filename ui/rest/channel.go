package rest

import (
	"github.com/gofiber/fiber/v2"

	domainChannel "github.com/AzielCF/az-cast/domains/channel"
	"github.com/AzielCF/az-cast/pkg/utils"
)

type Channel struct {
	Service domainChannel.IChannelUsecase
}

func InitRestChannel(app fiber.Router, service domainChannel.IChannelUsecase) Channel {
	rest := Channel{Service: service}
	app.Get("/channels/discovered", rest.ListDiscovered)
	app.Get("/channels/approved", rest.ListApproved)
	app.Put("/channels/approved", rest.ReplaceApproved)
	return rest
}

func (controller *Channel) ListDiscovered(c *fiber.Ctx) error {
	channels, err := controller.Service.ListDiscovered(c.UserContext())
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch discovered channels",
		Results: channels,
	})
}

func (controller *Channel) ListApproved(c *fiber.Ctx) error {
	channels, err := controller.Service.ListApproved(c.UserContext())
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch approved channels",
		Results: channels,
	})
}

func (controller *Channel) ReplaceApproved(c *fiber.Ctx) error {
	var request domainChannel.ReplaceApprovedRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	err = controller.Service.ReplaceApproved(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success replace approved channels",
	})
}
