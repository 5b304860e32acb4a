package rest

import (
	"github.com/gofiber/fiber/v2"

	domainSchedule "github.com/AzielCF/az-cast/domains/schedule"
	"github.com/AzielCF/az-cast/pkg/utils"
)

type Schedule struct {
	Service domainSchedule.IScheduleUsecase
}

func InitRestSchedule(app fiber.Router, service domainSchedule.IScheduleUsecase) Schedule {
	rest := Schedule{Service: service}
	app.Get("/schedule", rest.Hours)
	app.Put("/schedule", rest.Replace)
	return rest
}

func (controller *Schedule) Hours(c *fiber.Ctx) error {
	hours, err := controller.Service.Hours(c.UserContext())
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch schedule",
		Results: map[string][]int{"hours": hours},
	})
}

func (controller *Schedule) Replace(c *fiber.Ctx) error {
	var request domainSchedule.ReplaceRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	hours, err := controller.Service.Replace(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success replace schedule",
		Results: map[string][]int{"hours": hours},
	})
}
