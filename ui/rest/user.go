package rest

import (
	"github.com/gofiber/fiber/v2"

	domainUser "github.com/AzielCF/az-cast/domains/user"
	"github.com/AzielCF/az-cast/pkg/utils"
)

type User struct {
	Service domainUser.IUserUsecase
}

func InitRestUser(app fiber.Router, service domainUser.IUserUsecase) User {
	rest := User{Service: service}
	app.Post("/users/register", rest.Register)
	app.Post("/users/login", rest.Login)
	app.Get("/users", rest.List)
	return rest
}

func (controller *User) Register(c *fiber.Ctx) error {
	var request domainUser.RegisterRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	user, err := controller.Service.Register(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success register user",
		Results: user,
	})
}

func (controller *User) Login(c *fiber.Ctx) error {
	var request domainUser.LoginRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	response, err := controller.Service.Login(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success login",
		Results: response,
	})
}

func (controller *User) List(c *fiber.Ctx) error {
	users, err := controller.Service.List(c.UserContext())
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch users",
		Results: users,
	})
}
