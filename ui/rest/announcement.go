package rest

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/AzielCF/az-cast/config"
	domainAnnouncement "github.com/AzielCF/az-cast/domains/announcement"
	pkgError "github.com/AzielCF/az-cast/pkg/error"
	"github.com/AzielCF/az-cast/pkg/utils"
)

type Announcement struct {
	Service domainAnnouncement.IAnnouncementUsecase
}

func InitRestAnnouncement(app fiber.Router, service domainAnnouncement.IAnnouncementUsecase) Announcement {
	rest := Announcement{Service: service}
	app.Get("/announcement/:weekday", rest.Get)
	app.Post("/announcement/:weekday", rest.Save)
	app.Post("/announcement/:weekday/media", rest.SaveMedia)
	app.Get("/announcement/:weekday/preview", rest.Preview)
	app.Post("/announcement/copy", rest.Copy)
	app.Delete("/announcement/:weekday", rest.Delete)
	app.Delete("/announcements", rest.DeleteAll)
	return rest
}

func weekdayParam(c *fiber.Ctx) domainAnnouncement.Weekday {
	weekday, ok := domainAnnouncement.ParseWeekday(c.Params("weekday"))
	if !ok {
		panic(pkgError.ValidationError(fmt.Sprintf("weekday: %s is not a valid weekday.", c.Params("weekday"))))
	}
	return weekday
}

func (controller *Announcement) Get(c *fiber.Ctx) error {
	weekday := weekdayParam(c)

	announcement, err := controller.Service.Get(c.UserContext(), weekday)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch announcement",
		Results: announcement,
	})
}

func (controller *Announcement) Save(c *fiber.Ctx) error {
	var request domainAnnouncement.SaveRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)
	request.Weekday = weekdayParam(c)

	err = controller.Service.Save(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success save announcement caption",
	})
}

func (controller *Announcement) SaveMedia(c *fiber.Ctx) error {
	weekday := weekdayParam(c)

	file, err := c.FormFile("image")
	if err != nil {
		panic(pkgError.ValidationError("image: no file uploaded."))
	}
	if file.Size > config.MediaMaxImageSize {
		panic(pkgError.ValidationError(fmt.Sprintf("image: file too large, max %d bytes.", config.MediaMaxImageSize)))
	}

	src, err := file.Open()
	utils.PanicIfNeeded(err)
	defer src.Close()

	data, err := io.ReadAll(src)
	utils.PanicIfNeeded(err)

	storedPath, err := controller.Service.SaveMedia(c.UserContext(), domainAnnouncement.SaveMediaRequest{
		Weekday:          weekday,
		Data:             data,
		OriginalFilename: file.Filename,
	})
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success save announcement media",
		Results: map[string]string{"path": storedPath},
	})
}

func (controller *Announcement) Preview(c *fiber.Ctx) error {
	weekday := weekdayParam(c)

	preview, err := controller.Service.Preview(c.UserContext(), weekday)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch announcement preview",
		Results: preview,
	})
}

func (controller *Announcement) Copy(c *fiber.Ctx) error {
	var request domainAnnouncement.CopyRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	err = controller.Service.Copy(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success copy announcement",
	})
}

func (controller *Announcement) Delete(c *fiber.Ctx) error {
	weekday := weekdayParam(c)

	err := controller.Service.Delete(c.UserContext(), weekday)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success delete announcement",
	})
}

func (controller *Announcement) DeleteAll(c *fiber.Ctx) error {
	err := controller.Service.DeleteAll(c.UserContext())
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success delete all announcements",
	})
}
