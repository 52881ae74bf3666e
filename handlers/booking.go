package handlers

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"municipal-booking/database"
	apierrors "municipal-booking/errors"
	"municipal-booking/model"
	"municipal-booking/service"
)

var bookingService *service.BookingService
var municipalityDirectory service.MunicipalityDirectory

// Init wires the handlers to their collaborators; main and the handler
// tests call it before serving routes.
func Init(svc *service.BookingService, directory service.MunicipalityDirectory) {
	bookingService = svc
	municipalityDirectory = directory
}

func raiseServiceError(c *fiber.Ctx, err error) error {
	var validationErr model.ValidationError
	if errors.As(err, &validationErr) {
		return apierrors.RaiseBadRequestError(c, validationErr.Error())
	}
	if errors.Is(err, database.ErrBookingNotFound) {
		return apierrors.RaiseNotFoundError(c, "no booking for the given token")
	}
	return apierrors.RaiseInternalServerError(c, "unexpected server side problem occured")
}

func CreateBooking(c *fiber.Ctx) error {
	type BookingRequest struct {
		Municipality  string `json:"municipality"`
		Description   string `json:"description"`
		RequestedDate string `json:"requested_date"`
		TimeSlot      string `json:"time_slot"`
	}

	request := new(BookingRequest)
	if err := c.BodyParser(request); err != nil {
		return apierrors.RaiseBadRequestError(c, "incorrect input for booking parameters")
	}

	newBooking := model.NewBooking()
	newBooking.Municipality = strings.TrimSpace(request.Municipality)
	newBooking.Description = strings.TrimSpace(request.Description)
	newBooking.RequestedDate = strings.TrimSpace(request.RequestedDate)
	newBooking.TimeSlot = strings.TrimSpace(request.TimeSlot)

	createdBooking, err := bookingService.CreateBooking(newBooking)
	if err != nil {
		return raiseServiceError(c, err)
	}

	bookingJson, err := json.MarshalIndent(createdBooking, "", "	")
	if err != nil {
		return apierrors.RaiseInternalServerError(c, "server side problem occured while sending booking info to client")
	}

	return c.SendString(string(bookingJson))
}

func GetBooking(c *fiber.Ctx) error {
	booking, err := bookingService.GetBookingByToken(c.Params("token"))
	if err != nil {
		return raiseServiceError(c, err)
	}

	bookingJson, err := json.MarshalIndent(booking, "", "	")
	if err != nil {
		return apierrors.RaiseInternalServerError(c, "server side problem occured while sending booking info to client")
	}

	return c.SendString(string(bookingJson))
}

func GetBookings(c *fiber.Ctx) error {
	var bookings []model.Booking
	var err error

	if municipality := c.Query("municipality"); municipality != "" {
		bookings, err = bookingService.GetBookingsByMunicipality(municipality)
	} else {
		bookings, err = bookingService.GetAllBookings()
	}
	if err != nil {
		return raiseServiceError(c, err)
	}

	bookingsJson, err := json.MarshalIndent(bookings, "", "	")
	if err != nil {
		return apierrors.RaiseInternalServerError(c, "server side problem occured while sending bookings info to client")
	}

	return c.SendString(string(bookingsJson))
}

func UpdateBookingStatus(c *fiber.Ctx) error {
	newStatus, err := model.ParseBookingStatus(c.Query("status"))
	if err != nil {
		return apierrors.RaiseBadRequestError(c, err.Error())
	}

	booking, err := bookingService.UpdateBookingStatus(c.Params("token"), newStatus)
	if err != nil {
		return raiseServiceError(c, err)
	}

	bookingJson, err := json.MarshalIndent(booking, "", "	")
	if err != nil {
		return apierrors.RaiseInternalServerError(c, "server side problem occured while sending booking info to client")
	}

	return c.SendString(string(bookingJson))
}

func CancelBooking(c *fiber.Ctx) error {
	booking, err := bookingService.CancelBooking(c.Params("token"))
	if err != nil {
		return raiseServiceError(c, err)
	}

	bookingJson, err := json.MarshalIndent(booking, "", "	")
	if err != nil {
		return apierrors.RaiseInternalServerError(c, "server side problem occured while sending booking info to client")
	}

	return c.SendString(string(bookingJson))
}
