package router

import (
	"municipal-booking/handlers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())

	//Municipality directory
	municipalities := api.Group("/municipalities")
	municipalities.Get("/", handlers.GetMunicipalities)

	//Booking
	booking := api.Group("/bookings")
	booking.Get("/", handlers.GetBookings)
	booking.Get("/:token", handlers.GetBooking)
	booking.Post("/", handlers.CreateBooking)
	booking.Put("/:token", handlers.UpdateBookingStatus)
	booking.Delete("/:token", handlers.CancelBooking)
}
