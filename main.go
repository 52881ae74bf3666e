package main

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"municipal-booking/config"
	"municipal-booking/database"
	"municipal-booking/handlers"
	"municipal-booking/router"
	"municipal-booking/service"
)

func main() {
	var repo database.BookingRepository
	if _, err := config.GetSecret("MONGODB_CONNSTRING"); err == nil {
		mongoRepo, err := database.NewMongoRepository("bookings")
		if err != nil {
			log.Fatal(err)
		}
		repo = mongoRepo
	} else {
		repo = database.NewLocalRepository(config.LOCAL_DB_PATH)
	}

	directory := service.NewGeoAPIDirectory()
	handlers.Init(service.NewBookingService(repo, directory), directory)

	app := fiber.New()

	router.SetupRoutes(app)

	app.Listen(":80")
}
