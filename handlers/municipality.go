package handlers

import (
	"github.com/gofiber/fiber/v2"

	apierrors "municipal-booking/errors"
)

func GetMunicipalities(c *fiber.Ctx) error {
	municipalities, err := municipalityDirectory.ListMunicipalities()
	if err != nil {
		return apierrors.RaiseInternalServerError(c, "municipality directory is unavailable")
	}

	return c.JSON(municipalities)
}
