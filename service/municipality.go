package service

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"municipal-booking/config"
)

// MunicipalityDirectory lists the valid municipality names. The real
// directory is a remote service and may be unavailable; callers get an
// explicit error in that case.
type MunicipalityDirectory interface {
	ListMunicipalities() ([]string, error)
}

type GeoAPIDirectory struct {
	url string
}

func NewGeoAPIDirectory() *GeoAPIDirectory {
	return &GeoAPIDirectory{url: config.MUNICIPALITIES_API_URL}
}

func (d *GeoAPIDirectory) ListMunicipalities() ([]string, error) {
	agent := fiber.Get(d.url)

	statusCode, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("cannot reach municipality directory: %v", errs[0])
	}
	if statusCode != fiber.StatusOK {
		return nil, fmt.Errorf("municipality directory returned status %v", statusCode)
	}

	municipalities := []string{}
	if err := json.Unmarshal(body, &municipalities); err != nil {
		return nil, fmt.Errorf("cannot parse municipality directory response: %v", err)
	}

	return municipalities, nil
}
