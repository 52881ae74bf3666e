package config

import (
	"fmt"
	"os"
)

const LOCAL_DB_PATH string = "./database/bookings.json"
const MUNICIPALITIES_API_URL string = "https://geoapi.pt/municipios"

const DAILY_BOOKING_LIMIT int = 5
const MAX_ACTIVE_BOOKINGS int = 3
const MIN_BOOKING_LEAD_DAYS int = 3
const MIN_DESCRIPTION_LENGTH int = 3

func GetSecret(key string) (string, error) {
	val, exist := os.LookupEnv(key)
	if exist {
		return val, nil
	}
	return "", fmt.Errorf("no env variable with key %v", key)
}
