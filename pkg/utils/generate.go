package utils

import (
	"github.com/google/uuid"
)

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

func ParseSessionToken(token string) (uuid.UUID, error) {
	return uuid.Parse(token)
}
