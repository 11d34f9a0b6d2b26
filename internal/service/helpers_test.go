package service

import "github.com/google/uuid"

func newUUID() uuid.UUID {
	return uuid.New()
}

func randEmail() string {
	return uuid.NewString() + "@x"
}
