package handlers_test

import (
	"context"
	"errors"

	"github.com/serroba/shortlink/internal/shortlink"
)

var errMock = errors.New("mock error")

// failingRepo errors on every call.
type failingRepo struct{}

func (failingRepo) Save(_ context.Context, _ *shortlink.ShortURL) error { return errMock }

func (failingRepo) AliasExists(_ context.Context, _ shortlink.Alias) (bool, error) {
	return false, errMock
}

func (failingRepo) Resolve(_ context.Context, _ shortlink.Alias) (*shortlink.Resolution, error) {
	return nil, errMock
}
