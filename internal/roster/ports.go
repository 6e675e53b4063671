package roster

import (
	"context"

	"github.com/idilsaglam/roster/internal/model"
)

//go:generate mockgen -source=ports.go -destination=mocks/mock_ports.go -package=mocks

// Store is the remote student directory.
type Store interface {
	List(ctx context.Context) ([]model.Student, error)
	Create(ctx context.Context, f model.Fields) error
	Update(ctx context.Context, id string, f model.Fields) error
	Delete(ctx context.Context, id string) error
}

// Notifier shows one-line outcomes to the user.
type Notifier interface {
	Success(msg string)
	Failure(msg string)
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Failure(string) {}
