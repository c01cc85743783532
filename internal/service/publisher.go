package service

import (
	"context"
	"errors"

	"github.com/totegamma/confadmin/internal/domain"
	"github.com/totegamma/confadmin/internal/usecase"
)

// Publishers sends a view set to every publisher; failures are joined, none stops the rest.
type Publishers []usecase.ViewPublisher

func (p Publishers) Publish(ctx context.Context, views domain.SpeakerViews) error {
	var errs []error
	for _, pub := range p {
		if err := pub.Publish(ctx, views); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
