package ports

import (
	"context"

	"geoinv/domain/survey"
)

// ObservationSourcePort loads a survey's observation set once at run start
type ObservationSourcePort interface {
	Load(ctx context.Context) (*survey.Observations, error)
}
