package application

import (
	"context"

	"github.com/felixgeelhaar/taskrank/internal/shared/domain"
	"github.com/felixgeelhaar/taskrank/pkg/observability"
)

type metadataSetter interface {
	SetMetadata(metadata domain.EventMetadata)
}

// EventMetadataFromContext builds event metadata from the request's correlation and request ids.
func EventMetadataFromContext(ctx context.Context) domain.EventMetadata {
	return domain.EventMetadata{
		CorrelationID: observability.CorrelationIDFromContext(ctx),
		CausationID:   observability.RequestIDFromContext(ctx),
	}
}

// ApplyEventMetadata sets metadata on all events that support it.
func ApplyEventMetadata(events []domain.DomainEvent, metadata domain.EventMetadata) {
	for _, event := range events {
		if setter, ok := event.(metadataSetter); ok {
			setter.SetMetadata(metadata)
		}
	}
}
