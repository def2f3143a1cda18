package dogs

import (
	"context"
	"time"

	"github.com/dmitrijs2005/dogshelter/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, dog *models.Dog) (*models.Dog, error)
	GetByID(ctx context.Context, id string) (*models.Dog, error)
	// MarkAdopted sets the adopter only while the dog is unadopted and not
	// owned by adopterID. It reports whether a row changed.
	MarkAdopted(ctx context.Context, id, adopterID, thankYouMsg string, at time.Time) (bool, error)
	// DeleteUnadopted removes the dog only while it is unadopted and
	// registered to ownerID, returning the number of rows removed.
	DeleteUnadopted(ctx context.Context, id, ownerID string) (int64, error)
	ListByOwner(ctx context.Context, ownerID string, filter models.AdoptionFilter, limit, offset int) ([]*models.Dog, error)
	ListByAdopter(ctx context.Context, adopterID string, limit, offset int) ([]*models.Dog, error)
}
