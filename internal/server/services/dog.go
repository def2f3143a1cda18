package services

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/dogshelter/internal/common"
	"github.com/dmitrijs2005/dogshelter/internal/dbx"
	"github.com/dmitrijs2005/dogshelter/internal/server/models"
	"github.com/dmitrijs2005/dogshelter/internal/server/repositories/repomanager"
)

const (
	msgOwnerRequired  = "Each dog must have a registered owner"
	msgNameRequired   = "Please enter a name for your dog"
	msgInvalidDogID   = "Provided dog ID is not valid"
	msgDogNotFound    = "Provided dog ID does not exist"
	msgOwnDog         = "You cannot adopt a dog you own"
	msgAlreadyAdopted = "Sorry, this dog is already adopted"
	msgRemoveAdopted  = "You cannot remove an adopted dog"
	msgRemoveNotOwner = "You cannot remove a dog not registered to you"
)

// DogService implements the dog lifecycle: a dog is registered, may be
// adopted once by someone other than its owner, and may be removed by its
// owner only while unadopted.
type DogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewDogService(db *sql.DB, m repomanager.RepositoryManager) *DogService {
	return &DogService{
		db:          db,
		repomanager: m,
		now:         func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// Register creates an unadopted dog owned by ownerID.
func (s *DogService) Register(ctx context.Context, name, description, ownerID string) (*models.Dog, error) {
	if ownerID == "" {
		return nil, common.NewValidationError("reg_owner", msgOwnerRequired)
	}
	if name == "" {
		return nil, common.NewValidationError("name", msgNameRequired)
	}

	now := s.now()
	dog, err := s.repomanager.Dogs(s.db).Create(ctx, &models.Dog{
		Name:        name,
		Description: description,
		RegOwner:    ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, common.Internal("error creating dog", err)
	}
	return dog, nil
}

// FindByID returns the dog with id.
func (s *DogService) FindByID(ctx context.Context, id string) (*models.Dog, error) {
	if err := validateDogID(id); err != nil {
		return nil, err
	}
	return s.load(ctx, s.repomanager.Dogs(s.db), id)
}

// Adopt assigns adopterID as the adopting owner of dogID and returns the
// updated dog. Owners cannot adopt their own dogs and a dog is adopted at
// most once; when two adopters race, the loser gets the already-adopted
// error.
func (s *DogService) Adopt(ctx context.Context, dogID, adopterID, thankYouMsg string) (*models.Dog, error) {
	if err := validateDogID(dogID); err != nil {
		return nil, err
	}

	dog, err := s.load(ctx, s.repomanager.Dogs(s.db), dogID)
	if err != nil {
		return nil, err
	}
	if dog.RegOwner == adopterID {
		return nil, &common.ForbiddenError{Message: msgOwnDog}
	}
	if dog.Adopted() {
		return nil, &common.ForbiddenError{Message: msgAlreadyAdopted}
	}

	var updated *models.Dog
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Dogs(tx)

		ok, err := repo.MarkAdopted(ctx, dogID, adopterID, thankYouMsg, s.now())
		if err != nil {
			return common.Internal("error adopting dog", err)
		}
		if !ok {
			return &common.ForbiddenError{Message: msgAlreadyAdopted}
		}

		updated, err = s.load(ctx, repo, dogID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Remove deletes dogID if it is unadopted and registered to requesterID.
func (s *DogService) Remove(ctx context.Context, dogID, requesterID string) (*models.DeleteReceipt, error) {
	if err := validateDogID(dogID); err != nil {
		return nil, err
	}

	repo := s.repomanager.Dogs(s.db)

	dog, err := s.load(ctx, repo, dogID)
	if err != nil {
		return nil, err
	}
	if dog.Adopted() {
		return nil, &common.ForbiddenError{Message: msgRemoveAdopted}
	}
	if dog.RegOwner != requesterID {
		return nil, &common.ForbiddenError{Message: msgRemoveNotOwner}
	}

	n, err := repo.DeleteUnadopted(ctx, dogID, requesterID)
	if err != nil {
		return nil, common.Internal("error removing dog", err)
	}
	if n == 0 {
		// adopted (or removed) between the read and the delete
		return nil, &common.ForbiddenError{Message: msgRemoveAdopted}
	}

	return &models.DeleteReceipt{Acknowledged: true, DeletedCount: n}, nil
}

// ListByOwner returns one page of the dogs registered by ownerID.
func (s *DogService) ListByOwner(ctx context.Context, ownerID string, filter models.AdoptionFilter, page int) ([]*models.Dog, error) {
	limit, offset, ok := pageBounds(page)
	if !ok {
		return []*models.Dog{}, nil
	}
	dogs, err := s.repomanager.Dogs(s.db).ListByOwner(ctx, ownerID, filter, limit, offset)
	if err != nil {
		return nil, common.Internal("error listing dogs", err)
	}
	return dogs, nil
}

// ListAdopted returns one page of the dogs adopted by adopterID.
func (s *DogService) ListAdopted(ctx context.Context, adopterID string, page int) ([]*models.Dog, error) {
	limit, offset, ok := pageBounds(page)
	if !ok {
		return []*models.Dog{}, nil
	}
	dogs, err := s.repomanager.Dogs(s.db).ListByAdopter(ctx, adopterID, limit, offset)
	if err != nil {
		return nil, common.Internal("error listing dogs", err)
	}
	return dogs, nil
}

// ParsePage reads the "p" query value. Missing, non-numeric and negative
// values mean the first page; positive values too large for an int mean
// the last representable page.
func ParsePage(raw string) int {
	p, err := strconv.Atoi(strings.TrimSpace(raw))
	if errors.Is(err, strconv.ErrRange) && p > 0 {
		return math.MaxInt
	}
	if err != nil || p < 0 {
		return 0
	}
	return p
}

// ParseAdoptedFilter reads the "adopted" query value.
func ParseAdoptedFilter(raw string) models.AdoptionFilter {
	return models.ParseAdoptionFilter(raw)
}

// maxPage is the last page whose offset fits in an int.
const maxPage = math.MaxInt / common.DogsPerPage

// pageBounds returns the LIMIT/OFFSET for page. ok is false for pages past
// maxPage, which cannot hold any rows.
func pageBounds(page int) (limit, offset int, ok bool) {
	if page < 0 {
		page = 0
	}
	if page > maxPage {
		return 0, 0, false
	}
	return common.DogsPerPage, page * common.DogsPerPage, true
}

func validateDogID(id string) error {
	if len(id) != 36 || uuid.Validate(id) != nil {
		return common.NewValidationError("id", msgInvalidDogID)
	}
	return nil
}

type dogGetter interface {
	GetByID(ctx context.Context, id string) (*models.Dog, error)
}

func (s *DogService) load(ctx context.Context, repo dogGetter, id string) (*models.Dog, error) {
	dog, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, &common.NotFoundError{Message: msgDogNotFound}
		}
		return nil, common.Internal("error loading dog", err)
	}
	return dog, nil
}
