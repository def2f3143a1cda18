package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/dogshelter/internal/server/models"
	"github.com/dmitrijs2005/dogshelter/internal/server/services"
)

type registerDogRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type adoptDogRequest struct {
	ThankYouMsg string `json:"thank_you_msg"`
}

func (s *HTTPServer) actor(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, ok := ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgNotAuthenticated)
	}
	return user, ok
}

func (s *HTTPServer) listRegisteredDogs(w http.ResponseWriter, r *http.Request) {
	user, ok := s.actor(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	dogs, err := s.dogs.ListByOwner(r.Context(), user.ID,
		services.ParseAdoptedFilter(q.Get("adopted")), services.ParsePage(q.Get("p")))
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err.Error(), err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]*models.Dog{"dogs": nonNil(dogs)})
}

func (s *HTTPServer) registerDog(w http.ResponseWriter, r *http.Request) {
	user, ok := s.actor(w, r)
	if !ok {
		return
	}

	var req registerDogRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	dog, err := s.dogs.Register(r.Context(), req.Name, req.Description, user.ID)
	if err != nil {
		s.fail(w, r, registerDogStatus(err), err.Error(), err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]models.NewDog{"newDog": dog.AsNewDog()})
}

func (s *HTTPServer) listAdoptedDogs(w http.ResponseWriter, r *http.Request) {
	user, ok := s.actor(w, r)
	if !ok {
		return
	}

	dogs, err := s.dogs.ListAdopted(r.Context(), user.ID, services.ParsePage(r.URL.Query().Get("p")))
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err.Error(), err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]*models.Dog{"dogs": nonNil(dogs)})
}

func (s *HTTPServer) adoptDog(w http.ResponseWriter, r *http.Request) {
	user, ok := s.actor(w, r)
	if !ok {
		return
	}

	var req adoptDogRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	dog, err := s.dogs.Adopt(r.Context(), chi.URLParam(r, "id"), user.ID, req.ThankYouMsg)
	if err != nil {
		s.fail(w, r, adoptStatus.status(err), err.Error(), err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]*models.Dog{"updatedDog": dog})
}

func (s *HTTPServer) removeDog(w http.ResponseWriter, r *http.Request) {
	user, ok := s.actor(w, r)
	if !ok {
		return
	}

	receipt, err := s.dogs.Remove(r.Context(), chi.URLParam(r, "id"), user.ID)
	if err != nil {
		s.fail(w, r, removeStatus.status(err), err.Error(), err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]*models.DeleteReceipt{"dogRemoved": receipt})
}

func nonNil(dogs []*models.Dog) []*models.Dog {
	if dogs == nil {
		return []*models.Dog{}
	}
	return dogs
}
