package cats

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"cat-api/internal/ports/auth"
)

var (
	// ErrUnauthorized: operación que exige identidad y no hay actor,
	// o el actor no tiene el rol requerido.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound: el lookup no encontró nada. Incluye el caso de lookup
	// filtrado por owner cuando el registro existe bajo otro dueño.
	ErrNotFound = errors.New("cat not found")

	// ErrMissingCoordinates: create sin ubicación derivada.
	ErrMissingCoordinates = errors.New("missing coordinates")

	// ErrInvalidInput: alguna restricción de campo violada.
	ErrInvalidInput = errors.New("invalid input")
)

// Service coordina el ciclo de vida de los registros: aplica autorización y
// validación antes de tocar el store, e inyecta los campos derivados del
// server (owner, location, filename) al crear.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name      string
	Weight    float64
	BirthDate time.Time
}

// Create persiste un gato nuevo. Owner sale del actor autenticado, location y
// filename de los colaboradores externos (middleware); el draft del cliente
// no puede aportar ninguno de los tres.
func (s *Service) Create(ctx context.Context, actorID string, in CreateInput, loc *GeoPoint, filename string) (Cat, error) {
	if strings.TrimSpace(actorID) == "" {
		return Cat{}, ErrUnauthorized
	}
	if loc == nil {
		return Cat{}, ErrMissingCoordinates
	}

	now := s.now()
	if err := validateName(in.Name); err != nil {
		return Cat{}, err
	}
	if err := validateWeight(in.Weight); err != nil {
		return Cat{}, err
	}
	if err := validateBirthDate(in.BirthDate, now); err != nil {
		return Cat{}, err
	}

	c := Cat{
		ID:          uuid.NewString(),
		OwnerUserID: actorID,
		Name:        strings.TrimSpace(in.Name),
		Weight:      in.Weight,
		Filename:    strings.TrimSpace(filename),
		BirthDate:   in.BirthDate,
		Location:    *loc,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return Cat{}, err
	}
	return c, nil
}

// GetByID es lectura pública.
func (s *Service) GetByID(ctx context.Context, id string) (Cat, error) {
	return s.repo.GetByID(ctx, id)
}

// ListAll es lectura pública.
func (s *Service) ListAll(ctx context.Context) ([]Cat, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) ListByOwner(ctx context.Context, actorID string) ([]Cat, error) {
	if strings.TrimSpace(actorID) == "" {
		return nil, ErrUnauthorized
	}
	return s.repo.ListByOwner(ctx, actorID)
}

// FindInBox es lectura pública y sin guard: expone la ubicación de todos los
// registros dentro del box. La asimetría con el camino de mutación (estricto
// por owner) viene del comportamiento original y se conserva tal cual.
func (s *Service) FindInBox(ctx context.Context, bottomLeft, topRight GeoPoint) ([]Cat, error) {
	return s.repo.FindInBox(ctx, bottomLeft, topRight)
}

// Update muta un gato propio. El guard va fusionado en el predicado del
// store (id+owner en una operación): si el gato es de otro, ErrNotFound.
func (s *Service) Update(ctx context.Context, actorID, id string, in UpdateInput) (Cat, error) {
	if strings.TrimSpace(actorID) == "" {
		return Cat{}, ErrUnauthorized
	}

	now := s.now()
	if err := validatePatch(in.Name, in.Weight, in.BirthDate, now); err != nil {
		return Cat{}, err
	}

	return s.repo.UpdateOwned(ctx, id, actorID, in, now)
}

// Remove borra un gato propio y devuelve su estado previo. Borrado permanente:
// no hay soft-delete, el registro desaparece de toda lectura posterior.
func (s *Service) Remove(ctx context.Context, actorID, id string) (Cat, error) {
	if strings.TrimSpace(actorID) == "" {
		return Cat{}, ErrUnauthorized
	}
	return s.repo.DeleteOwned(ctx, id, actorID)
}

// AdminUpdate muta cualquier gato por id, incluida la transferencia de owner.
func (s *Service) AdminUpdate(ctx context.Context, actor *auth.Claims, id string, in AdminUpdateInput) (Cat, error) {
	if actor == nil || !actor.IsAdmin() {
		return Cat{}, ErrUnauthorized
	}

	now := s.now()
	if err := validatePatch(in.Name, in.Weight, in.BirthDate, now); err != nil {
		return Cat{}, err
	}
	if in.Owner != nil && strings.TrimSpace(*in.Owner) == "" {
		return Cat{}, ErrInvalidInput
	}

	return s.repo.UpdateByID(ctx, id, in, now)
}

// AdminRemove borra cualquier gato por id.
func (s *Service) AdminRemove(ctx context.Context, actor *auth.Claims, id string) (Cat, error) {
	if actor == nil || !actor.IsAdmin() {
		return Cat{}, ErrUnauthorized
	}
	return s.repo.DeleteByID(ctx, id)
}

func validateName(name string) error {
	if len(strings.TrimSpace(name)) < 2 {
		return ErrInvalidInput
	}
	return nil
}

func validateWeight(w float64) error {
	if w <= 0 {
		return ErrInvalidInput
	}
	return nil
}

// validateBirthDate exige fecha presente y no futura (contra reloj de pared
// al momento de escribir).
func validateBirthDate(bd, now time.Time) error {
	if bd.IsZero() || bd.After(now) {
		return ErrInvalidInput
	}
	return nil
}

func validatePatch(name *string, weight *float64, bd *time.Time, now time.Time) error {
	if name != nil {
		if err := validateName(*name); err != nil {
			return err
		}
	}
	if weight != nil {
		if err := validateWeight(*weight); err != nil {
			return err
		}
	}
	if bd != nil {
		if err := validateBirthDate(*bd, now); err != nil {
			return err
		}
	}
	return nil
}
