package employee

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"

	"github.com/crewdeck/crewdeck/internal/employee/entity"
	"github.com/crewdeck/crewdeck/internal/employee/repo"
	"github.com/crewdeck/crewdeck/pkg/utilities"
)

var (
	ErrNotFound       = errors.New("employee not found")
	ErrDuplicateEmail = errors.New("employee email already exists")
)

// ValidationError reports invalid employee input by field.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string { return strings.Join(e.Details, "; ") }

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s-]{10,}$`)
)

// Service encapsulates employee directory logic and depends on the repo.
type Service struct {
	repo *repo.EmployeeRepo
}

func NewService(r *repo.EmployeeRepo) *Service {
	return &Service{repo: r}
}

func validate(e *entity.Employee) error {
	var details []string
	name := strings.TrimSpace(e.Name)
	if len(name) < 2 || len(name) > 50 {
		details = append(details, "Name must be between 2 and 50 characters")
	}
	if !emailPattern.MatchString(strings.ToLower(strings.TrimSpace(e.Email))) {
		details = append(details, "Invalid email format")
	}
	designation := strings.TrimSpace(e.Designation)
	if len(designation) < 2 || len(designation) > 100 {
		details = append(details, "Designation must be between 2 and 100 characters")
	}
	if !phonePattern.MatchString(e.PhoneNumber) {
		details = append(details, "Invalid phone number")
	}
	if len(details) > 0 {
		return &ValidationError{Details: details}
	}
	e.Name = name
	e.Email = strings.ToLower(strings.TrimSpace(e.Email))
	e.Designation = designation
	return nil
}

func (s *Service) List(ctx context.Context) ([]*entity.Employee, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*entity.Employee, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (s *Service) Create(ctx context.Context, e *entity.Employee) (*entity.Employee, error) {
	if err := validate(e); err != nil {
		return nil, err
	}
	e.ID = utilities.NewKSUID()
	e.Active = true
	if err := s.repo.Create(ctx, e); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return e, nil
}

func (s *Service) Update(ctx context.Context, e *entity.Employee) (*entity.Employee, error) {
	if err := validate(e); err != nil {
		return nil, err
	}
	rows, err := s.repo.Update(ctx, e)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	if rows == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, e.ID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
