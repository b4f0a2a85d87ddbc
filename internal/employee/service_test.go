package employee

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewdeck/crewdeck/internal/employee/entity"
)

func valid() *entity.Employee {
	return &entity.Employee{
		Name:        "Ada Lovelace",
		Email:       "Ada@Example.com",
		Designation: "Engineer",
		PhoneNumber: "+1 555-0100-200",
	}
}

func TestValidate_NormalizesFields(t *testing.T) {
	t.Parallel()

	e := valid()
	e.Name = "  Ada Lovelace  "
	require.NoError(t, validate(e))
	assert.Equal(t, "Ada Lovelace", e.Name)
	assert.Equal(t, "ada@example.com", e.Email)
}

func TestValidate_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*entity.Employee)
		detail string
	}{
		{"short name", func(e *entity.Employee) { e.Name = "A" }, "Name must be between 2 and 50 characters"},
		{"bad email", func(e *entity.Employee) { e.Email = "nope" }, "Invalid email format"},
		{"short designation", func(e *entity.Employee) { e.Designation = "X" }, "Designation must be between 2 and 100 characters"},
		{"bad phone", func(e *entity.Employee) { e.PhoneNumber = "123" }, "Invalid phone number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid()
			tt.mutate(e)
			err := validate(e)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Contains(t, vErr.Details, tt.detail)
		})
	}
}

func TestValidate_CollectsAllFailingFields(t *testing.T) {
	t.Parallel()

	err := validate(&entity.Employee{})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Details, 4)
}
