package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/odatagen"
)

func TestSchemaError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := NewSchemaError("Customer", "No", "bad reference", cause)

		assert.Contains(t, err.Error(), "odatagen: schema error")
		assert.Contains(t, err.Error(), "entity Customer")
		assert.Contains(t, err.Error(), "property No")
		assert.Contains(t, err.Error(), "bad reference")
		assert.Contains(t, err.Error(), "underlying error")
	})

	t.Run("Error message with entity only", func(t *testing.T) {
		err := &SchemaError{Entity: "Customer"}
		assert.Contains(t, err.Error(), "entity Customer")
		assert.NotContains(t, err.Error(), "property")
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("root cause")
		err := NewSchemaError("Customer", "", "", cause)

		assert.Equal(t, cause, err.Unwrap())
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("Is matches ErrSchemaIntegrity", func(t *testing.T) {
		err := NewSchemaError("Customer", "", "", nil)
		assert.True(t, errors.Is(err, odatagen.ErrSchemaIntegrity))
		assert.False(t, errors.Is(err, odatagen.ErrArtifactWrite))
	})

	t.Run("IsSchemaError helper", func(t *testing.T) {
		assert.True(t, IsSchemaError(NewSchemaError("Customer", "", "test", nil)))
		assert.False(t, IsSchemaError(errors.New("other")))
	})
}

func TestConfigError(t *testing.T) {
	t.Run("Error message with value", func(t *testing.T) {
		err := NewConfigError("Types", "Edm.Guid", "invalid Go type")

		assert.Contains(t, err.Error(), "odatagen: config error")
		assert.Contains(t, err.Error(), "Types")
		assert.Contains(t, err.Error(), "Edm.Guid")
		assert.Contains(t, err.Error(), "invalid Go type")
	})

	t.Run("Error message without value", func(t *testing.T) {
		err := NewConfigError("Target", nil, "cannot be empty")
		assert.Equal(t, `odatagen: config error for "Target": cannot be empty`, err.Error())
	})

	t.Run("Is matches ErrMissingConfig", func(t *testing.T) {
		assert.True(t, errors.Is(NewConfigError("Target", nil, ""), odatagen.ErrMissingConfig))
		assert.True(t, IsConfigError(NewConfigError("Target", nil, "")))
		assert.False(t, IsConfigError(errors.New("other")))
	})
}

func TestGenerationError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("disk full")
		err := NewGenerationError("Customer", "write", "customer.go", "persist artifact", cause)

		assert.Contains(t, err.Error(), "odatagen: generation error")
		assert.Contains(t, err.Error(), "for entity Customer")
		assert.Contains(t, err.Error(), "in phase write")
		assert.Contains(t, err.Error(), "(file: customer.go)")
		assert.Contains(t, err.Error(), "disk full")
	})

	t.Run("Unwrap and Is", func(t *testing.T) {
		cause := errors.New("disk full")
		err := NewGenerationError("Customer", "write", "", "", cause)

		assert.True(t, errors.Is(err, cause))
		assert.True(t, errors.Is(err, odatagen.ErrArtifactWrite))
		assert.True(t, IsGenerationError(err))
		assert.False(t, IsGenerationError(cause))
	})
}
