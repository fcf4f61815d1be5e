package environment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shipfwd/notifyd/pkg/environment"
)

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		env  environment.Environment
	}{
		{name: "development", env: environment.Development},
		{name: "staging", env: environment.Staging},
		{name: "production", env: environment.Production},
		{name: "custom", env: environment.Environment("custom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := environment.WithContext(context.Background(), tt.env)
			assert.Equal(t, tt.env, environment.FromContext(ctx))
		})
	}

	t.Run("missing value", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, environment.Environment(""), environment.FromContext(context.Background()))
	})

	t.Run("nil context", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, environment.Environment(""), environment.FromContext(nil)) //nolint:staticcheck
	})
}

func TestPredicates(t *testing.T) {
	t.Parallel()

	ctx := environment.WithContext(context.Background(), environment.Production)
	assert.True(t, environment.IsProduction(ctx))
	assert.False(t, environment.IsDevelopment(ctx))
	assert.False(t, environment.IsStaging(ctx))

	ctx = environment.WithContext(context.Background(), environment.Development)
	assert.True(t, environment.IsDevelopment(ctx))

	ctx = environment.WithContext(context.Background(), environment.Staging)
	assert.True(t, environment.IsStaging(ctx))
}
