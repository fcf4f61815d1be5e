package environment

import "context"

// Environment represents the application runtime environment.
type Environment string

const (
	// Development for local development.
	Development Environment = "development"
	// Staging for pre-production deployments.
	Staging Environment = "staging"
	// Production for production deployments.
	Production Environment = "production"
)

type contextKey struct{}

// WithContext stores the environment in the context.
func WithContext(ctx context.Context, env Environment) context.Context {
	return context.WithValue(ctx, contextKey{}, env)
}

// FromContext retrieves the environment from the context. It returns an empty
// Environment when none was stored.
func FromContext(ctx context.Context) Environment {
	if ctx == nil {
		return ""
	}
	env, _ := ctx.Value(contextKey{}).(Environment)
	return env
}

// IsProduction reports whether the environment from context is production.
func IsProduction(ctx context.Context) bool {
	env := FromContext(ctx)
	return env == Production || env == "prod"
}

// IsDevelopment reports whether the environment from context is development.
func IsDevelopment(ctx context.Context) bool {
	env := FromContext(ctx)
	return env == Development || env == "dev"
}

// IsStaging reports whether the environment from context is staging.
func IsStaging(ctx context.Context) bool {
	env := FromContext(ctx)
	return env == Staging || env == "stage"
}
