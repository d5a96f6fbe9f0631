// Package services contains stateless domain services that coordinate logic
// spanning aggregates. RoutePlanner owns the city-batching rules shared by
// the dry-run preview and the assignment executor: city normalization,
// grouping, and reuse-before-create matching against active routes.
package services
