// Package services owns validation and business rules. Repositories do the
// persistence; controllers do the HTTP plumbing.
package services
