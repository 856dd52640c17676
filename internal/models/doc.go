// Package models defines the core domain models for cardstash.
//
// # Records
//
//   - User: a registered account, identified by a unique username
//   - Card: a named record owned by a user
//
// # Input Types
//
// Credentials and NewCard are the typed results of schema validation.
// They only exist after the validation package has accepted raw input,
// so handlers and services never see untrusted request bodies.
//
// # Filters
//
// UserFilter and CardFilter describe persistence lookups. A nil field
// means "do not filter on this column".
//
// # Relationships
//
// Cards reference their owner by ID string (OwnerID). The reference is
// not checked against existing users.
package models
