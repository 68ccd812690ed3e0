// Package models defines the core domain models for the Billed web
// client.
//
// # Models
//
//   - Bill: one expense-report entry with its receipt attachment
//   - User: the session record of the currently acting user
//
// # Design Principles
//
//  1. Plain structs with JSON tags matching the bills API wire format
//  2. No behavior beyond trivial predicates; validation lives with the
//     component that detects the problem
//  3. Relationships by ID/email strings, never pointers, to keep the
//     models serializable as-is
package models
