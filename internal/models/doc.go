// Package models defines the core domain models for Divido.
//
// # Models
//
//   - Expense: a shared expense paid by one user and split across several
//   - Split: one user's assigned share of an expense, with a paid flag
//   - Payment: a direct payment between two users (pending/completed/failed)
//   - Group: a set of members whose expenses and payments form one scope
//
// # Design Principles
//
// 1. **Closed data model**: every record is strictly typed; there are no
// loosely-typed documents. Validation happens here, at the storage boundary,
// so the balance engine can assume well-formed input.
//
// 2. **Avoid circular references**: relationships use ID strings, not pointers.
//
// 3. **Currency is a label**: amounts are never converted between currencies;
// the currency field travels with the record untouched.
//
// Derived values (net balances, settlement suggestions) are intentionally not
// modeled here. They have no identity and no lifecycle; they are recomputed
// from scratch on every query by the calculator package.
package models
