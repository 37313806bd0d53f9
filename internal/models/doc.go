// Package models defines the core domain models for the smartsplit backend.
//
// # Models
//
//   - User: registered account, identified by ID and unique email
//   - Group: named collection of users sharing expenses, with one admin
//   - Expense: a recorded cost owned by a group, paid by one user and
//     allocated across a split set
//
// # Design Principles
//
//  1. **No object cycles**: relationships are ID strings, never pointers.
//     Membership lives in a single group_members association owned by the
//     store, so the user→groups and group→members views can never disagree.
//  2. **Splits are snapshots**: an Expense carries the full split map taken
//     at creation time. Membership changes after the fact never touch it.
//  3. **Balances are derived**: no model stores a balance; the calculator
//     package recomputes them from the expense ledger on every call.
package models
