// Package models defines the core domain models for Wijnproef.
//
// # Current Models
//
//   - WineEntry: One wine in the catalog with its current price
//   - OrderLine: One person's order for one wine, with the price
//     snapshotted at entry time
//   - PersonTotal / Summary: Aggregated output of the order log
//
// Participants are identified by name strings; there are no user
// accounts. A tasting is a single evening, so there is exactly one
// catalog and one order log per process.
//
// # Design Principles
//
// 1. **Snapshot pricing**: OrderLine carries its own unit price; later
// catalog edits never change what was already ordered.
// 2. **No cross-references**: an OrderLine names its wine by string and
// stays valid even after that wine is removed from the catalog.
// 3. **Exact money**: all amounts are decimal.Decimal, never floats.
package models
