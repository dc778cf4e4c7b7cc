// Package mcflow is the shared foundation of a minimum-cost-flow solver
// suite: a uniform Solver contract, a tolerance-aware numeric layer, and a
// freelist-backed arc/node topology store (Net) that every algorithm
// package builds its own derived structure on top of.
//
// 🚀 What is mcflow?
//
//	A small, dependency-light family of MCF solvers that brings together:
//		• Contract: one Solver interface every implementation satisfies
//		• Net: arc/node storage with stable names across incremental edits
//		• sptree  — shortest-path-tree specialization for pure transportation/
//		  assignment instances
//		• simplex — primal & dual Network Simplex, linear and separable
//		  quadratic costs
//		• relax   — RELAX-IV primal-dual relaxation
//		• clone   — a differential-testing adapter running two solvers in
//		  lockstep
//
// ✨ Design choices
//
//   - Explicit errors – sentinel errors wrapped with %w, never panics for
//     caller-reachable conditions
//   - No hidden concurrency – a Solver (and its embedded Net) is owned by
//     a single goroutine at a time; callers synchronize externally
//   - Pure Go – no cgo, no external LP/QP backend required
//
// Under the hood, everything is organized under one shared package plus
// one subpackage per algorithm family:
//
//	mcflow/        — Solver contract, Net topology store, tolerances, params
//	mcflow/sptree/  — shortest-path-tree solver
//	mcflow/simplex/ — Network Simplex solver
//	mcflow/relax/   — RELAX-IV solver
//	mcflow/clone/   — differential adapter
//	mcflow/mcfio/   — DIMACS-like text I/O built on the Solver contract
package mcflow
