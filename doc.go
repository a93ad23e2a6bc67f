// Package kabooom computes interception paths on an occupancy grid.
//
// An ego agent starts on a free cell and moves one cell per time step in any of
// the eight compass directions. A target follows a trajectory that is known in
// advance. The engine searches the time-expanded graph of (ego cell, time step)
// states until the ego and the target share a cell at the same time step.
//
// It exposes three entry points:
//
//   - Search: run the search to completion and get a Result.
//   - Stepper: iterate the search one expansion at a time to drive UIs or debugging tools.
//   - Batch: run many independent searches on a worker pool.
//
// Two frontier disciplines are available: breadth-first (FIFO) and Dijkstra
// (priority queue keyed by accumulated cost, ties broken by insertion order).
package kabooom
