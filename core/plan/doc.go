package plan

// Package plan implements the stop-end production planning engine.
// It generates a project calendar, simulates daily production and
// installation of long/short stop-end pairs, and greedily optimises
// the production schedule against installation demand, production
// restrictions and cumulative targets.
