// Package grid implements the geometry underlying the dashboard surface.
//
// The dashboard is a lattice of cells addressed by 1-based (column, row)
// coordinates. Widgets occupy axis-aligned rectangles of whole cells
// ([Placement]). The package provides:
//
//   - [Config]: column count, row height, and gap validation
//   - [Placement]: rectangle arithmetic and intersection tests
//   - [Occupancy]: the set of cells covered by existing placements
//   - [Metrics]: pointer-to-cell coordinate conversion
//   - [ValidatePosition]: clamping plus bounded collision search
//
// # Collision policy
//
// [ValidatePosition] clamps a candidate rectangle into the grid and, when
// overlap prevention is enabled, scans in row-major order for the first
// position where the rectangle covers no occupied cell. The scan is bounded
// to [SearchWindow] rows below the requested position; if it exhausts, the
// clamped original position is returned even though it may overlap. Callers
// that need a hard guarantee must check the result against the occupancy
// set themselves.
//
// All functions are pure: nothing in this package retains or mutates caller
// state, and an [Occupancy] is rebuilt from current placements on demand
// rather than maintained incrementally.
package grid
