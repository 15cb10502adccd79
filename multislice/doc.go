// Package multislice simulates coherent wave propagation through a layered
// volumetric object with the multislice (angular-spectrum) method.
//
// The object is a stack of thin slabs, each described by a refractive-index
// decrement (delta) and an absorption coefficient (beta). Run alternates a
// projection step (ApplySlice) with a free-space step (Propagate) for every
// slab, then optionally propagates the exit wave to a detector plane.
//
// FresnelFarField and ChirpFarField are alternative detector models. They
// compute a single long-distance diffraction directly from a wavefront and
// are never called by Run.
//
// All routines are pure: inputs are not modified, and grids and sources may
// be shared between independent runs.
package multislice
