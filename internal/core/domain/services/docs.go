// Package services provides domain services for calculations that span more
// than one aggregate of the AGU domain and belong to none of them.
//
// The package includes:
//   - ConsumptionEstimator: derives daily consumption from gas measures and
//     projects future levels from predicted consumption
package services
