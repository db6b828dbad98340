// Package kernel provides the value objects shared by every AGU aggregate.
//
// The package includes:
//   - UUID: identifier of companies, tanks, contacts, providers, loads and alerts
//   - CUI: the canonical AGU identifier
//   - Location: named latitude/longitude pair
//   - GasLevels: min/max/critical percentages with min <= critical <= max
//
// All values are immutable and must be created through their constructors;
// zero values fail Validate.
package kernel
