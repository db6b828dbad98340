// Package measure implements the typed measurement model shared by the
// ingestion pipeline and the AGU services.
//
// Two variants exist, selected by ProviderType:
//   - Gas: GasReading / GasMeasure carry a level (and a tank number for measures)
//   - Temperature: TemperatureReading / TemperatureMeasure carry min and max
//
// Reading and Measure are sealed interfaces. Every collection owned by a
// Provider is homogeneous; mixing variants is a programming error and panics
// with a *VariantMismatchError, while value arity problems are reported as
// *InvalidValueCountError.
package measure
