package measure

// AsGasReadings narrows a homogeneous slice to GasReading.
// It fails with a *VariantMismatchError on the first element of another type.
func AsGasReadings(readings []Reading) ([]GasReading, error) {
	return downcast[GasReading](readings, Gas)
}

// AsTemperatureReadings narrows a homogeneous slice to TemperatureReading.
func AsTemperatureReadings(readings []Reading) ([]TemperatureReading, error) {
	return downcast[TemperatureReading](readings, Temperature)
}

// AsGasMeasures narrows a homogeneous slice to GasMeasure.
func AsGasMeasures(measures []Measure) ([]GasMeasure, error) {
	return downcast[GasMeasure](measures, Gas)
}

// AsTemperatureMeasures narrows a homogeneous slice to TemperatureMeasure.
func AsTemperatureMeasures(measures []Measure) ([]TemperatureMeasure, error) {
	return downcast[TemperatureMeasure](measures, Temperature)
}

func downcast[T any, S typed](items []S, expected ProviderType) ([]T, error) {
	out := make([]T, 0, len(items))
	for i, item := range items {
		v, ok := any(item).(T)
		if !ok {
			return nil, mismatch(expected, item, i)
		}
		out = append(out, v)
	}
	return out, nil
}
