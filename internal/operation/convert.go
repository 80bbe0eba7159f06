package operation

const (
	feetPerMeter    = 3.28084
	poundsPerKilo   = 2.20462
	acresPerSqMeter = 0.000247105
	kelvinOffset    = 273.15
)

func MetersToFeet(m float64) float64        { return m * feetPerMeter }
func FeetToMeters(ft float64) float64       { return ft / feetPerMeter }
func CelsiusToFahrenheit(c float64) float64 { return c*9/5 + 32 }
func FahrenheitToCelsius(f float64) float64 { return (f - 32) * 5 / 9 }
func CelsiusToKelvin(c float64) float64     { return c + kelvinOffset }
func KelvinToCelsius(k float64) float64     { return k - kelvinOffset }
func KilogramsToPounds(kg float64) float64  { return kg * poundsPerKilo }
func PoundsToKilograms(lb float64) float64  { return lb / poundsPerKilo }

func SquareMetersToAcres(sqm float64) float64   { return sqm * acresPerSqMeter }
func AcresToSquareMeters(acres float64) float64 { return acres / acresPerSqMeter }
