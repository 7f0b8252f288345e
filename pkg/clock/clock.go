package clock

import "time"

// La aplicación opera con un desfase fijo UTC-3, sin horario de verano.
// El comedor y todas las oficinas comparten ese huso.
var zonaLocal = time.FixedZone("UTC-3", -3*60*60)

// Clock reloj inyectable para que los servicios y las pruebas
// controlen "ahora" de forma determinística.
type Clock interface {
	// Now devuelve la hora actual en el huso local (UTC-3).
	Now() time.Time
}

type systemClock struct{}

// New crea el reloj de sistema en UTC-3.
func New() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().In(zonaLocal)
}

// Fixed reloj congelado en un instante, para pruebas.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time {
	return f.T.In(zonaLocal)
}

// Zone expone el huso fijo para formatear fechas límite.
func Zone() *time.Location {
	return zonaLocal
}
