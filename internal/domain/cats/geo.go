package cats

// GeoPoint es un punto geográfico en orden GeoJSON (longitud, latitud).
type GeoPoint struct {
	Lon float64
	Lat float64
}

// InBox reporta si p cae dentro del rectángulo cerrado
// [bottomLeft.Lon, topRight.Lon] x [bottomLeft.Lat, topRight.Lat].
//
// Esta es la ley de contención que todo backend debe implementar igual
// (el repo en memoria la usa directo; postgres/sqlite la expresan como
// BETWEEN en SQL). Si el caller manda un box invertido no lo corregimos:
// el predicado simplemente no matchea nada.
func InBox(p, bottomLeft, topRight GeoPoint) bool {
	return p.Lon >= bottomLeft.Lon && p.Lon <= topRight.Lon &&
		p.Lat >= bottomLeft.Lat && p.Lat <= topRight.Lat
}
