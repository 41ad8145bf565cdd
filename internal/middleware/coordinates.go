package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/oschwald/geoip2-golang"
)

const coordsKey ctxKey = "coordinates"

// Coordinates es el par derivado (longitud, latitud) que el colaborador
// externo adjunta al contexto del request de creación.
type Coordinates struct {
	Lon float64
	Lat float64
}

// GetCoordinates devuelve las coordenadas derivadas del request, si hay.
func GetCoordinates(ctx context.Context) (Coordinates, bool) {
	v := ctx.Value(coordsKey)
	if v == nil {
		return Coordinates{}, false
	}
	c, ok := v.(Coordinates)
	return c, ok
}

// DeriveCoordinates es el colaborador de extracción de coordenadas. Para el
// core es una caja negra que o deja un par (lon, lat) en el contexto o no
// deja nada; acá la caja resuelve en este orden:
//  1. form values "longitude"/"latitude" del multipart
//  2. header "X-Coordinates: lon,lat"
//  3. fallback GeoLite2 por IP del cliente, si hay reader configurado
//
// Si ninguna fuente aplica, el request sigue sin coordenadas y el create
// fallará con missing coordinates más adelante. Nunca corta acá.
func DeriveCoordinates(geo *geoip2.Reader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c, ok := coordsFromForm(r); ok {
				next.ServeHTTP(w, r.WithContext(withCoordinates(r.Context(), c)))
				return
			}

			if c, ok := coordsFromHeader(r.Header.Get("X-Coordinates")); ok {
				next.ServeHTTP(w, r.WithContext(withCoordinates(r.Context(), c)))
				return
			}

			if c, ok := coordsFromIP(geo, r); ok {
				next.ServeHTTP(w, r.WithContext(withCoordinates(r.Context(), c)))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func withCoordinates(ctx context.Context, c Coordinates) context.Context {
	return context.WithValue(ctx, coordsKey, c)
}

func coordsFromForm(r *http.Request) (Coordinates, bool) {
	lonStr := strings.TrimSpace(r.FormValue("longitude"))
	latStr := strings.TrimSpace(r.FormValue("latitude"))
	if lonStr == "" || latStr == "" {
		return Coordinates{}, false
	}

	lon, err1 := strconv.ParseFloat(lonStr, 64)
	lat, err2 := strconv.ParseFloat(latStr, 64)
	if err1 != nil || err2 != nil {
		return Coordinates{}, false
	}
	return Coordinates{Lon: lon, Lat: lat}, true
}

func coordsFromHeader(h string) (Coordinates, bool) {
	parts := strings.Split(strings.TrimSpace(h), ",")
	if len(parts) != 2 {
		return Coordinates{}, false
	}

	lon, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lat, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return Coordinates{}, false
	}
	return Coordinates{Lon: lon, Lat: lat}, true
}

func coordsFromIP(geo *geoip2.Reader, r *http.Request) (Coordinates, bool) {
	if geo == nil {
		return Coordinates{}, false
	}

	host := r.RemoteAddr
	if h, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		host = h
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return Coordinates{}, false
	}

	city, err := geo.City(ip)
	if err != nil {
		return Coordinates{}, false
	}
	// GeoLite2 sin match devuelve lat/lon en cero; lo tratamos como "no hay".
	if city.Location.Latitude == 0 && city.Location.Longitude == 0 {
		return Coordinates{}, false
	}

	return Coordinates{
		Lon: city.Location.Longitude,
		Lat: city.Location.Latitude,
	}, true
}
