package cats

import (
	"math/rand"
	"testing"
)

func TestInBox_Containment(t *testing.T) {
	bl := GeoPoint{Lon: 24.0, Lat: 60.0}
	tr := GeoPoint{Lon: 25.0, Lat: 61.0}

	if !InBox(GeoPoint{Lon: 24.9, Lat: 60.2}, bl, tr) {
		t.Fatalf("expected (24.9, 60.2) inside box")
	}
	if InBox(GeoPoint{Lon: 26.0, Lat: 62.0}, bl, tr) {
		t.Fatalf("expected (26.0, 62.0) outside box")
	}
}

func TestInBox_ClosedRectangle(t *testing.T) {
	bl := GeoPoint{Lon: 24.0, Lat: 60.0}
	tr := GeoPoint{Lon: 25.0, Lat: 61.0}

	// Rectángulo cerrado: los bordes y esquinas cuentan como adentro
	for _, p := range []GeoPoint{bl, tr, {Lon: 24.0, Lat: 61.0}, {Lon: 24.5, Lat: 60.0}} {
		if !InBox(p, bl, tr) {
			t.Fatalf("expected boundary point %+v inside", p)
		}
	}
}

func TestInBox_InvertedBoxMatchesNothing(t *testing.T) {
	// Box malformado (bl al noreste de tr): no se corrige, simplemente no
	// matchea ni siquiera puntos "entre" las esquinas.
	bl := GeoPoint{Lon: 25.0, Lat: 61.0}
	tr := GeoPoint{Lon: 24.0, Lat: 60.0}

	if InBox(GeoPoint{Lon: 24.5, Lat: 60.5}, bl, tr) {
		t.Fatalf("inverted box should not match")
	}
}

// Propiedad: para rectángulos consistentes (bl al suroeste de tr) y puntos
// aleatorios, InBox equivale exactamente a las cuatro comparaciones.
func TestInBox_RandomizedProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	coord := func() float64 { return rng.Float64()*360 - 180 }

	for i := 0; i < 5000; i++ {
		lon1, lon2 := coord(), coord()
		lat1, lat2 := coord(), coord()
		bl := GeoPoint{Lon: min(lon1, lon2), Lat: min(lat1, lat2)}
		tr := GeoPoint{Lon: max(lon1, lon2), Lat: max(lat1, lat2)}

		p := GeoPoint{Lon: coord(), Lat: coord()}

		want := p.Lon >= bl.Lon && p.Lon <= tr.Lon && p.Lat >= bl.Lat && p.Lat <= tr.Lat
		if got := InBox(p, bl, tr); got != want {
			t.Fatalf("point %+v box %+v..%+v: got %v want %v", p, bl, tr, got, want)
		}
	}
}
