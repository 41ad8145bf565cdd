package cats

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"cat-api/internal/domain/users"
	"cat-api/internal/middleware"
	"cat-api/internal/ports/auth"
)

// RegisterRoutes monta el surface HTTP de gatos. uploadMW y coordsMW son los
// colaboradores externos del create (guardar archivo, derivar coordenadas);
// se inyectan desde el router para que este módulo no sepa de dónde salen.
func RegisterRoutes(r chi.Router, svc *Service, usersSvc *users.Service, uploadMW, coordsMW func(http.Handler) http.Handler) {
	r.Route("/cats", func(cr chi.Router) {
		cr.Get("/", listCatsHandler(svc, usersSvc))
		cr.With(uploadMW, coordsMW).Post("/", createCatHandler(svc, usersSvc))

		// Lecturas especiales antes del wildcard {id}
		cr.Get("/area", catsByBoxHandler(svc, usersSvc))
		cr.Get("/user", catsByOwnerHandler(svc, usersSvc))

		cr.Put("/admin/{id}", adminUpdateCatHandler(svc, usersSvc))
		cr.Delete("/admin/{id}", adminDeleteCatHandler(svc, usersSvc))

		cr.Get("/{id}", getCatHandler(svc, usersSvc))
		cr.Put("/{id}", updateCatHandler(svc, usersSvc))
		cr.Delete("/{id}", deleteCatHandler(svc, usersSvc))
	})
}

type locationResponse struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"` // [lon, lat], orden GeoJSON
}

// catResponse es la proyección pública de un gato. El owner va resuelto pero
// redactado (sin password ni role, ver users.Public).
type catResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"cat_name"`
	Weight    float64          `json:"weight"`
	Filename  string           `json:"filename"`
	BirthDate string           `json:"birthdate"`
	Location  locationResponse `json:"location"`
	Owner     users.Public     `json:"owner"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type updateCatRequest struct {
	// Punteros para patch real: nil = no tocar. No existe campo owner ni
	// location acá: inmutables por este camino.
	Name      *string  `json:"cat_name"`
	Weight    *float64 `json:"weight"`
	BirthDate *string  `json:"birthdate"` // YYYY-MM-DD
}

type adminUpdateCatRequest struct {
	Name      *string  `json:"cat_name"`
	Weight    *float64 `json:"weight"`
	BirthDate *string  `json:"birthdate"`
	Owner     *string  `json:"owner"` // transferencia de dueño, solo admin
}

// createCatHandler maneja POST /cats.
//
//	@Summary	Crear gato
//	@Tags		cats
//	@Accept		mpfd
//	@Success	201	{object}	cats.catResponse
//	@Router		/cats [post]
func createCatHandler(svc *Service, usersSvc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		name := r.FormValue("cat_name")

		weight, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue("weight")), 64)
		if err != nil {
			http.Error(w, "weight must be numeric", http.StatusBadRequest)
			return
		}

		bd, err := time.Parse("2006-01-02", strings.TrimSpace(r.FormValue("birthdate")))
		if err != nil {
			http.Error(w, "birthdate must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		// Campos derivados por colaboradores externos, nunca del draft.
		var loc *GeoPoint
		if c, ok := middleware.GetCoordinates(r.Context()); ok {
			loc = &GeoPoint{Lon: c.Lon, Lat: c.Lat}
		}
		filename, _ := middleware.GetUploadedFile(r.Context())

		cat, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:      name,
			Weight:    weight,
			BirthDate: bd,
		}, loc, filename)
		if err != nil {
			writeCatError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toCatResponse(r, cat, usersSvc))
	}
}

// getCatHandler maneja GET /cats/{id}. Lectura pública.
//
//	@Summary	Gato por id
//	@Tags		cats
//	@Success	200	{object}	cats.catResponse
//	@Router		/cats/{id} [get]
func getCatHandler(svc *Service, usersSvc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cat, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeCatError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCatResponse(r, cat, usersSvc))
	}
}

// listCatsHandler maneja GET /cats. Lectura pública.
//
//	@Summary	Listar gatos
//	@Tags		cats
//	@Success	200	{array}	cats.catResponse
//	@Router		/cats [get]
func listCatsHandler(svc *Service, usersSvc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAll(r.Context())
		if err != nil {
			writeCatError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCatResponses(r, items, usersSvc))
	}
}

// catsByOwnerHandler maneja GET /cats/user: los gatos del actor actual.
func catsByOwnerHandler(svc *Service, usersSvc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			writeCatError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCatResponses(r, items, usersSvc))
	}
}

// catsByBoxHandler maneja GET /cats/area?bottomLeft=lon,lat&topRight=lon,lat.
// Sin guard: lectura pública, asimetría heredada del comportamiento original.
//
//	@Summary	Gatos dentro de un bounding box
//	@Tags		cats
//	@Param		bottomLeft	query	string	true	"lon,lat esquina inferior izquierda"
//	@Param		topRight	query	string	true	"lon,lat esquina superior derecha"
//	@Success	200	{array}	cats.catResponse
//	@Router		/cats/area [get]
func catsByBoxHandler(svc *Service, usersSvc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bl, err := parseCorner(r.URL.Query().Get("bottomLeft"))
		if err != nil {
			http.Error(w, "bottomLeft must be lon,lat", http.StatusBadRequest)
			return
		}
		tr, err := parseCorner(r.URL.Query().Get("topRight"))
		if err != nil {
			http.Error(w, "topRight must be lon,lat", http.StatusBadRequest)
			return
		}

		items, err := svc.FindInBox(r.Context(), bl, tr)
		if err != nil {
			writeCatError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCatResponses(r, items, usersSvc))
	}
}

// updateCatHandler maneja PUT /cats/{id}: solo el dueño. Un no-dueño recibe
// 404 (el lookup filtrado por owner no encuentra nada), nunca 401 salvo que
// directamente no haya actor.
func updateCatHandler(svc *Service, usersSvc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		in, err := decodeUpdate(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		cat, err := svc.Update(r.Context(), claims.UserID, chi.URLParam(r, "id"), in)
		if err != nil {
			writeCatError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCatResponse(r, cat, usersSvc))
	}
}

// deleteCatHandler maneja DELETE /cats/{id}: solo el dueño. Devuelve el
// estado previo del registro borrado.
func deleteCatHandler(svc *Service, usersSvc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		cat, err := svc.Remove(r.Context(), claims.UserID, chi.URLParam(r, "id"))
		if err != nil {
			writeCatError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCatResponse(r, cat, usersSvc))
	}
}

// adminUpdateCatHandler maneja PUT /cats/admin/{id}: lookup por id pelado,
// puede cambiar cualquier campo incluido el owner.
func adminUpdateCatHandler(svc *Service, usersSvc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := actorFromContext(r)

		var req adminUpdateCatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		bd, err := parseBirthDate(req.BirthDate)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		cat, err := svc.AdminUpdate(r.Context(), actor, chi.URLParam(r, "id"), AdminUpdateInput{
			Name:      req.Name,
			Weight:    req.Weight,
			BirthDate: bd,
			Owner:     req.Owner,
		})
		if err != nil {
			writeCatError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCatResponse(r, cat, usersSvc))
	}
}

// adminDeleteCatHandler maneja DELETE /cats/admin/{id}.
func adminDeleteCatHandler(svc *Service, usersSvc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := actorFromContext(r)

		cat, err := svc.AdminRemove(r.Context(), actor, chi.URLParam(r, "id"))
		if err != nil {
			writeCatError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCatResponse(r, cat, usersSvc))
	}
}

func decodeUpdate(r *http.Request) (UpdateInput, error) {
	var req updateCatRequest

	dec := json.NewDecoder(r.Body)
	// Rechazamos campos desconocidos: un "owner" o "location" en el body de
	// un PUT no-admin es un error del cliente, no algo a ignorar en silencio.
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return UpdateInput{}, errors.New("invalid json")
	}

	bd, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return UpdateInput{}, err
	}

	return UpdateInput{
		Name:      req.Name,
		Weight:    req.Weight,
		BirthDate: bd,
	}, nil
}

func parseBirthDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", strings.TrimSpace(*s))
	if err != nil {
		return nil, errors.New("birthdate must be YYYY-MM-DD")
	}
	return &t, nil
}

// actorFromContext devuelve claims como puntero: nil = sin actor.
func actorFromContext(r *http.Request) *auth.Claims {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		return nil
	}
	return &claims
}

// parseCorner parsea una esquina "lon,lat" (mismo orden que GeoJSON).
func parseCorner(s string) (GeoPoint, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return GeoPoint{}, errors.New("expected lon,lat")
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return GeoPoint{}, err
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return GeoPoint{}, err
	}
	return GeoPoint{Lon: lon, Lat: lat}, nil
}

func toCatResponse(r *http.Request, c Cat, usersSvc *users.Service) catResponse {
	owner := users.Public{ID: c.OwnerUserID}
	if u, err := usersSvc.GetByID(r.Context(), c.OwnerUserID); err == nil {
		owner = u.ToPublic()
	}

	return catResponse{
		ID:        c.ID,
		Name:      c.Name,
		Weight:    c.Weight,
		Filename:  c.Filename,
		BirthDate: c.BirthDate.Format("2006-01-02"),
		Location: locationResponse{
			Type:        "Point",
			Coordinates: [2]float64{c.Location.Lon, c.Location.Lat},
		},
		Owner:     owner,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toCatResponses(r *http.Request, items []Cat, usersSvc *users.Service) []catResponse {
	out := make([]catResponse, 0, len(items))
	for _, c := range items {
		out = append(out, toCatResponse(r, c, usersSvc))
	}
	return out
}

func writeCatError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "cat not found", http.StatusNotFound)
	case errors.Is(err, ErrMissingCoordinates):
		http.Error(w, "missing coordinates", http.StatusBadRequest)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "invalid input", http.StatusUnprocessableEntity)
	default:
		// Fallas del store se reportan opacas, nunca como not found.
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado a propósito entre los handlers de cats y users,
// igual que en los módulos del MVP: todavía no amerita un helper compartido.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
