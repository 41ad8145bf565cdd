package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"cat-api/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/users", func(ur chi.Router) {
		ur.Get("/", listUsersHandler(svc))
		ur.Post("/", createUserHandler(svc))

		// Operaciones sobre el usuario actual, antes del wildcard {id}
		ur.Get("/token", checkTokenHandler(svc))
		ur.Put("/", updateCurrentHandler(svc))
		ur.Delete("/", deleteCurrentHandler(svc))

		ur.Get("/{id}", getUserHandler(svc))
	})
}

type createUserRequest struct {
	Username string `json:"user_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	Username *string `json:"user_name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// createUserHandler maneja POST /users. Público; el role sale siempre "user".
//
//	@Summary	Registrar usuario
//	@Tags		users
//	@Accept		json
//	@Success	201	{object}	users.Public
//	@Router		/users [post]
func createUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := svc.Create(r.Context(), CreateInput{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			writeUserError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, u.ToPublic())
	}
}

// getUserHandler maneja GET /users/{id}. Proyección redactada.
func getUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeUserError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, u.ToPublic())
	}
}

func listUsersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAll(r.Context())
		if err != nil {
			writeUserError(w, err)
			return
		}

		out := make([]Public, 0, len(items))
		for _, u := range items {
			out = append(out, u.ToPublic())
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// checkTokenHandler maneja GET /users/token: eco del actor autenticado,
// redactado. No consulta el store, los claims ya vienen validados.
func checkTokenHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// Si el usuario existe en el store devolvemos el perfil completo
		// redactado; si no, al menos el id de los claims.
		if u, err := svc.GetByID(r.Context(), claims.UserID); err == nil {
			writeJSON(w, http.StatusOK, u.ToPublic())
			return
		}
		writeJSON(w, http.StatusOK, Public{ID: claims.UserID})
	}
}

func updateCurrentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req updateUserRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := svc.UpdateCurrent(r.Context(), claims.UserID, UpdateCurrentInput{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			writeUserError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, u.ToPublic())
	}
}

func deleteCurrentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		u, err := svc.DeleteCurrent(r.Context(), claims.UserID)
		if err != nil {
			writeUserError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, u.ToPublic())
	}
}

func writeUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "invalid input", http.StatusUnprocessableEntity)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON duplicado a propósito entre módulos, ver nota en cats/handler.go.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
