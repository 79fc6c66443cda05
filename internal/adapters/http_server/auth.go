package httpserver

import (
	"context"
	"errors"
	"net/http"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/rs/zerolog/log"

	"travel_booking/internal/app"
)

// RequireAuth validates the bearer tokens issued by the demo login (HS256, issuer and audience pinned).
func RequireAuth(a *app.AuthService) (func(http.Handler) http.Handler, error) {
	keyFunc := func(context.Context) (interface{}, error) { return a.Secret(), nil }
	v, err := validator.New(keyFunc, validator.HS256, a.Issuer(), []string{a.Audience()})
	if err != nil {
		return nil, err
	}
	mw := jwtmiddleware.New(v.ValidateToken, jwtmiddleware.WithErrorHandler(authError))
	return mw.CheckJWT, nil
}

func authError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, jwtmiddleware.ErrJWTMissing):
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "bearer token required")
	case errors.Is(err, jwtmiddleware.ErrJWTInvalid):
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "invalid token")
	default:
		log.Debug().Err(err).Msg("token rejected")
		writeProblem(w, http.StatusBadRequest, "Bad Request", "malformed authorization header")
	}
}

// userID is the subject of the validated token, empty on public routes.
func userID(r *http.Request) string {
	claims, ok := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
	if !ok || claims == nil {
		return ""
	}
	return claims.RegisteredClaims.Subject
}
