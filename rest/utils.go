package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"go.uber.org/zap"

	"github.com/comprasapp/purchase-list/model"
	"github.com/comprasapp/purchase-list/service"
)

type contextKey string

const userContextKey contextKey = "user"

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithValidationError(errors map[string]string, w http.ResponseWriter) {
	respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": errors})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondServiceError translates the service error taxonomy onto status
// codes: request errors are 400, business errors 409, everything else is an
// unanticipated failure and becomes 500.
func (a *App) respondServiceError(w http.ResponseWriter, err error) {
	var requestErr *service.RequestError
	if errors.As(err, &requestErr) {
		respondWithError(w, http.StatusBadRequest, requestErr.Message)
		return
	}

	var businessErr *service.BusinessError
	if errors.As(err, &businessErr) {
		respondWithError(w, http.StatusConflict, businessErr.Message)
		return
	}

	a.Logger.Error("unhandled service error", zap.Error(err))
	respondWithError(w, http.StatusInternalServerError, err.Error())
}

func (a *App) issueToken(user *model.User) (map[string]string, error) {
	expiresAt := time.Now().Add(time.Minute * 30).Unix()

	claims := &model.UserToken{
		UserID: strconv.Itoa(user.ID),
		Email:  user.Email,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expiresAt,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecret())
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"token": tokenString,
		"email": user.Email,
		"id":    strconv.Itoa(user.ID),
	}, nil
}

func queryInt(r *http.Request, name string) (int, bool) {
	value, err := strconv.Atoi(r.FormValue(name))
	if err != nil && r.FormValue(name) != "" {
		return 0, false
	}
	return value, true
}

// logRequests logs every request with its duration.
func (a *App) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		a.Logger.Info("request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
