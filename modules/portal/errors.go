package portal

import (
	"net/http"

	"github.com/dmitrymomot/benefitskit/core"
	"github.com/dmitrymomot/benefitskit/handler"
)

// InvalidCredentialsMessage is the only login failure text clients see.
const InvalidCredentialsMessage = "Invalid username or password"

// ErrInvalidCredentials hides whether the user name or the password was wrong.
var ErrInvalidCredentials = core.New(core.KindUnauthorized, "auth.invalid_credentials")

// RenderError writes err as a JSON error body. It fits the error handler
// hooks of the session, csrf and ratelimit middlewares.
func RenderError(w http.ResponseWriter, r *http.Request, err error) {
	_ = handler.JSONError(err).Render(w, r)
}
