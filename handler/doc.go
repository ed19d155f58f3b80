// Package handler provides type-safe HTTP request handling.
//
// Handlers are generic functions that receive a bound request value and return
// a Response. Wrap turns them into http.HandlerFunc values:
//
//	type LoginRequest struct {
//		UserName string `form:"userName" json:"userName"`
//		Password string `form:"password" json:"password"`
//	}
//
//	func login(ctx handler.Context, req LoginRequest) handler.Response {
//		u, err := users.ValidateLogin(ctx, req.UserName, req.Password)
//		if err != nil {
//			return handler.JSONError(err)
//		}
//		return handler.JSON(u)
//	}
//
//	r.Post("/login", handler.Wrap(login,
//		handler.WithBinders[handler.Context, LoginRequest](binder.Form(), binder.JSON()),
//	))
//
// # Responses
//
//	handler.JSON(data)                               // 200 OK with data
//	handler.JSON(data, handler.WithJSONStatus(201))  // custom status
//	handler.JSONError(err)                           // status derived from core.KindOf(err)
//	handler.Redirect("/dashboard")                   // 303 See Other
//	handler.Empty()                                  // 204 No Content
//
// # Errors
//
// JSONError classifies errors through the core package. Classified errors render
// their key as the error code; unclassified errors render a generic 500 body so
// internal details never reach the client. Errors that implement FieldErrors
// contribute per-field details.
package handler
