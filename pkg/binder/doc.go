// Package binder binds HTTP request data to Go structs.
//
// Binders are plain functions with the signature func(*http.Request, any) error
// and are meant to be chained through handler.WithBinders. Each binder reads
// only its own source and struct tag:
//
//   - Form():  `form:"..."`  from urlencoded or multipart bodies
//   - JSON():  `json:"..."`  from application/json bodies
//   - Query(): `query:"..."` from the URL query string
//
// Form and JSON return ErrBinderNotApplicable for requests of a different
// content type so a route can accept either encoding.
package binder
