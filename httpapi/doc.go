// Package httpapi exposes the circulation system as a JSON HTTP API.
//
// Routing is organized in three rings: public routes (register, login,
// catalog and seat browsing), session routes that require a valid bearer
// token (renting, returning, reserving, own history), and admin routes that
// additionally require the Admin role. Authentication uses short-lived HS256
// bearer tokens; the principal they carry is re-checked by every admin
// command handler, so the route guard is a convenience, not the boundary.
package httpapi
