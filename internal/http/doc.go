// Package http provides HTTP handlers and middleware for the time tracking API.
//
// The router exposes the following endpoints:
//   - POST /login: issues a session token. Body: {"username","password"}. Response:
//     {"token","expires_at","user":{"username","full_name","is_admin"}} with the token
//     also surfaced via the `X-Session-Token` header and a `session_token` cookie.
//   - POST /logout: revokes the current session token extracted from the Authorization
//     header or session cookie. Returns 204 No Content and clears the cookie.
//   - GET /entries, POST /entries, DELETE /entries/{id}: time entry endpoints
//     exchanging the `entryDTO` payload defined in entry_handler.go. Creation accepts
//     date ranges for absences and expands them server side; deletion is limited to
//     the owning manager or an administrator.
//   - GET /entries/daily-sum, GET /entries/weekly-sums: recorded-hour aggregates for
//     the booking form and the weekly overview.
//   - GET /orders/suggestions, GET /orders/hidden, POST /orders/hidden: order number
//     suggestions for the booking form and management of the per-manager hide list.
//   - GET /reports/{compliance,weekly-breakdown,top-orders,distribution,
//     billable-ratio,weekend,order-breakdown,trend}: aggregated reporting endpoints.
//     All accept `from`, `to` and `exclude_orders` query parameters.
//   - GET /exports/entries: streams the filtered entries as an xlsx workbook.
//   - GET /users, PUT /users/{username}/password: administrator user listing and
//     password maintenance. A principal changing their own password must supply the
//     current one.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
