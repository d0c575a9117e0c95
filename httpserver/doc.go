/*
Package httpserver implements the HTTP surface of the trainer registration
portal.

The server exposes a public intake API that validates and stores trainer
registrations, and an administrative area, guarded by HTTP Basic
credentials, that lists the registrations and exports them as CSV.

# Public endpoints

  - GET  /, /cadastro      - registration form
  - POST /api/register     - submit a registration (JSON)
  - POST /api/uploads/photo - upload a profile photo (multipart, field "file")

# Admin endpoints

Every path starting with /admin or /api/admin passes through AdminAuth.

  - GET /admin                  - the 500 most recent registrations
  - GET /api/admin/export.csv   - every registration as a CSV attachment

# Operational endpoints

  - GET /livez, /readyz  - liveness and readiness
  - GET /drain, /undrain - toggle readiness for load balancer rotation
  - /debug/*             - pprof, when enabled

# Error responses

API errors are JSON objects with an "error" message in Portuguese, meant to
be shown to the person filling the form. Validation failures add a
"details" object mapping each field to its messages. Storage failures map to
fixed categories:

  - duplicate CREF          -> 409
  - schema not migrated     -> 503
  - database unreachable    -> 503
  - database not configured -> 500
  - anything else           -> 500 with the raw error under "detail"
*/
package httpserver
