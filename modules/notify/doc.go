// Package notify wires the notification and preference services into a
// mountable HTTP API.
//
// Endpoints return JSON. Domain error kinds map to statuses: validation
// failures to 400 with a field list, missing records to 404, duplicate
// preference records to 409, everything else to 500 with the cause logged
// server-side only.
package notify
