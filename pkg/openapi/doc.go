// Package openapi holds the contract of the external contract services as an
// embedded OpenAPI document and checks outgoing payloads against it with
// kin-openapi.
package openapi
