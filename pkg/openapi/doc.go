// Package openapi describes the application API of the careers site as an
// OpenAPI 3 document built with kin-openapi. Each configured role gets its
// own multipart POST operation whose request schema mirrors the role form.
package openapi
