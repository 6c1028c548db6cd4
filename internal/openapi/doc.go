// Package openapi encodes a contract Document as an OpenAPI 3 document.
//
// Shapes map as follows:
//   - Primitive: number, string or boolean, with enum values when known
//   - Array: array with items
//   - Map: object with additionalProperties
//   - Reference: $ref into components/schemas, sharing the component schema
//   - Object: object with properties and required names
//   - Date, DateTime: string with format date or date-time
//   - Opaque: object
package openapi
