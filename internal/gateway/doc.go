// Package gateway implements the request/response mapping between the
// simplified REST surface and the upstream inference provider. It is split
// by concern:
//
//   - gateway.go: Gateway type, Config, constructor, root metadata and readiness.
//   - image.go: text-to-image with PNG re-encoding.
//   - chat.go: chat completion returning the first choice only.
//   - transcribe.go: speech recognition passthrough.
//   - keys.go: decorative API key generation.
//   - errors.go: upstream failure wrapping (IsUpstreamFailure).
//
// Every operation is stateless; a Gateway may be shared by concurrent handlers.
package gateway
