// Package services contains the portal's domain services. Each service is
// stateless and maps one typed call onto exactly one backend endpoint
// through the gateway in internal/client/client; none of them retries,
// caches or inspects the session.
//
//	AuthService         POST /auth/login, /auth/register, /auth/forgot-id
//	ApplicationService  /applications, /applications/{id}, .../pre-screen
//	DocumentService     /applications/{id}/documents/...
//	MessageService      /applications/{id}/comments
package services
