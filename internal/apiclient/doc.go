// Package apiclient is the gateway to the upstream blog content API.
//
// One method per server resource: ListPosts, GetPost, CreatePost,
// UpdatePost, DeletePost, Token. Mutating calls attach a bearer token
// read from the TokenSource at call time. Create and update encode
// their fields as multipart form data so an optional image can ride
// alongside the text fields.
//
// Failures are classified, never retried:
//
//   - transport errors are wrapped and surfaced as-is
//   - non-2xx responses become *APIError (JSON detail decoded when the
//     body is JSON, raw text otherwise)
//   - a 404 on GetPost becomes ErrPostNotFound
//   - rejected credentials on Token become *AuthError
//   - malformed JSON on a 2xx response is a decode error
//
// A 401 on any other call is an ordinary *APIError; the client does
// not force a logout or attempt a token refresh.
package apiclient
