// Package fakeapi implements an in-memory double of the upstream blog
// content API for local development and tests.
//
// It speaks the real contract: GET /api/ and /api/{id}/ for reads,
// POST /api/token/ issuing HS256 JWTs, bearer-gated multipart
// POST /api/create/, PUT /api/update/{id}/ and DELETE /api/delete/{id}/,
// and /media assets for uploaded images. State lives in memory and is
// lost on restart.
package fakeapi
