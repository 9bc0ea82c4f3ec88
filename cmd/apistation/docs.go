package main

// General API documentation for swaggo. Regenerate with `swag init -g cmd/apistation/docs.go`.
//
// @title           24h API Station
// @version         1.0
// @description     HTTP gateway to hosted text-to-image, chat and speech-recognition models.
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http https
