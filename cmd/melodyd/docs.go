package main

// General API documentation for swaggo. Run `swag init` to generate docs.
//
// @title           melodyd API
// @version         1.0
// @description     HTTP API for genre-steered MIDI pattern generation from pretrained checkpoints.
//
// @contact.name   melodyd maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
