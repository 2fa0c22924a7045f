package main

// General API documentation for swaggo. Run `swag init -g cmd/agentd/main.go` to regenerate docs.
//
// @title           agentd API
// @version         1.0
// @description     HTTP API for the constrained-resource agent execution coordinator.
//
// @contact.name   agentd maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
