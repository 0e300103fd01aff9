// filepath: cmd/wearables/main.go
package main

import (
	"github.com/the-momentum/open-wearables-sub001/internal/cli"
)

// @title Open Wearables API
// @version 0.3.0
// @description REST API for ingesting wearable sensor data with tiered storage, archival and retention policies.
// @BasePath /api
// @schemes http
// @securityDefinitions.basic BasicAuth
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and a JWT token.

func main() {
	// Delegate all execution to the CLI package
	cli.Execute()
}
