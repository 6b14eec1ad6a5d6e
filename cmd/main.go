// cmd/main.go
package main

import (
	"finance-tracker/app"
)

// @title           Finance Tracker API
// @version         1.0
// @description     Personal finance tracker with token-protected transaction writes.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
