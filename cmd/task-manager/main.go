// Package main Zadania API
//
// @title           Zadania API
// @version         1.0
// @description     REST API менеджера задач: регистрация, вход по JWT и CRUD задач.

// @host      localhost:3000
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
package main

func main() {
	Execute()
}
