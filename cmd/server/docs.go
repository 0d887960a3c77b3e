package main

//go:generate swag init -g cmd/server/main.go -o docs

// @title           Polymarket Wrapped API
// @version         0.1.0
// @description     Yearly trading summary, share codes, and badge metadata for Polymarket accounts.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
