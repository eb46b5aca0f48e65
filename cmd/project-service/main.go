package main

import "github.com/vantagesuite/vantage/internal/dependent"

func main() {
	dependent.Run("project-service")
}
