package main

import (
	"log"

	"github.com/grayrock-games/ecscore/internal/core/demo"
)

func main() {
	game := demo.NewGame()
	if err := game.Run(); err != nil {
		log.Fatal(err)
	}
}
