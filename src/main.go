package main

import (
	_ "github.com/carafeforum/carafe/src/migration"
	"github.com/carafeforum/carafe/src/website"
)

func main() {
	website.WebsiteCommand.Execute()
}
