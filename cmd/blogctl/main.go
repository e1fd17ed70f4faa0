package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/gophblog/internal/blogctl"
	"github.com/dmitrijs2005/gophblog/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := blogctl.NewApp(cfg, os.Stdin, os.Stdout)

	if err != nil {
		log.Fatalf("%v", err)
	}

	err = app.Run(ctx, blogctl.CommandName(os.Args[1:]))
	if cerr := app.Close(); cerr != nil {
		log.Printf("error closing database: %v", cerr)
	}
	if err != nil {
		log.Fatalf("%v", err)
	}

}
