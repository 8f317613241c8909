package main

import (
	"flag"

	"go-doctor-finder/cmd/bootstrap"

	"github.com/sirupsen/logrus"
)

func main() {
	envFile := flag.String("env", ".env", "optional env file read before the environment")
	flag.Parse()

	app, err := bootstrap.New(*envFile)
	if err != nil {
		logrus.WithError(err).Fatal("Doctor finder failed to start")
	}
	app.Run()
}
