package main

import (
	"github.com/sirupsen/logrus"

	"github.com/Sourabh6826/school-erp/app/config"
	"github.com/Sourabh6826/school-erp/app/database"
)

func main() {
	config.InitDB()
	defer config.GetDB().Close()

	if err := database.RunMigrations(config.GetDB()); err != nil {
		logrus.WithError(err).Fatal("Migration failed")
	}
	logrus.Info("Migrations completed")
}
