package main

import (
	"flag"

	"github.com/sirupsen/logrus"

	"github.com/Sourabh6826/school-erp/app/config"
	"github.com/Sourabh6826/school-erp/app/database"
)

// Bootstrap command: creates a login with a role, e.g.
//
//	go run ./app/cmd/add_user -email admin@school.local -password secret123 -role admin
func main() {
	email := flag.String("email", "", "login email")
	password := flag.String("password", "", "login password")
	firstName := flag.String("first-name", "", "first name")
	lastName := flag.String("last-name", "", "last name")
	role := flag.String("role", "admin", "role name")
	flag.Parse()

	if *email == "" || *password == "" {
		logrus.Fatal("-email and -password are required")
	}

	config.InitDB()
	defer config.GetDB().Close()

	user, err := database.CreateUser(config.GetDB(), *email, *password, *firstName, *lastName, *role)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create user")
	}
	logrus.Infof("Created user %s (%s) with role %s", user.Email, user.ID, *role)
}
