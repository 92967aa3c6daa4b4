package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"skyraksys.com/hrm/security"
)

func main() {
	employeeID := flag.String("employee", "", "employee uuid")
	name := flag.String("name", "", "employee name")
	email := flag.String("email", "", "employee email")
	role := flag.String("role", "employee", "role: employee, manager, hr or admin")
	ttl := flag.Duration("ttl", 12*time.Hour, "token lifetime")
	flag.Parse()

	if *employeeID == "" {
		log.Fatal("-employee is required")
	}

	secret := os.Getenv("HRM_AUTH_SECRET")
	if secret == "" {
		log.Fatal("HRM_AUTH_SECRET must be set")
	}

	token, err := security.CreateIdentityToken(&security.HrmIdentity{
		EmployeeID: *employeeID,
		Name:       *name,
		Email:      *email,
		Role:       *role,
	}, secret, *ttl)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(token)
}
