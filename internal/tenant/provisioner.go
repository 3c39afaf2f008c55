package tenant

import (
	"database/sql"
	"fmt"
	"os"

	"resto_pos_backend/pkg/utils"
)

// Provisioner creates dedicated tenant databases at signup. adminDB must be
// a connection with CREATE DATABASE privileges (the master store handle).
type Provisioner struct {
	adminDB     *sql.DB
	urlTemplate string
	schemaPath  string
}

// NewProvisioner creates a Provisioner.
func NewProvisioner(adminDB *sql.DB, urlTemplate, schemaPath string) *Provisioner {
	return &Provisioner{
		adminDB:     adminDB,
		urlTemplate: urlTemplate,
		schemaPath:  schemaPath,
	}
}

// Provision creates the tenant database for a restaurant code, applies the
// tenant schema over a fresh connection, and returns the tenant DSN. If any
// step after CREATE DATABASE fails, the database is dropped again so that a
// failed signup leaves no orphaned tenant database behind.
func (p *Provisioner) Provision(code string) (string, error) {
	dbName := DatabaseName(code)
	dsn, err := DeriveDSN(p.urlTemplate, dbName)
	if err != nil {
		return "", err
	}

	// CREATE DATABASE cannot run inside a transaction.
	if _, err := p.adminDB.Exec(fmt.Sprintf("CREATE DATABASE %q", dbName)); err != nil {
		return "", fmt.Errorf("creating tenant database %s: %w", dbName, err)
	}

	if err := p.applySchema(dsn); err != nil {
		p.drop(dbName)
		return "", fmt.Errorf("applying tenant schema to %s: %w", dbName, err)
	}

	return dsn, nil
}

// Deprovision drops a tenant database. Used as the compensating step when a
// later signup stage fails after provisioning succeeded.
func (p *Provisioner) Deprovision(code string) {
	p.drop(DatabaseName(code))
}

func (p *Provisioner) applySchema(dsn string) error {
	content, err := os.ReadFile(p.schemaPath)
	if err != nil {
		return fmt.Errorf("could not read tenant schema %s: %w", p.schemaPath, err)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("opening new tenant database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(string(content)); err != nil {
		return fmt.Errorf("executing tenant schema: %w", err)
	}
	return nil
}

func (p *Provisioner) drop(dbName string) {
	if _, err := p.adminDB.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS %q", dbName)); err != nil {
		utils.LogError(err, "Failed to drop tenant database "+dbName+" during compensation")
	}
}
