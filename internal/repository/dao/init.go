package dao

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&Account{},
		&Invitation{},
		&EventConfig{},
		&Ticket{},
		&BarItem{},
		&BarInventory{},
		&BarTransaction{},
		&BarTransactionLine{},
		&BartenderBalance{},
		&BarPayout{},
		&InviteDiscount{},
		&PresetDiscount{},
		&SecurityIncident{},
		&IncidentAssignment{},
		&BotMessage{},
		&LoginCode{},
	)
}

// dropAllTables empties the public schema. Only the integration tests use it.
func dropAllTables(db *gorm.DB) error {
	var tableNames []string
	if err := db.Table("information_schema.tables").
		Where("table_schema = ?", "public").
		Pluck("table_name", &tableNames).Error; err != nil {
		return err
	}

	for _, tableName := range tableNames {
		if err := db.Exec(`DROP TABLE IF EXISTS "` + tableName + `" CASCADE`).Error; err != nil {
			return err
		}
	}

	return nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return false
	}

	return constraint == "" || pgErr.ConstraintName == constraint
}
