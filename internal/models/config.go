package models

// Config is the single row of the config table.
type Config struct {
	ConfigID     string `db:"config_id"`
	MainCurrency string `db:"main_currency"`
	AuditFields
}
