package domain

// Config is the process-wide configuration singleton. MainCurrency is the
// pivot currency all cross-currency arithmetic routes through; the pricing
// core only ever reads it.
type Config struct {
	ConfigID     string `json:"configID"`
	MainCurrency string `json:"mainCurrency"`
	AuditFields
}
