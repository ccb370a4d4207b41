package entity

type RegStatus string

const (
	StatusActive    RegStatus = "ACTIVE"
	StatusClosed    RegStatus = "CLOSED"
	StatusSuspended RegStatus = "SUSPENDED"
	StatusUnfit     RegStatus = "UNFIT"
	StatusUnknown   RegStatus = "UNKNOWN"
)

// Company is the cached Receita registration of a CNPJ holder.
type Company struct {
	CNPJ      string `gorm:"primaryKey;column:cnpj"`
	LegalName string
	TradeName string
	City      string
	State     string
	MainCNAE  string
	RegStatus RegStatus

	// Found is false when the lookup returned 404. Those rows are kept as
	// negative cache entries until the cache cleaner sweeps them.
	Found    bool  `gorm:"not null"`
	CachedAt int64 `gorm:"not null;index;autoUpdateTime:false"`
}
