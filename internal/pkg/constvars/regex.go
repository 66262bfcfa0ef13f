package constvars

const (
	RegexInsuredID = `^\d{5}$`
)
